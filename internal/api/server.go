package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
	strictnethttp "github.com/oapi-codegen/runtime/strictmiddleware/nethttp"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Database health check
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// Recharge a card
	// (POST /api/v1/recharges)
	CreateRecharge(w http.ResponseWriter, r *http.Request, params CreateRechargeParams)
	// Fetch a completed recharge
	// (GET /api/v1/recharges/{rechargeId})
	GetRecharge(w http.ResponseWriter, r *http.Request, rechargeId RechargeId)
	// Fetch card balances
	// (GET /api/v1/cards/{cardId})
	GetCard(w http.ResponseWriter, r *http.Request, cardId CardId)
	// List the latest completed recharges of a card
	// (GET /api/v1/cards/{cardId}/recharges)
	ListCardRecharges(w http.ResponseWriter, r *http.Request, cardId CardId, params ListCardRechargesParams)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

// GetHealth operation middleware
func (siw *ServerInterfaceWrapper) GetHealth(w http.ResponseWriter, r *http.Request) {
	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetHealth(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// CreateRecharge operation middleware
func (siw *ServerInterfaceWrapper) CreateRecharge(w http.ResponseWriter, r *http.Request) {
	var err error

	ctx := r.Context()
	ctx = context.WithValue(ctx, BearerAuthScopes, []string{})
	r = r.WithContext(ctx)

	var params CreateRechargeParams

	headers := r.Header

	if valueList, found := headers[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		var IdempotencyKey string
		n := len(valueList)
		if n != 1 {
			siw.ErrorHandlerFunc(w, r, &TooManyValuesForParamError{ParamName: "Idempotency-Key", Count: n})
			return
		}

		err = runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", valueList[0], &IdempotencyKey, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false})
		if err != nil {
			siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "Idempotency-Key", Err: err})
			return
		}

		params.IdempotencyKey = &IdempotencyKey
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CreateRecharge(w, r, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// GetRecharge operation middleware
func (siw *ServerInterfaceWrapper) GetRecharge(w http.ResponseWriter, r *http.Request) {
	var err error

	var rechargeId RechargeId

	err = runtime.BindStyledParameterWithOptions("simple", "rechargeId", r.PathValue("rechargeId"), &rechargeId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "rechargeId", Err: err})
		return
	}

	ctx := r.Context()
	ctx = context.WithValue(ctx, BearerAuthScopes, []string{})
	r = r.WithContext(ctx)

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetRecharge(w, r, rechargeId)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// GetCard operation middleware
func (siw *ServerInterfaceWrapper) GetCard(w http.ResponseWriter, r *http.Request) {
	var err error

	var cardId CardId

	err = runtime.BindStyledParameterWithOptions("simple", "cardId", r.PathValue("cardId"), &cardId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "cardId", Err: err})
		return
	}

	ctx := r.Context()
	ctx = context.WithValue(ctx, BearerAuthScopes, []string{})
	r = r.WithContext(ctx)

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetCard(w, r, cardId)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// ListCardRecharges operation middleware
func (siw *ServerInterfaceWrapper) ListCardRecharges(w http.ResponseWriter, r *http.Request) {
	var err error

	var cardId CardId

	err = runtime.BindStyledParameterWithOptions("simple", "cardId", r.PathValue("cardId"), &cardId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "cardId", Err: err})
		return
	}

	ctx := r.Context()
	ctx = context.WithValue(ctx, BearerAuthScopes, []string{})
	r = r.WithContext(ctx)

	var params ListCardRechargesParams

	err = runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListCardRecharges(w, r, cardId, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type TooManyValuesForParamError struct {
	ParamName string
	Count     int
}

func (e *TooManyValuesForParamError) Error() string {
	return fmt.Sprintf("Expected one value for %s, got %d", e.ParamName, e.Count)
}

// HandlerFromMux creates http.Handler with routing matching OpenAPI spec based on the provided mux.
func HandlerFromMux(si ServerInterface, m *http.ServeMux) http.Handler {
	return HandlerWithOptions(si, StdHTTPServerOptions{
		BaseRouter: m,
	})
}

// StdHTTPServerOptions configures HandlerWithOptions
type StdHTTPServerOptions struct {
	BaseURL          string
	BaseRouter       *http.ServeMux
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options StdHTTPServerOptions) http.Handler {
	m := options.BaseRouter

	if m == nil {
		m = http.NewServeMux()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			WriteError(w, http.StatusBadRequest, Error{
				ErrorKind: ErrorKindValidationError,
				Code:      "invalid_request",
				Message:   err.Error(),
			})
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	m.HandleFunc("GET "+options.BaseURL+"/health", wrapper.GetHealth)
	m.HandleFunc("POST "+options.BaseURL+"/api/v1/recharges", wrapper.CreateRecharge)
	m.HandleFunc("GET "+options.BaseURL+"/api/v1/recharges/{rechargeId}", wrapper.GetRecharge)
	m.HandleFunc("GET "+options.BaseURL+"/api/v1/cards/{cardId}", wrapper.GetCard)
	m.HandleFunc("GET "+options.BaseURL+"/api/v1/cards/{cardId}/recharges", wrapper.ListCardRecharges)

	return m
}

// WriteError renders an Error body with the given status
func WriteError(w http.ResponseWriter, status int, body Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck // nothing to do once the header is sent
}

type GetHealthRequestObject struct {
}

type GetHealthResponseObject interface {
	VisitGetHealthResponse(w http.ResponseWriter) error
}

type GetHealth200JSONResponse HealthResponse

func (response GetHealth200JSONResponse) VisitGetHealthResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type GetHealth503JSONResponse HealthResponse

func (response GetHealth503JSONResponse) VisitGetHealthResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(503)

	return json.NewEncoder(w).Encode(response)
}

type CreateRechargeRequestObject struct {
	Params CreateRechargeParams
	Body   *CreateRechargeJSONRequestBody
}

type CreateRechargeResponseObject interface {
	VisitCreateRechargeResponse(w http.ResponseWriter) error
}

type CreateRecharge201JSONResponse RechargeResponse

func (response CreateRecharge201JSONResponse) VisitCreateRechargeResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(201)

	return json.NewEncoder(w).Encode(response)
}

type CreateRechargedefaultJSONResponse struct {
	Body       Error
	StatusCode int
}

func (response CreateRechargedefaultJSONResponse) VisitCreateRechargeResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.StatusCode)

	return json.NewEncoder(w).Encode(response.Body)
}

type GetRechargeRequestObject struct {
	RechargeId RechargeId `json:"rechargeId"`
}

type GetRechargeResponseObject interface {
	VisitGetRechargeResponse(w http.ResponseWriter) error
}

type GetRecharge200JSONResponse Recharge

func (response GetRecharge200JSONResponse) VisitGetRechargeResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type GetRechargedefaultJSONResponse struct {
	Body       Error
	StatusCode int
}

func (response GetRechargedefaultJSONResponse) VisitGetRechargeResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.StatusCode)

	return json.NewEncoder(w).Encode(response.Body)
}

type GetCardRequestObject struct {
	CardId CardId `json:"cardId"`
}

type GetCardResponseObject interface {
	VisitGetCardResponse(w http.ResponseWriter) error
}

type GetCard200JSONResponse Card

func (response GetCard200JSONResponse) VisitGetCardResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type GetCarddefaultJSONResponse struct {
	Body       Error
	StatusCode int
}

func (response GetCarddefaultJSONResponse) VisitGetCardResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.StatusCode)

	return json.NewEncoder(w).Encode(response.Body)
}

type ListCardRechargesRequestObject struct {
	CardId CardId `json:"cardId"`
	Params ListCardRechargesParams
}

type ListCardRechargesResponseObject interface {
	VisitListCardRechargesResponse(w http.ResponseWriter) error
}

type ListCardRecharges200JSONResponse RechargeList

func (response ListCardRecharges200JSONResponse) VisitListCardRechargesResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type ListCardRechargesdefaultJSONResponse struct {
	Body       Error
	StatusCode int
}

func (response ListCardRechargesdefaultJSONResponse) VisitListCardRechargesResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.StatusCode)

	return json.NewEncoder(w).Encode(response.Body)
}

// StrictServerInterface represents all server handlers.
type StrictServerInterface interface {
	// Database health check
	// (GET /health)
	GetHealth(ctx context.Context, request GetHealthRequestObject) (GetHealthResponseObject, error)
	// Recharge a card
	// (POST /api/v1/recharges)
	CreateRecharge(ctx context.Context, request CreateRechargeRequestObject) (CreateRechargeResponseObject, error)
	// Fetch a completed recharge
	// (GET /api/v1/recharges/{rechargeId})
	GetRecharge(ctx context.Context, request GetRechargeRequestObject) (GetRechargeResponseObject, error)
	// Fetch card balances
	// (GET /api/v1/cards/{cardId})
	GetCard(ctx context.Context, request GetCardRequestObject) (GetCardResponseObject, error)
	// List the latest completed recharges of a card
	// (GET /api/v1/cards/{cardId}/recharges)
	ListCardRecharges(ctx context.Context, request ListCardRechargesRequestObject) (ListCardRechargesResponseObject, error)
}

type StrictHandlerFunc = strictnethttp.StrictHTTPHandlerFunc
type StrictMiddlewareFunc = strictnethttp.StrictHTTPMiddlewareFunc

type StrictHTTPServerOptions struct {
	RequestErrorHandlerFunc  func(w http.ResponseWriter, r *http.Request, err error)
	ResponseErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func NewStrictHandler(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			WriteError(w, http.StatusBadRequest, Error{
				ErrorKind: ErrorKindValidationError,
				Code:      "invalid_request",
				Message:   err.Error(),
			})
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			WriteError(w, http.StatusInternalServerError, Error{
				ErrorKind: ErrorKindStoreError,
				Code:      "internal_error",
				Message:   "internal error",
			})
		},
	}}
}

func NewStrictHandlerWithOptions(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc, options StrictHTTPServerOptions) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: options}
}

type strictHandler struct {
	ssi         StrictServerInterface
	middlewares []StrictMiddlewareFunc
	options     StrictHTTPServerOptions
}

// GetHealth operation middleware
func (sh *strictHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	var request GetHealthRequestObject

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetHealth(ctx, request.(GetHealthRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "GetHealth")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(GetHealthResponseObject); ok {
		if err := validResponse.VisitGetHealthResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// CreateRecharge operation middleware
func (sh *strictHandler) CreateRecharge(w http.ResponseWriter, r *http.Request, params CreateRechargeParams) {
	var request CreateRechargeRequestObject

	request.Params = params

	var body CreateRechargeJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
		return
	}
	request.Body = &body

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.CreateRecharge(ctx, request.(CreateRechargeRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "CreateRecharge")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(CreateRechargeResponseObject); ok {
		if err := validResponse.VisitCreateRechargeResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// GetRecharge operation middleware
func (sh *strictHandler) GetRecharge(w http.ResponseWriter, r *http.Request, rechargeId RechargeId) {
	var request GetRechargeRequestObject

	request.RechargeId = rechargeId

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetRecharge(ctx, request.(GetRechargeRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "GetRecharge")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(GetRechargeResponseObject); ok {
		if err := validResponse.VisitGetRechargeResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// GetCard operation middleware
func (sh *strictHandler) GetCard(w http.ResponseWriter, r *http.Request, cardId CardId) {
	var request GetCardRequestObject

	request.CardId = cardId

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetCard(ctx, request.(GetCardRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "GetCard")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(GetCardResponseObject); ok {
		if err := validResponse.VisitGetCardResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// ListCardRecharges operation middleware
func (sh *strictHandler) ListCardRecharges(w http.ResponseWriter, r *http.Request, cardId CardId, params ListCardRechargesParams) {
	var request ListCardRechargesRequestObject

	request.CardId = cardId
	request.Params = params

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.ListCardRecharges(ctx, request.(ListCardRechargesRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "ListCardRecharges")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(ListCardRechargesResponseObject); ok {
		if err := validResponse.VisitListCardRechargesResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}
