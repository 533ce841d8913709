package api

import (
	"encoding/json"
	"net/http"
)

// RegisterDocsRoutes mounts the API documentation:
//
//	GET /                  redirects to /docs
//	GET /docs              Swagger UI
//	GET /docs/openapi      the document as JSON, as loaded and validated
//	GET /docs/openapi.yaml the document as embedded
func RegisterDocsRoutes(mux *http.ServeMux) {
	mux.Handle("GET /{$}", http.RedirectHandler("/docs", http.StatusMovedPermanently))
	mux.HandleFunc("GET /docs", serveStatic("text/html; charset=utf-8", []byte(swaggerUIHTML)))
	mux.HandleFunc("GET /docs/openapi", serveOpenAPIJSON)
	mux.HandleFunc("GET /docs/openapi.yaml", serveStatic("application/yaml", specYAML))
}

func serveStatic(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body) //nolint:errcheck // client went away
	}
}

func serveOpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	doc, err := GetSwagger()
	if err != nil {
		http.Error(w, "OpenAPI document unavailable", http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(doc)
	if err != nil {
		http.Error(w, "OpenAPI document unavailable", http.StatusInternalServerError)
		return
	}
	serveStatic("application/json", body)(w, nil)
}

// the bearer token entered in "Authorize" survives page reloads
const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Mess Ledger API - Swagger UI</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({
        url: '/docs/openapi',
        dom_id: '#swagger-ui',
        deepLinking: true,
        persistAuthorization: true
      });
    };
  </script>
</body>
</html>`
