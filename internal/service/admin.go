package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/messhub/ledger/internal/models"
	"github.com/messhub/ledger/internal/repository"
)

// IssueCardRequest describes a new card
type IssueCardRequest struct {
	ExpiresAt    *time.Time
	OwnerUserID  int64
	BalanceCents int64
}

// AdminService creates users and cards. Recharges go through RechargeService.
type AdminService struct {
	users repository.UserRepository
	cards repository.CardRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(users repository.UserRepository, cards repository.CardRepository) *AdminService {
	return &AdminService{users: users, cards: cards}
}

// AddUser creates a user that cards can be issued to
func (s *AdminService) AddUser(ctx context.Context, username string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError(ErrCodeInvalidRequest, "username cannot be empty")
	}
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, validationError(ErrCodeInvalidRequest, "role must be admin or user")
	}

	user := &models.User{Username: username, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrConstraint) {
			return nil, validationError(ErrCodeInvalidRequest, "username is already taken")
		}
		return nil, storeFailure(ctx, ErrCodeInternalError, err)
	}

	return user, nil
}

// IssueCard creates an active card with an opening balance
func (s *AdminService) IssueCard(ctx context.Context, req IssueCardRequest) (*models.Card, error) {
	if req.BalanceCents < 0 {
		return nil, validationError(ErrCodeInvalidAmount, "opening balance cannot be negative")
	}

	card := &models.Card{
		OwnerUserID:        req.OwnerUserID,
		BalanceCents:       req.BalanceCents,
		LifetimeTotalCents: req.BalanceCents,
		ExpiresAt:          req.ExpiresAt,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		if errors.Is(err, models.ErrInvalidReference) {
			return nil, validationError(ErrCodeInvalidRequest, "card owner does not exist")
		}
		return nil, storeFailure(ctx, ErrCodeInternalError, err)
	}

	return card, nil
}
