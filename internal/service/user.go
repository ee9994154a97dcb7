package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/events"
	"github.com/marketsquare/storefront/internal/logging"
	"github.com/marketsquare/storefront/internal/models"
	"github.com/marketsquare/storefront/internal/repo"
)

// RoleMirror pushes a role claim back to the identity provider after a sync.
type RoleMirror interface {
	SetUserRole(ctx context.Context, userID, role string) error
}

type UserService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	IdP    RoleMirror // nil when no management API key is configured
}

type IdentityUser struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// SyncUser upserts the local record for an identity-provider created/updated
// event, keyed by email, and mirrors the role claim back to the provider.
func (s *UserService) SyncUser(ctx context.Context, in IdentityUser) (*models.User, error) {
	if in.ID == "" || strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("id and email are required: %w", ErrInvalidInput)
	}

	role := in.Role
	if role == "" {
		role = "user"
	}
	user := &models.User{
		ID:    in.ID,
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
		Name:  in.Name,
		Role:  role,
	}
	if err := s.Repo.UpsertUserByEmail(ctx, user); err != nil {
		return nil, err
	}

	if s.IdP != nil {
		if err := s.IdP.SetUserRole(ctx, user.ID, user.Role); err != nil {
			logging.FromContext(ctx).Error("role mirror failed", "user_id", user.ID, "error", err)
		}
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":    "user_synced",
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id is required: %w", ErrInvalidInput)
	}
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, id, map[string]any{
		"type":    "user_deleted",
		"user_id": id,
	})
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	return user, err
}

// UpdateProfile changes the display name only; email and role are owned by
// the identity provider.
func (s *UserService) UpdateProfile(ctx context.Context, id, name string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	if err := s.Repo.UpdateUserName(ctx, id, name); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

func (s *UserService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(pubCtx, events.TopicUsers, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "error", err)
	}
}
