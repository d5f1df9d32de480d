package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/app/repositories"
	"github.com/shashiranjanraj/storehub/pkg/auth"
	"gorm.io/gorm"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token   string      `json:"token"`
	Role    models.Role `json:"role"`
	StoreID string      `json:"store_id,omitempty"`
}

type AuthService struct {
	db     *gorm.DB
	users  *repositories.UserRepository
	stores *repositories.StoreRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:     db,
		users:  repositories.NewUserRepository(),
		stores: repositories.NewStoreRepository(),
	}
}

// Login checks username/password and issues an access token. Unknown users
// and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, s.db, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResult{}, ErrUnauthorized
		}
		return LoginResult{}, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return LoginResult{}, ErrUnauthorized
	}

	out := LoginResult{Role: user.Role}
	if user.Role == models.RoleStore {
		store, err := s.stores.FindByUserID(ctx, s.db, user.ID)
		if err != nil {
			return LoginResult{}, notFoundOr(err, "store")
		}
		out.StoreID = store.ID
	}

	out.Token, err = auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// Resolve turns a verified identity into a Caller. STORE identities are bound
// to the store their user owns.
func (s *AuthService) Resolve(ctx context.Context, id *auth.Identity) (Caller, error) {
	if id == nil || id.UserID == "" {
		return Caller{}, ErrUnauthorized
	}

	switch models.Role(id.Role) {
	case models.RoleRoot:
		return Caller{UserID: id.UserID, Role: models.RoleRoot}, nil
	case models.RoleStore:
		store, err := s.stores.FindByUserID(ctx, s.db, id.UserID)
		if err != nil {
			return Caller{}, notFoundOr(err, "store")
		}
		return Caller{UserID: id.UserID, Role: models.RoleStore, StoreID: store.ID}, nil
	default:
		return Caller{}, ErrUnauthorized
	}
}
