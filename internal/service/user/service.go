package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/repository"
)

type iUserStore interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	CreateUser(ctx context.Context, params *repository.CreateUserParams) (domain.User, error)
}

type service struct {
	store  iUserStore
	logger *slog.Logger
}

func NewService(store iUserStore, logger *slog.Logger) *service {
	return &service{
		store:  store,
		logger: logger,
	}
}

type RegisterParams struct {
	Username string
	Password string
}

// Register hashes the credential and inserts the user. Username uniqueness is
// enforced by the store constraint, not a check-then-insert.
func (s service) Register(ctx context.Context, params *RegisterParams) (domain.User, error) {
	username := strings.TrimSpace(params.Username)
	if len(username) < 3 || len(username) > 32 {
		return domain.User{}, domain.NewValidationError("username must be between 3 and 32 characters")
	}
	if len(params.Password) < 6 {
		return domain.User{}, domain.NewValidationError("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &repository.CreateUserParams{
		Username: username,
		Password: string(hash),
	})
	if err != nil {
		s.logger.DebugContext(ctx, "register failed", "username", username, "error", err)
		return domain.User{}, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.Id, "username", user.Username)
	return user, nil
}

type LoginParams struct {
	Username string
	Password string
}

func (s service) Login(ctx context.Context, params *LoginParams) (domain.User, error) {
	user, err := s.store.GetUserByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(params.Password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s service) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.store.GetUser(ctx, id)
}
