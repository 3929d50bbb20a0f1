package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

const minPasswordLength = 8

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is a logged-in user plus their freshly issued access token.
type Session struct {
	User        *domain.User
	AccessToken string
	ExpiresAt   time.Time
}

type UserService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	log        *logrus.Logger
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int, log *logrus.Logger) *UserService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &UserService{users: users, tokens: tokens, bcryptCost: bcryptCost, log: log}
}

// Register creates a regular account. is_staff is never client-settable;
// staff users are provisioned out of band.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	ve := domain.NewValidationError()
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		ve.Add("email", "a valid email is required")
	}
	if len(input.Password) < minPasswordLength {
		ve.Addf("password", "password must be at least %d characters", minPasswordLength)
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.ID, user.IsStaff)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, AccessToken: token, ExpiresAt: exp}, nil
}

var _ UserUseCase = (*UserService)(nil)
