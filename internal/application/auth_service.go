package application

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/meetup-api/internal/domain/entity"
	repo "github.com/oksasatya/meetup-api/internal/domain/repository"
	"github.com/oksasatya/meetup-api/pkg/helpers"
	"github.com/oksasatya/meetup-api/pkg/mailer"
)

// emailShape matches a minimal local@domain form, mirroring the storage
// layer's expectation of lowercase, trimmed addresses.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const minPasswordLen = 6

// AuthService owns user registration and credential verification, plus token
// issuance. Password hashing happens here, before anything reaches a
// repository; there are no persistence-side hooks.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger

	// MailEnabled gates the welcome email enqueued on signup.
	MailEnabled bool
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Pub: pub, Logger: logger, MailEnabled: mailEnabled}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the input, hashes the password and persists the user.
// Duplicate emails (case-insensitive) surface as ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	// Each required field checked explicitly
	if email == "" {
		return nil, NewValidationError("email", "is required")
	}
	if !emailShape.MatchString(email) {
		return nil, NewValidationError("email", "must be a valid email")
	}
	if in.Password == "" {
		return nil, NewValidationError("password", "is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, NewValidationError("password", "must be at least 6 characters long")
	}
	if name == "" {
		return nil, NewValidationError("name", "is required")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Email: email, Password: hash, Name: name}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.enqueueWelcomeEmail(ctx, u)
	return u, nil
}

// Login verifies credentials by normalized email. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, NewValidationError("credentials", "email and password are required")
	}
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken generates the signed bearer token for a user.
func (s *AuthService) IssueToken(u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
	}
	return token, exp, err
}

// enqueueWelcomeEmail is best-effort: signup already succeeded and a queue
// failure must not undo it.
func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to enqueue welcome email")
	}
}
