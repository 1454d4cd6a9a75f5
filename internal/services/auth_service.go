package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"praia-backend/internal/models"
	"praia-backend/internal/repository"
	"praia-backend/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService implements the mocked login. Any well-formed email may sign in; the user id
// is derived from the email, and the admin role is granted to ADMIN_EMAIL only. This is a
// placeholder, not an authorization model.
type AuthService struct {
	tokens     *utils.TokenIssuer
	denylist   *TokenDenylist
	store      *repository.Store
	adminEmail string
	now        func() time.Time
	log        *zap.Logger
}

func NewAuthService(tokens *utils.TokenIssuer, denylist *TokenDenylist, store *repository.Store, adminEmail string, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		tokens:     tokens,
		denylist:   denylist,
		store:      store,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		now:        time.Now,
		log:        log,
	}
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.Identity
}

func (s *AuthService) Login(ctx context.Context, email, name string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return Session{}, fmt.Errorf("%w: invalid email %q", models.ErrValidation, email)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	id := models.Identity{
		UserID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String(),
		Email:  email,
		Name:   name,
		Role:   models.RoleUser,
	}
	if s.adminEmail != "" && email == s.adminEmail {
		id.Role = models.RoleAdmin
	}

	token, exp, err := s.tokens.GenerateToken(id)
	if err != nil {
		return Session{}, err
	}
	s.log.Info("User logged in", zap.String("user_id", id.UserID), zap.String("role", id.Role))
	return Session{Token: token, ExpiresAt: exp, User: id}, nil
}

// Logout revokes token and drops everything the caller stored during the session.
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return err
	}
	if err := s.denylist.Add(ctx, token, expiresAt.Sub(s.now())); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if err := s.store.ClearOwner(ctx, id.UserID); err != nil {
		return fmt.Errorf("clear session data: %w", err)
	}
	s.log.Info("User logged out", zap.String("user_id", id.UserID))
	return nil
}

// Authenticate resolves a bearer token into an identity, rejecting revoked tokens.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Identity, time.Time, error) {
	revoked, err := s.denylist.Contains(ctx, token)
	if err != nil {
		return models.Identity{}, time.Time{}, fmt.Errorf("check token status: %w", err)
	}
	if revoked {
		return models.Identity{}, time.Time{}, fmt.Errorf("%w: token has been revoked", models.ErrUnauthenticated)
	}
	id, exp, err := s.tokens.ValidateToken(token)
	if err != nil {
		return models.Identity{}, time.Time{}, fmt.Errorf("%w: invalid or expired token", models.ErrUnauthenticated)
	}
	return id, exp, nil
}
