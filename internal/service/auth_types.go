package service

import (
	"context"
	"time"

	"github.com/sulakshana2003/BackEnd-R/internal/entity"
)

const defaultResetTTL = time.Hour

type AuthConfig struct {
	ResetCodeTTL time.Duration
}

type EmailSender interface {
	SendPasswordResetCode(ctx context.Context, email string, code string, validFor time.Duration) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(user entity.User) (string, error)
}

// FederatedProfile is what an external identity provider vouches for.
type FederatedProfile struct {
	Email   string
	Name    string
	Picture string
}

type FederatedIdentityProvider interface {
	Exchange(ctx context.Context, providerToken string) (*FederatedProfile, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
