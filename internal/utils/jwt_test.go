package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := JWTManager{Secret: []byte("secret"), Issuer: "test"}
	token, ttl, err := m.IssueAccessToken(AccessClaims{
		UserID: "u-1",
		Role:   "admin",
		Name:   "A",
		Email:  "a@x.com",
		Phone:  "0771234567",
		Image:  "https://img/a.png",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ttl != 7*24*time.Hour {
		t.Fatalf("expected default ttl of 7 days, got %s", ttl)
	}

	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != "admin" || claims.Name != "A" ||
		claims.Email != "a@x.com" || claims.Phone != "0771234567" || claims.Image != "https://img/a.png" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "u-1" || claims.Issuer != "test" {
		t.Fatalf("unexpected registered claims: %+v", claims.RegisteredClaims)
	}
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	issuer := JWTManager{Secret: []byte("one")}
	verifier := JWTManager{Secret: []byte("two")}
	token, _, err := issuer.IssueAccessToken(AccessClaims{UserID: "u-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.ParseAccessToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := JWTManager{Secret: []byte("secret")}
	claims := AccessClaims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_RejectsMalformed(t *testing.T) {
	m := JWTManager{Secret: []byte("secret")}
	if _, err := m.ParseAccessToken("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
