package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleUserInfoProvider trusts whatever profile Google's userinfo endpoint returns
// for the presented access token.
type GoogleUserInfoProvider struct {
	UserInfoURL string
	HTTPClient  *http.Client
}

func NewGoogleUserInfoProvider(userInfoURL string) *GoogleUserInfoProvider {
	if strings.TrimSpace(userInfoURL) == "" {
		userInfoURL = GoogleUserInfoURL
	}
	return &GoogleUserInfoProvider{
		UserInfoURL: userInfoURL,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (p *GoogleUserInfoProvider) Exchange(ctx context.Context, providerToken string) (*FederatedProfile, error) {
	if strings.TrimSpace(providerToken) == "" {
		return nil, ErrInvalidInput
	}
	base := p.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 10 * time.Second}
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: providerToken, TokenType: "Bearer"}))
	client.Timeout = base.Timeout

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFederatedLoginFailed, err)
	}
	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFederatedLoginFailed, err)
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil, fmt.Errorf("%w: userinfo returned status %d", ErrFederatedLoginFailed, response.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(response.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode userinfo: %v", ErrFederatedLoginFailed, err)
	}
	if strings.TrimSpace(info.Email) == "" {
		return nil, fmt.Errorf("%w: userinfo has no email", ErrFederatedLoginFailed)
	}
	return &FederatedProfile{Email: info.Email, Name: info.Name, Picture: info.Picture}, nil
}
