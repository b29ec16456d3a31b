package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

var errEmailNotConfigured = errors.New("email sender not configured")

type ResendEmailSender struct {
	client *resend.Client
	From   string
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		client: resend.NewClient(apiKey),
		From:   from,
	}
}

func (s *ResendEmailSender) SendPasswordResetCode(ctx context.Context, email string, code string, validFor time.Duration) error {
	if s.client == nil {
		return errEmailNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{email},
		Subject: "Password Reset OTP",
		Text:    passwordResetText(code, validFor),
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func passwordResetText(code string, validFor time.Duration) string {
	return fmt.Sprintf("Your OTP for password reset is: %s. It is valid for %s.", code, humanDuration(validFor))
}

func humanDuration(d time.Duration) string {
	switch {
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return d.String()
}
