package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sulakshana2003/BackEnd-R/internal/entity"
	"github.com/sulakshana2003/BackEnd-R/internal/repository"
	"github.com/sulakshana2003/BackEnd-R/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Compared against when the account does not exist so that unknown emails
// cost the same bcrypt work as wrong passwords.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type UserService struct {
	users        repository.UserRepository
	codes        repository.OneTimeCodeRepository
	securityLogs repository.SecurityLogRepository

	emailSender  EmailSender
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	federated    FederatedIdentityProvider
	clock        Clock
	config       AuthConfig
	log          logrus.FieldLogger
}

func NewUserService(
	users repository.UserRepository,
	codes repository.OneTimeCodeRepository,
	securityLogs repository.SecurityLogRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	federated FederatedIdentityProvider,
	clock Clock,
	config AuthConfig,
	log logrus.FieldLogger,
) *UserService {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &UserService{
		users:        users,
		codes:        codes,
		securityLogs: securityLogs,
		emailSender:  emailSender,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		federated:    federated,
		clock:        clock,
		config:       config,
		log:          log,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) error {
	name := strings.TrimSpace(input.Name)
	email := utils.NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return ErrInvalidInput
	}
	role := input.Role
	if role == "" {
		role = entity.UserRoleCustomer
	}
	if !role.Valid() {
		return ErrInvalidInput
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExists
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return err
	}

	user := &entity.User{
		Name:         name,
		Email:        &email,
		PasswordHash: &hash,
		Role:         role,
		IsActive:     true,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = &phone
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.duplicateCause(ctx, email)
		}
		return err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	return nil
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (string, error) {
	email := utils.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return "", ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	entry := s.log.WithField("ip", deref(input.IPAddress))
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		entry.Warn("login failed")
		s.recordSecurity(ctx, nil, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return "", ErrInvalidCredentials
	}
	entry = entry.WithField("user_id", user.ID)

	if !user.CanSignIn() {
		entry.Warn("login refused for inactive user")
		s.recordSecurity(ctx, &user.ID, input.IPAddress, entity.LoginFailed, map[string]any{"reason": "inactive"})
		return "", ErrUserInactive
	}

	if user.PasswordHash == nil || *user.PasswordHash == "" {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		entry.Warn("login failed")
		s.recordSecurity(ctx, &user.ID, input.IPAddress, entity.LoginFailed, map[string]any{"reason": "no_password"})
		return "", ErrInvalidCredentials
	}
	if !s.passwordHash.Verify(*user.PasswordHash, input.Password) {
		entry.Warn("login failed")
		s.recordSecurity(ctx, &user.ID, input.IPAddress, entity.LoginFailed, nil)
		return "", ErrInvalidCredentials
	}

	token, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return "", err
	}
	entry.Info("login succeeded")
	s.recordSecurity(ctx, &user.ID, input.IPAddress, entity.LoginSuccess, nil)
	return token, nil
}

func (s *UserService) GoogleLogin(ctx context.Context, providerToken string) (string, error) {
	if strings.TrimSpace(providerToken) == "" {
		return "", ErrInvalidInput
	}
	if s.federated == nil {
		return "", fmt.Errorf("%w: provider not configured", ErrFederatedLoginFailed)
	}

	profile, err := s.federated.Exchange(ctx, providerToken)
	if err != nil {
		if errors.Is(err, ErrFederatedLoginFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrFederatedLoginFailed, err)
	}

	email := utils.NormalizeEmail(profile.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		user = &entity.User{
			Name:     federatedName(profile),
			Email:    &email,
			Role:     entity.UserRoleCustomer,
			IsActive: true,
		}
		if picture := strings.TrimSpace(profile.Picture); picture != "" {
			user.Image = &picture
		}
		if err := s.users.Create(ctx, user); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return "", err
			}
			// Another request created the account first.
			user, err = s.users.FindByEmail(ctx, email)
			if err != nil {
				return "", err
			}
			if user == nil {
				return "", ErrUserExists
			}
		} else {
			s.log.WithField("user_id", user.ID).Info("user created from federated login")
		}
	}

	if !user.CanSignIn() {
		return "", ErrUserInactive
	}

	token, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return "", err
	}
	s.recordSecurity(ctx, &user.ID, nil, entity.GoogleLogin, nil)
	return token, nil
}

func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrAccountNotFound
	}

	code, err := utils.GenerateNumericCode()
	if err != nil {
		return err
	}
	ttl := s.resetCodeTTL()
	otp := &entity.OneTimeCode{
		UserID:    user.ID,
		CodeHash:  utils.HashToken(code),
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.codes.Supersede(ctx, otp); err != nil {
		return err
	}

	if s.emailSender == nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, errEmailNotConfigured)
	}
	if err := s.emailSender.SendPasswordResetCode(ctx, email, code, ttl); err != nil {
		s.log.WithField("user_id", user.ID).WithError(err).Error("password reset email failed")
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	s.log.WithField("user_id", user.ID).Info("password reset requested")
	s.recordSecurity(ctx, &user.ID, nil, entity.PasswordResetRequested, nil)
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	email := utils.NormalizeEmail(input.Email)
	code := strings.TrimSpace(input.Code)
	if email == "" || code == "" || input.NewPassword == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrAccountNotFound
	}

	otp, err := s.codes.FindValid(ctx, user.ID, utils.HashToken(code), s.now())
	if err != nil {
		return err
	}
	if otp == nil {
		s.log.WithField("user_id", user.ID).Warn("password reset with invalid code")
		s.recordSecurity(ctx, &user.ID, nil, entity.PasswordResetFailed, nil)
		return ErrInvalidOTP
	}

	hash, err := s.passwordHash.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	if err := s.codes.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}

	s.log.WithField("user_id", user.ID).Info("password reset completed")
	s.recordSecurity(ctx, &user.ID, nil, entity.PasswordReset, nil)
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	var update repository.ProfileUpdate
	if name := strings.TrimSpace(input.Name); name != "" {
		update.Name = &name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		update.Phone = &phone
	}
	if err := s.users.UpdateProfile(ctx, user.ID, update); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPhoneTaken
		}
		return err
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *UserService) ListSecurityLogs(ctx context.Context, limit, offset int) ([]entity.SecurityLog, error) {
	if s.securityLogs == nil {
		return []entity.SecurityLog{}, nil
	}
	return s.securityLogs.ListRecent(ctx, limit, offset)
}

// recordSecurity persists an audit entry. Failures are logged and never
// change the outcome of the workflow.
func (s *UserService) recordSecurity(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.SecurityAction,
	metadata map[string]any,
) {
	if s.securityLogs == nil {
		return
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			s.log.WithError(err).Warn("security log metadata")
			return
		}
		payload = datatypes.JSON(bytes)
	}
	log := &entity.SecurityLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	if err := s.securityLogs.Log(ctx, log); err != nil {
		s.log.WithError(err).WithField("action", action).Warn("security log write failed")
	}
}

// duplicateCause tells apart which unique index a failed insert hit.
func (s *UserService) duplicateCause(ctx context.Context, email string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing == nil {
		return ErrPhoneTaken
	}
	return ErrUserExists
}

func federatedName(profile *FederatedProfile) string {
	if name := strings.TrimSpace(profile.Name); name != "" {
		return name
	}
	email := profile.Email
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func (s *UserService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *UserService) resetCodeTTL() time.Duration {
	if s.config.ResetCodeTTL > 0 {
		return s.config.ResetCodeTTL
	}
	return defaultResetTTL
}
