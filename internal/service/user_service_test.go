package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sulakshana2003/BackEnd-R/internal/entity"
	"github.com/sulakshana2003/BackEnd-R/internal/repository"
	"github.com/sulakshana2003/BackEnd-R/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type capturedEmail struct {
	email    string
	code     string
	validFor time.Duration
}

type fakeEmailSender struct {
	sent []capturedEmail
	err  error
}

func (f *fakeEmailSender) SendPasswordResetCode(_ context.Context, email string, code string, validFor time.Duration) error {
	f.sent = append(f.sent, capturedEmail{email: email, code: code, validFor: validFor})
	return f.err
}

func (f *fakeEmailSender) lastCode(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatalf("expected an email to be sent")
	}
	return f.sent[len(f.sent)-1].code
}

type fakeFederatedProvider struct {
	profile *FederatedProfile
	err     error
}

func (f *fakeFederatedProvider) Exchange(context.Context, string) (*FederatedProfile, error) {
	return f.profile, f.err
}

type userFixture struct {
	db       *gorm.DB
	svc      *UserService
	sender   *fakeEmailSender
	clock    *fixedClock
	provider *fakeFederatedProvider
	jwt      *utils.JWTManager
}

func openServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "service-test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.AutoMigrate(&entity.User{}, &entity.OneTimeCode{}, &entity.SecurityLog{}, &entity.Category{}, &entity.Product{}); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return db
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	db := openServiceDB(t)
	f := &userFixture{
		db:       db,
		sender:   &fakeEmailSender{},
		clock:    &fixedClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
		provider: &fakeFederatedProvider{},
		jwt:      &utils.JWTManager{Secret: []byte("test-secret"), Issuer: "test"},
	}
	f.svc = NewUserService(
		repository.NewUserRepository(db),
		repository.NewOneTimeCodeRepository(db),
		repository.NewSecurityLogRepository(db),
		f.sender,
		BcryptPasswordHasher{Cost: bcrypt.MinCost},
		JWTAccessIssuer{Manager: f.jwt},
		f.provider,
		f.clock,
		AuthConfig{},
		nil,
	)
	return f
}

func (f *userFixture) register(t *testing.T, email, password string) {
	t.Helper()
	err := f.svc.Register(context.Background(), RegisterInput{Name: "Ann", Email: email, Password: password})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	err := f.svc.Register(ctx, RegisterInput{Name: "Ann", Email: " A@X.com ", Phone: "0771234567", Password: "secret1", Role: entity.UserRoleWaiter})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := f.jwt.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != "waiter" || claims.Email != "a@x.com" || claims.Name != "Ann" || claims.Phone != "0771234567" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected iat and exp to be set")
	}
	if lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time); lifetime != 7*24*time.Hour {
		t.Fatalf("expected 7 day lifetime, got %s", lifetime)
	}

	var stored entity.User
	if err := f.db.Where("email = ?", "a@x.com").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.PasswordHash == nil || *stored.PasswordHash == "secret1" {
		t.Fatalf("expected password to be stored hashed")
	}
	if stored.ID.String() != claims.UserID {
		t.Fatalf("expected token id %s, got %s", stored.ID, claims.UserID)
	}
}

func TestUserService_RegisterDefaultsAndDuplicates(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	if err := f.svc.Register(ctx, RegisterInput{Name: "Ann", Email: "a@x.com", Phone: "111", Password: "p"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	var stored entity.User
	if err := f.db.Where("email = ?", "a@x.com").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Role != entity.UserRoleCustomer || !stored.IsActive || stored.IsBlocked {
		t.Fatalf("unexpected defaults %+v", stored)
	}

	if err := f.svc.Register(ctx, RegisterInput{Name: "B", Email: "A@x.com", Password: "p"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if err := f.svc.Register(ctx, RegisterInput{Name: "C", Email: "c@x.com", Phone: "111", Password: "p"}); !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}
	if err := f.svc.Register(ctx, RegisterInput{Name: "", Email: "d@x.com", Password: "p"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if err := f.svc.Register(ctx, RegisterInput{Name: "D", Email: "d@x.com", Password: "p", Role: "chef"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestUserService_LoginFailuresLookAlike(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com", "secret1")

	_, errWrong := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "nope"})
	_, errUnknown := f.svc.Login(ctx, LoginInput{Email: "ghost@x.com", Password: "nope"})
	if !errors.Is(errWrong, ErrInvalidCredentials) || !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v and %v", errWrong, errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatalf("expected identical messages, got %q and %q", errWrong, errUnknown)
	}
}

func TestUserService_LoginRefusesBlockedUser(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com", "secret1")

	if err := f.db.Model(&entity.User{}).Where("email = ?", "a@x.com").Update("is_blocked", true).Error; err != nil {
		t.Fatalf("block user: %v", err)
	}
	if _, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "secret1"}); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestUserService_ForgotPasswordSupersedesEarlierCode(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com", "secret1")

	if err := f.svc.ForgotPassword(ctx, "a@x.com"); err != nil {
		t.Fatalf("first forgot: %v", err)
	}
	first := f.sender.lastCode(t)
	f.clock.now = f.clock.now.Add(time.Minute)
	if err := f.svc.ForgotPassword(ctx, "a@x.com"); err != nil {
		t.Fatalf("second forgot: %v", err)
	}
	second := f.sender.lastCode(t)

	if len(second) != 6 || second[0] == '0' {
		t.Fatalf("expected a six digit code, got %q", second)
	}
	if f.sender.sent[1].validFor != time.Hour {
		t.Fatalf("expected one hour validity, got %s", f.sender.sent[1].validFor)
	}

	var count int64
	if err := f.db.Model(&entity.OneTimeCode{}).Count(&count).Error; err != nil {
		t.Fatalf("count codes: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one stored code, got %d", count)
	}

	if first != second {
		err := f.svc.ResetPassword(ctx, ResetPasswordInput{Email: "a@x.com", Code: first, NewPassword: "new1"})
		if !errors.Is(err, ErrInvalidOTP) {
			t.Fatalf("expected superseded code to be rejected, got %v", err)
		}
	}
	if err := f.svc.ResetPassword(ctx, ResetPasswordInput{Email: "a@x.com", Code: second, NewPassword: "new1"}); err != nil {
		t.Fatalf("reset with latest code: %v", err)
	}
}

func TestUserService_ResetCodeExpiryBoundary(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com", "secret1")

	issuedAt := f.clock.now
	if err := f.svc.ForgotPassword(ctx, "a@x.com"); err != nil {
		t.Fatalf("forgot: %v", err)
	}
	code := f.sender.lastCode(t)

	f.clock.now = issuedAt.Add(time.Hour)
	err := f.svc.ResetPassword(ctx, ResetPasswordInput{Email: "a@x.com", Code: code, NewPassword: "new1"})
	if !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected code to be expired at the boundary, got %v", err)
	}

	f.clock.now = issuedAt.Add(time.Hour - time.Second)
	if err := f.svc.ResetPassword(ctx, ResetPasswordInput{Email: "a@x.com", Code: code, NewPassword: "new1"}); err != nil {
		t.Fatalf("expected code to be valid just before expiry: %v", err)
	}
}

func TestUserService_ResetPasswordScenario(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com", "secret1")

	if err := f.svc.ForgotPassword(ctx, "a@x.com"); err != nil {
		t.Fatalf("forgot: %v", err)
	}
	code := f.sender.lastCode(t)
	if f.sender.sent[0].email != "a@x.com" {
		t.Fatalf("expected email to a@x.com, got %s", f.sender.sent[0].email)
	}

	wrong := "100000"
	if code == wrong {
		wrong = "100001"
	}
	if err := f.svc.ResetPassword(ctx, ResetPasswordInput{Email: "a@x.com", Code: wrong, NewPassword: "new1"}); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP for wrong code, got %v", err)
	}
	if err := f.svc.ResetPassword(ctx, ResetPasswordInput{Email: "a@x.com", Code: code, NewPassword: "new1"}); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "new1"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to fail, got %v", err)
	}
	if err := f.svc.ResetPassword(ctx, ResetPasswordInput{Email: "a@x.com", Code: code, NewPassword: "new2"}); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected used code to be consumed, got %v", err)
	}
}

func TestUserService_ForgotPasswordFailures(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	if err := f.svc.ForgotPassword(ctx, "ghost@x.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if err := f.svc.ResetPassword(ctx, ResetPasswordInput{Email: "ghost@x.com", Code: "123456", NewPassword: "x"}); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on reset, got %v", err)
	}

	f.register(t, "a@x.com", "secret1")
	f.sender.err = errors.New("smtp down")
	if err := f.svc.ForgotPassword(ctx, "a@x.com"); !errors.Is(err, ErrEmailDelivery) {
		t.Fatalf("expected ErrEmailDelivery, got %v", err)
	}
	// The undelivered code stays usable.
	code := f.sender.lastCode(t)
	if err := f.svc.ResetPassword(ctx, ResetPasswordInput{Email: "a@x.com", Code: code, NewPassword: "new1"}); err != nil {
		t.Fatalf("expected stored code to remain valid: %v", err)
	}
}

func TestUserService_GoogleLogin(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	f.provider.profile = &FederatedProfile{Email: "G@x.com", Name: "Gee", Picture: "https://img/x.png"}

	token, err := f.svc.GoogleLogin(ctx, "provider-token")
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	claims, err := f.jwt.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Email != "g@x.com" || claims.Role != "customer" || claims.Image != "https://img/x.png" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	again, err := f.svc.GoogleLogin(ctx, "provider-token")
	if err != nil {
		t.Fatalf("second google login: %v", err)
	}
	againClaims, err := f.jwt.ParseAccessToken(again)
	if err != nil {
		t.Fatalf("parse second token: %v", err)
	}
	if againClaims.UserID != claims.UserID {
		t.Fatalf("expected the same account to be reused")
	}

	var user entity.User
	if err := f.db.Where("email = ?", "g@x.com").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.PasswordHash != nil {
		t.Fatalf("expected federated account without password")
	}
	// Password login keeps failing for accounts without a password.
	if _, err := f.svc.Login(ctx, LoginInput{Email: "g@x.com", Password: "anything"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := f.svc.GoogleLogin(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty token, got %v", err)
	}
	f.provider.err = errors.New("boom")
	if _, err := f.svc.GoogleLogin(ctx, "provider-token"); !errors.Is(err, ErrFederatedLoginFailed) {
		t.Fatalf("expected ErrFederatedLoginFailed, got %v", err)
	}
}

func TestUserService_Profile(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com", "secret1")
	f.register(t, "b@x.com", "secret2")

	var a, b entity.User
	if err := f.db.Where("email = ?", "a@x.com").First(&a).Error; err != nil {
		t.Fatalf("load a: %v", err)
	}
	if err := f.db.Where("email = ?", "b@x.com").First(&b).Error; err != nil {
		t.Fatalf("load b: %v", err)
	}

	if err := f.svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{Name: "Annie", Phone: "555"}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	profile, err := f.svc.GetProfile(ctx, a.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Name != "Annie" || profile.Phone == nil || *profile.Phone != "555" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	if err := f.svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{}); err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if err := f.svc.UpdateProfile(ctx, b.ID, UpdateProfileInput{Phone: "555"}); !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}

	ghost := uuid.New()
	if _, err := f.svc.GetProfile(ctx, ghost); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := f.svc.UpdateProfile(ctx, ghost, UpdateProfileInput{Name: "x"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on update, got %v", err)
	}
}

func TestUserService_RecordsSecurityLogs(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com", "secret1")

	ip := "10.0.0.1"
	if _, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "bad", IPAddress: &ip}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected failed login, got %v", err)
	}
	if _, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "secret1", IPAddress: &ip}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := f.svc.ForgotPassword(ctx, "a@x.com"); err != nil {
		t.Fatalf("forgot: %v", err)
	}

	logs, err := f.svc.ListSecurityLogs(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list security logs: %v", err)
	}
	seen := map[entity.SecurityAction]int{}
	for _, log := range logs {
		seen[log.Action]++
		if log.UserID == nil {
			t.Fatalf("expected entries for a known user to carry the user id")
		}
	}
	if seen[entity.LoginFailed] != 1 || seen[entity.LoginSuccess] != 1 || seen[entity.PasswordResetRequested] != 1 {
		t.Fatalf("unexpected security actions %v", seen)
	}
	code := f.sender.lastCode(t)
	for _, log := range logs {
		if strings.Contains(string(log.Metadata), code) {
			t.Fatalf("reset code leaked into security log metadata")
		}
	}
}
