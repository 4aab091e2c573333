package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/job_tracker/internal/events"
	"github.com/Skotchmaster/job_tracker/internal/models"
	"github.com/Skotchmaster/job_tracker/internal/repo"
	pkg_hash "github.com/Skotchmaster/job_tracker/pkg/hash"
	"github.com/Skotchmaster/job_tracker/pkg/logging"
	"github.com/Skotchmaster/job_tracker/pkg/tokens"
)

const (
	DefaultAccessTTL  = 30 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
	AlgorithmHS256    = "HS256"
)

var checkPassword = pkg_hash.CheckPassword

// dummyHash is compared against when the email is unknown so both login
// failures cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, err := pkg_hash.HashPassword("job-tracker-dummy-password")
	if err != nil {
		return ""
	}
	return h
})

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

// TokenConfig is read-only after construction and shared by all requests.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Algorithm     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

func (c TokenConfig) validate() error {
	if len(c.AccessSecret) == 0 {
		return errors.New("access secret is empty")
	}
	if len(c.RefreshSecret) == 0 {
		return errors.New("refresh secret is empty")
	}
	if string(c.AccessSecret) == string(c.RefreshSecret) {
		return errors.New("access and refresh secrets must differ")
	}
	if c.Algorithm != "" && c.Algorithm != AlgorithmHS256 {
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, c.Algorithm)
	}
	return nil
}

type AuthService struct {
	Users  UserStore
	Events events.Publisher
	cfg    TokenConfig
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	UserID       uint
}

type SignupInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
}

func NewAuthService(users UserStore, cfg TokenConfig, pub events.Publisher) (*AuthService, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmHS256
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &AuthService{Users: users, Events: pub, cfg: cfg}, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	h, err := pkg_hash.HashPassword(password)
	if err != nil {
		if errors.Is(err, pkg_hash.ErrEmptyPassword) {
			return "", fmt.Errorf("%w: password is required", ErrValidation)
		}
		return "", err
	}
	return h, nil
}

func (s *AuthService) VerifyPassword(password, hash string) bool {
	return checkPassword(hash, password)
}

// CreateAccessToken signs {sub, exp, typ=access}. A zero expiresDelta means the
// configured access window.
func (s *AuthService) CreateAccessToken(subject string, expiresDelta time.Duration) (string, time.Time, error) {
	if expiresDelta <= 0 {
		expiresDelta = s.cfg.AccessTTL
	}
	now := s.cfg.Now()
	exp := now.Add(expiresDelta).Truncate(time.Second)

	claims := tokens.AccessClaims{
		Type: tokens.TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := tokens.Sign(claims, s.cfg.AccessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (s *AuthService) CreateRefreshToken(subject string, expiresDelta time.Duration) (string, time.Time, error) {
	if expiresDelta <= 0 {
		expiresDelta = s.cfg.RefreshTTL
	}
	now := s.cfg.Now()
	exp := now.Add(expiresDelta).Truncate(time.Second)

	claims := tokens.RefreshClaims{
		Type: tokens.TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token, err := tokens.Sign(claims, s.cfg.RefreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Authenticate resolves a bearer access token to its identity. The checks run
// in order and stop at the first failure: signature, payload shape, expiry,
// identity lookup.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.authenticate")

	var claims tokens.AccessClaims
	if err := tokens.Verify(token, s.cfg.AccessSecret, &claims); err != nil {
		l.Debug("authenticate_failed", "reason", "bad signature or structure", "error", err)
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil || claims.Type != tokens.TypeAccess {
		l.Debug("authenticate_failed", "reason", "payload schema")
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt.Time.Before(s.cfg.Now()) {
		return nil, ErrTokenExpired
	}

	user, err := s.Users.FindUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownIdentity
		}
		return nil, fmt.Errorf("lookup identity: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")
	email = strings.TrimSpace(email)

	user, err := s.Users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.VerifyPassword(password, dummyHash())
			l.Warn("login_failed", "status", 400, "reason", "unknown email")
			return nil, ErrAuthenticationFailed
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !s.VerifyPassword(password, user.PasswordHash) {
		l.Warn("login_failed", "status", 400, "reason", "password mismatch", "user_id", user.ID)
		return nil, ErrAuthenticationFailed
	}

	accessToken, accessExp, err := s.CreateAccessToken(user.Email, 0)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}
	refreshToken, refreshExp, err := s.CreateRefreshToken(user.Email, 0)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), UserEvent{
		Type:   "user_logged_in",
		UserID: user.ID,
		Email:  user.Email,
		At:     s.cfg.Now().UTC(),
	})

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		UserID:       user.ID,
	}, nil
}

func validateSignup(in *SignupInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case in.Surname == "":
		return fmt.Errorf("%w: surname is required", ErrValidation)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	case in.Email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return fmt.Errorf("%w: email is not a valid address", ErrValidation)
	}
	return nil
}

// Signup registers a new identity. The existence pre-check gives a clean error
// in the common case; two concurrent signups for one email still race on the
// unique index and the loser gets ErrDuplicateIdentity too.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if err := validateSignup(&in); err != nil {
		l.Warn("signup_failed", "status", 400, "reason", err.Error())
		return nil, err
	}

	_, err := s.Users.FindUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		l.Warn("signup_failed", "status", 400, "reason", "email already registered")
		return nil, ErrDuplicateIdentity
	case !errors.Is(err, repo.ErrNotFound):
		l.Error("signup_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	pwHash, err := s.HashPassword(in.Password)
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		PasswordHash: pwHash,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			l.Warn("signup_failed", "status", 400, "reason", "lost unique race")
			return nil, ErrDuplicateIdentity
		}
		l.Error("signup_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.Events, events.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), UserEvent{
		Type:   "user_registered",
		UserID: user.ID,
		Email:  user.Email,
		At:     s.cfg.Now().UTC(),
	})

	l.Info("user_registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
