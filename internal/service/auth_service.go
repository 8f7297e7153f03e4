package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tawsila/internal/config"
	"tawsila/internal/ids"
	"tawsila/internal/metrics"
	"tawsila/internal/models"
	"tawsila/internal/repository"
	"tawsila/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserSuspended      = errors.New("user suspended")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailInvalid       = errors.New("invalid email")
	ErrPasswordTooShort   = errors.New("password too short")
)

// initialTrustScore seeds new accounts at the neutral midpoint until the
// external scoring feed reports a real value. The score is never computed
// in this service.
const initialTrustScore = 50

type AuthService struct {
	users    UserStore
	sessions SessionStore
	mirror   SessionMirror
	cfg      *config.AppConfig
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	mirror SessionMirror,
	cfg *config.AppConfig,
	m *metrics.Metrics,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		mirror:   mirror,
		cfg:      cfg,
		metrics:  m,
		log:      log,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
	Role        string
	DeviceName  string
	IPAddress   string
	UserAgent   string
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         models.User
	DeviceID     string
}

// Register creates an account holding the single chosen role, which also
// becomes the active role, and opens the first device session.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return AuthResult{}, ErrEmailInvalid
	}
	if len(input.Password) < 8 {
		return AuthResult{}, ErrPasswordTooShort
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		return AuthResult{}, err
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	var phone *string
	if p := strings.TrimSpace(input.Phone); p != "" {
		phone = &p
	}

	user := models.User{
		ID:           ids.New(),
		Email:        input.Email,
		Phone:        phone,
		PasswordHash: passwordHash,
		DisplayName:  input.DisplayName,
		Roles:        []models.Role{role},
		ActiveRole:   role,
		Availability: models.AvailabilityOffline,
		TrustScore:   initialTrustScore,
		Status:       models.UserStatusActive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	s.metrics.IncSignups()

	deviceName := input.DeviceName
	if deviceName == "" {
		deviceName = "New Device"
	}
	_, tokens, err := s.createSession(ctx, user, ids.New(), deviceName, input.IPAddress, input.UserAgent)
	if err != nil {
		return AuthResult{}, err
	}
	return tokens, nil
}

type LoginInput struct {
	Email      string
	Password   string
	DeviceID   string
	DeviceName string
	IPAddress  string
	UserAgent  string
}

// Login verifies stored credentials. The roles on the result are whatever
// the account actually holds; there is no blanket grant.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if user.Status != models.UserStatusActive {
		return AuthResult{}, ErrUserSuspended
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	deviceID := input.DeviceID
	if deviceID == "" {
		deviceID = ids.New()
	}
	deviceName := input.DeviceName
	if deviceName == "" {
		deviceName = "Unknown Device"
	}

	_, tokens, err := s.createSession(ctx, user, deviceID, deviceName, input.IPAddress, input.UserAgent)
	if err != nil {
		return AuthResult{}, err
	}
	s.metrics.IncLogins()
	return tokens, nil
}

func (s *AuthService) createSession(
	ctx context.Context,
	user models.User,
	deviceID string,
	deviceName string,
	ipAddress string,
	userAgent string,
) (models.Session, AuthResult, error) {
	refreshToken, refreshHash, err := security.GenerateRefreshToken(64)
	if err != nil {
		return models.Session{}, AuthResult{}, err
	}

	session := models.Session{
		ID:               ids.New(),
		UserID:           user.ID,
		DeviceID:         deviceID,
		DeviceName:       deviceName,
		RefreshTokenHash: refreshHash,
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
		ExpiresAt:        time.Now().Add(s.cfg.Security.JWTRefreshTTL),
	}

	accessToken, err := s.issueAccessToken(user, session.ID, deviceID)
	if err != nil {
		return models.Session{}, AuthResult{}, err
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return models.Session{}, AuthResult{}, err
	}
	s.mirrorSet(ctx, session)

	if err := s.enforceSessionLimit(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("enforce session limit failed")
	}

	return session, AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
		DeviceID:     deviceID,
	}, nil
}

func (s *AuthService) issueAccessToken(user models.User, sessionID string, deviceID string) (string, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}
	return security.GenerateAccessToken(
		s.cfg.Security.JWTAccessSecret,
		user.ID,
		sessionID,
		deviceID,
		roles,
		string(user.ActiveRole),
		s.cfg.Security.JWTAccessTTL,
	)
}

func (s *AuthService) enforceSessionLimit(ctx context.Context, userID string) error {
	count, err := s.sessions.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count <= s.cfg.Security.MaxSessions {
		return nil
	}
	return s.sessions.DeleteOldestSessions(ctx, userID, s.cfg.Security.MaxSessions)
}

type RefreshInput struct {
	UserID       string
	RefreshToken string
	DeviceID     string
}

func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (AuthResult, error) {
	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if user.Status != models.UserStatusActive {
		return AuthResult{}, ErrUserSuspended
	}

	refreshHash := security.HashRefreshToken(input.RefreshToken)
	session, err := s.sessions.FindByRefreshHash(ctx, input.UserID, refreshHash)
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	if session.DeviceID != input.DeviceID {
		return AuthResult{}, ErrInvalidCredentials
	}

	if session.ExpiresAt.Before(time.Now()) {
		_ = s.sessions.DeleteByID(ctx, session.ID)
		s.mirrorDelete(ctx, session.ID)
		return AuthResult{}, ErrInvalidCredentials
	}

	refreshToken, newHash, err := security.GenerateRefreshToken(64)
	if err != nil {
		return AuthResult{}, err
	}

	session.RefreshTokenHash = newHash
	session.ExpiresAt = time.Now().Add(s.cfg.Security.JWTRefreshTTL)

	if err := s.sessions.Create(ctx, session); err != nil {
		return AuthResult{}, err
	}
	s.mirrorSet(ctx, session)

	accessToken, err := s.issueAccessToken(user, session.ID, session.DeviceID)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
		DeviceID:     session.DeviceID,
	}, nil
}

// Logout tears down the device session. When the active role is a worker
// role the caller chooses whether to stay visible to dispatch: with
// remainAvailable the availability persists as online, otherwise logging
// out forces offline. Buyers have no availability to speak of.
func (s *AuthService) Logout(ctx context.Context, userID string, deviceID string, sessionID string, remainAvailable bool) error {
	user, err := s.users.GetByID(ctx, userID)
	if err == nil && user.ActiveRole.IsWorker() {
		if remainAvailable {
			user.Availability = models.AvailabilityOnline
		} else {
			user.Availability = models.AvailabilityOffline
		}
		if err := s.users.Update(ctx, user); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("persist availability on logout failed")
		}
	}

	s.mirrorDelete(ctx, sessionID)
	return s.sessions.DeleteByDevice(ctx, userID, deviceID)
}

func (s *AuthService) mirrorSet(ctx context.Context, session models.Session) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Set(ctx, session); err != nil {
		s.log.Warn().Err(err).Str("session_id", session.ID).Msg("session mirror set failed")
	}
}

func (s *AuthService) mirrorDelete(ctx context.Context, sessionID string) {
	if s.mirror == nil || sessionID == "" {
		return
	}
	if err := s.mirror.Delete(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("session mirror delete failed")
	}
}
