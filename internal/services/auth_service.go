package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired refresh token")
	ErrInvalidIDToken = errors.New("invalid Google ID token")
)

var registrationPaths = []string{"/dashboard", "/users"}

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	verifier IdentityVerifier
	guard    *Guard
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config, verifier IdentityVerifier, guard *Guard) *AuthService {
	return &AuthService{db: db, cfg: cfg, verifier: verifier, guard: guard, now: time.Now}
}

// GoogleSignIn verifies a Google ID token and signs the user in, creating a
// PENDING client on first sight. Bootstrap admin emails are promoted.
func (s *AuthService) GoogleSignIn(ctx context.Context, req *dto.GoogleSignInRequest) (*dto.AuthResponse, error) {
	if req.IDToken == "" {
		return nil, invalidField("id_token", "is required")
	}

	claims, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		slog.Warn("google token verification failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" || !claims.Verified() {
		return nil, fmt.Errorf("%w: email missing or unverified", ErrInvalidIDToken)
	}

	subject := claims.Subject
	now := s.now()
	isAdmin := s.cfg.IsAdminEmail(email)
	db := s.db.WithContext(ctx)

	var user models.User
	err = db.Where("google_subject = ? OR email = ?", subject, email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Email:         email,
			Name:          claims.Name,
			FirstName:     claims.GivenName,
			LastName:      claims.FamilyName,
			Image:         claims.Picture,
			Role:          models.RoleClient,
			Status:        models.UserStatusPending,
			GoogleSubject: &subject,
			LastLogin:     &now,
		}
		if isAdmin {
			user.Role = models.RoleAdmin
			user.Status = models.UserStatusApproved
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("user created from google sign-in", "user_id", user.ID.String(), "role", string(user.Role))
	case err != nil:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	default:
		updates := map[string]interface{}{"last_login": now}
		if user.GoogleSubject == nil {
			updates["google_subject"] = subject
			user.GoogleSubject = &subject
		}
		if isAdmin && (user.Role != models.RoleAdmin || user.Status != models.UserStatusApproved) {
			updates["role"] = models.RoleAdmin
			updates["status"] = models.UserStatusApproved
			user.Role = models.RoleAdmin
			user.Status = models.UserStatusApproved
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to record login: %w", err)
		}
		user.LastLogin = &now
	}

	return s.generateTokenPair(ctx, &user)
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	db := s.db.WithContext(ctx)
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if err := db.Model(&stored).Updates(revocation(s.now())).Error; err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if stored.Expired(s.now()) {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, ErrInvalidToken
	}

	return s.generateTokenPair(ctx, &user)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked = false", hashToken(req.RefreshToken)).
		Updates(revocation(s.now())).Error
}

func revocation(at time.Time) map[string]interface{} {
	return map[string]interface{}{"revoked": true, "revoked_at": at}
}

// Me loads the caller's own user row.
func (s *AuthService) Me(ctx context.Context, caller session.Caller) (*models.User, error) {
	u, err := findUser(s.db.WithContext(ctx), caller.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, &StoreError{Op: "load profile", Err: err}
	}
	return u, nil
}

// Register completes the caller's profile. PENDING users become APPROVED,
// APPROVED users only get their names updated, REJECTED users are refused.
func (s *AuthService) Register(ctx context.Context, caller session.Caller, req dto.RegisterRequest) (*models.User, error) {
	var out *models.User
	err := s.guard.RunAs(ctx, caller, Mutation{
		Entity: EntityUser, Action: "register", EntityID: caller.ID.String(), Paths: registrationPaths,
	}, func() error {
		if err := Validate(&req); err != nil {
			return err
		}
		u, err := findUser(s.db.WithContext(ctx), caller.ID)
		if err != nil {
			return err
		}
		if u.Status == models.UserStatusRejected {
			return ErrUnauthorized
		}
		updates := map[string]interface{}{
			"first_name": strings.TrimSpace(req.FirstName),
			"last_name":  strings.TrimSpace(req.LastName),
			"status":     models.UserStatusApproved,
		}
		if err := s.db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
			return err
		}
		u.FirstName = updates["first_name"].(string)
		u.LastName = updates["last_name"].(string)
		u.Status = models.UserStatusApproved
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile edits the caller's own names and avatar. Status is unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, caller session.Caller, req dto.ProfileRequest) (*models.User, error) {
	var out *models.User
	err := s.guard.RunAs(ctx, caller, Mutation{
		Entity: EntityUser, Action: "update_profile", EntityID: caller.ID.String(), Paths: userPaths,
	}, func() error {
		if err := Validate(&req); err != nil {
			return err
		}
		u, err := findUser(s.db.WithContext(ctx), caller.ID)
		if err != nil {
			return err
		}
		if u.Status == models.UserStatusRejected {
			return ErrUnauthorized
		}
		updates := map[string]interface{}{
			"first_name": strings.TrimSpace(req.FirstName),
			"last_name":  strings.TrimSpace(req.LastName),
			"image":      req.Image,
		}
		if err := s.db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
			return err
		}
		u.FirstName = updates["first_name"].(string)
		u.LastName = updates["last_name"].(string)
		u.Image = req.Image
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":    user.ID.String(),
		"email":  user.Email,
		"role":   string(user.Role),
		"status": string(user.Status),
		"iat":    now.Unix(),
		"exp":    now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
