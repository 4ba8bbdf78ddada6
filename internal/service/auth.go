package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"olukosi-storefront/internal/config"
	"olukosi-storefront/internal/dto"
	"olukosi-storefront/internal/model"
	"olukosi-storefront/internal/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService is the server-side admin login. Failed attempts and the
// temporary lockout live on the admin row, so the lockout holds across
// devices and sessions.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	CreateAdmin(ctx context.Context, email, password, name, role string) (*model.Admin, error)
}

type authServiceImpl struct {
	db              *gorm.DB
	cfg             config.Auth
	adminRepo       repository.AdminRepository
	activityLogRepo repository.ActivityLogRepository
	logger          *zap.Logger
}

func NewAuthService(
	db *gorm.DB,
	cfg config.Auth,
	adminRepo repository.AdminRepository,
	activityLogRepo repository.ActivityLogRepository,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		db:              db,
		cfg:             cfg,
		adminRepo:       adminRepo,
		activityLogRepo: activityLogRepo,
		logger:          logger,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	admin, err := s.adminRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up admin: %w", err)
	}

	now := time.Now()
	if admin.LockedUntil != nil && admin.LockedUntil.After(now) {
		return nil, model.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		attempts := admin.FailedLoginAttempts + 1
		updates := map[string]interface{}{
			"failed_login_attempts": attempts,
			"updated_at":            now,
		}
		if attempts >= s.cfg.LockoutAttempts {
			updates["locked_until"] = now.Add(time.Duration(s.cfg.LockoutMinutes) * time.Minute)
		}
		if err := s.adminRepo.Update(ctx, admin.ID, updates); err != nil {
			s.logger.Error("record failed login attempt",
				zap.String("admin_id", admin.ID), zap.Error(err))
		}
		return nil, model.ErrInvalidCredentials
	}

	if err := s.adminRepo.Update(ctx, admin.ID, map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
		"last_login":            now,
		"updated_at":            now,
	}); err != nil {
		return nil, fmt.Errorf("reset login counters: %w", err)
	}

	details, _ := json.Marshal(map[string]string{"login_time": now.Format(time.RFC3339)})
	if err := s.activityLogRepo.Append(ctx, s.db, &model.AdminActivityLog{
		ID:      uuid.NewString(),
		AdminID: admin.ID,
		Action:  "login",
		Details: string(details),
	}); err != nil {
		s.logger.Error("append login activity", zap.String("admin_id", admin.ID), zap.Error(err))
	}

	token, err := s.signToken(admin, now)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.LoginResponse{
		Admin: dto.AdminInfo{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  admin.Role,
		},
		Token:   token,
		Message: "Login successful",
	}, nil
}

func (s *authServiceImpl) signToken(admin *model.Admin, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"adminId": admin.ID,
		"email":   admin.Email,
		"role":    admin.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.cfg.TokenTTLHours) * time.Hour).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authServiceImpl) CreateAdmin(ctx context.Context, email, password, name, role string) (*model.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = "staff"
	}

	admin := &model.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		IsActive:     true,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("store admin: %w", err)
	}

	return admin, nil
}
