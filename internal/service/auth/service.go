package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
	"github.com/medipresence/presence-api/internal/service/audit"
	jwtauth "github.com/medipresence/presence-api/pkg/auth"
	apperrors "github.com/medipresence/presence-api/pkg/errors"
	"github.com/medipresence/presence-api/pkg/security"
)

// AuthService handles registration, login and identity lookup.
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest, ipAddress string) (*model.LoginResponse, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type Service struct {
	userRepo     repository.UserRepository
	presenceRepo repository.PresenceRepository
	shiftRepo    repository.ShiftRepository
	hasher       security.PasswordHasher
	jwtSvc       jwtauth.JWTService
	auditor      *audit.Service
}

func NewService(
	userRepo repository.UserRepository,
	presenceRepo repository.PresenceRepository,
	shiftRepo repository.ShiftRepository,
	hasher security.PasswordHasher,
	jwtSvc jwtauth.JWTService,
	auditor *audit.Service,
) *Service {
	return &Service{
		userRepo:     userRepo,
		presenceRepo: presenceRepo,
		shiftRepo:    shiftRepo,
		hasher:       hasher,
		jwtSvc:       jwtSvc,
		auditor:      auditor,
	}
}

// Register creates a user and its presence row. Duplicate usernames conflict.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("username already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	presence := &model.StaffPresence{
		ID:         uuid.New(),
		UserID:     user.ID,
		Status:     model.PresenceOffDuty,
		Activity:   model.ActivityIdle,
		Location:   "Unknown",
		LastActive: now,
	}
	if err := s.presenceRepo.Create(ctx, presence); err != nil {
		return nil, fmt.Errorf("failed to create presence: %w", err)
	}

	return user, nil
}

// Login verifies credentials, clocks in a new shift, flips presence to
// on-duty/active and issues a bearer token.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest, ipAddress string) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	now := time.Now().UTC()
	shift := &model.Shift{
		ID:      uuid.New(),
		UserID:  user.ID,
		ClockIn: now,
		Date:    now.Format("2006-01-02"),
	}
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to clock in: %w", err)
	}

	presence, err := s.presenceRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load presence: %w", err)
	}
	if presence != nil {
		presence.Status = model.PresenceOnDuty
		presence.Activity = model.ActivityActive
		presence.ShiftStart = &now
		presence.LastActive = now
		if err := s.presenceRepo.Update(ctx, presence); err != nil {
			return nil, fmt.Errorf("failed to update presence: %w", err)
		}
	}

	token, err := s.jwtSvc.GenerateToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.auditor.Log(user.ID, "login", fmt.Sprintf("User %s logged in", user.Username), ipAddress)

	return &model.LoginResponse{
		Token:    token,
		Role:     user.Role,
		UserID:   user.ID,
		FullName: user.FullName,
	}, nil
}

// GetByUsername resolves a token subject to its user record.
func (s *Service) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}
