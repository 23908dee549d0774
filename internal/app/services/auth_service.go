package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/repositories"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
	"github.com/collegeconnect/collegeconnect/internal/pkg/auth"
	"github.com/collegeconnect/collegeconnect/internal/pkg/email"
)

// AuthService handles registration, login and the password reset flow.
type AuthService struct {
	collegeRepo     repositories.ICollegeRepository
	jwtService      *auth.JWTService
	emailSender     email.Sender
	frontendBaseURL string
	logger          zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	collegeRepo repositories.ICollegeRepository,
	jwtService *auth.JWTService,
	emailSender email.Sender,
	frontendBaseURL string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		collegeRepo:     collegeRepo,
		jwtService:      jwtService,
		emailSender:     emailSender,
		frontendBaseURL: frontendBaseURL,
		logger:          logger,
	}
}

// Register creates a new college account and returns it with a session token.
// logoPath is the stored logo of the account, or empty for the default
// placeholder.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, logoPath string) (*models.College, string, error) {
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	college := &models.College{
		Name:        req.Name,
		Email:       req.Email,
		Password:    passwordHash,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Description: req.Description,
		Logo:        logoPath,
	}
	if req.Website != "" {
		college.Website = &req.Website
	}
	if req.ContactNumber != "" {
		college.ContactNumber = &req.ContactNumber
	}

	id, err := s.collegeRepo.Create(ctx, college)
	if err != nil {
		return nil, "", err
	}

	created, err := s.collegeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(created.ID, created.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info().Int64("collegeId", created.ID).Str("name", created.Name).Msg("College registered")
	return created, token, nil
}

// Login authenticates a college by email and password. Unknown email and
// wrong password produce the same error so the response never reveals which
// one was wrong.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.College, string, error) {
	college, err := s.collegeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrCollegeNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(college.Password, req.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(college.ID, college.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return college, token, nil
}

// ForgotPassword issues a single-use reset token and mails the reset link to
// the account's email address. Only the sha256 digest of the token is stored.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	rawToken, tokenHash, err := auth.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	college, err := s.collegeRepo.SetResetToken(ctx, emailAddr, tokenHash, time.Now().Add(auth.ResetTokenTTL))
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendBaseURL, rawToken)
	if err := s.emailSender.SendPasswordResetEmail(college.Email, college.Name, resetURL); err != nil {
		s.logger.Error().Err(err).Str("email", college.Email).Msg("Failed to send password reset email")
		// The emailed link never reached the account holder, so the stored
		// token must not stay redeemable.
		if clearErr := s.collegeRepo.ClearResetToken(ctx, college.ID); clearErr != nil {
			s.logger.Error().Err(clearErr).Int64("collegeId", college.ID).Msg("Failed to clear reset token after delivery failure")
		}
		return apperrors.ErrEmailDelivery
	}

	s.logger.Info().Int64("collegeId", college.ID).Msg("Password reset email sent")
	return nil
}

// ResetPassword consumes a reset token and replaces the account password.
// The token is invalid once used or after its expiry passes.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.NewValidationError("Password must be at least 6 characters")
	}

	tokenHash := auth.HashResetToken(rawToken)
	college, err := s.collegeRepo.GetByResetTokenHash(ctx, tokenHash)
	if err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.collegeRepo.ResetPassword(ctx, college.ID, passwordHash); err != nil {
		return err
	}

	s.logger.Info().Int64("collegeId", college.ID).Msg("Password reset completed")
	return nil
}
