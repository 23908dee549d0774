package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/repositories"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
	"github.com/collegeconnect/collegeconnect/internal/pkg/auth"
	"github.com/collegeconnect/collegeconnect/internal/pkg/filestorage"
)

// CollegeService handles college profile and directory operations.
type CollegeService struct {
	collegeRepo repositories.ICollegeRepository
	storage     *filestorage.LocalStorage
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewCollegeService creates a new CollegeService
func NewCollegeService(
	collegeRepo repositories.ICollegeRepository,
	storage *filestorage.LocalStorage,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *CollegeService {
	return &CollegeService{
		collegeRepo: collegeRepo,
		storage:     storage,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// GetByID returns a single college profile.
func (s *CollegeService) GetByID(ctx context.Context, id int64) (*models.College, error) {
	return s.collegeRepo.GetByID(ctx, id)
}

// GetAll returns the full college directory.
func (s *CollegeService) GetAll(ctx context.Context) ([]*models.College, error) {
	return s.collegeRepo.GetAll(ctx)
}

// UpdateProfile applies a partial update to the caller's own profile. A field
// that is present in the request overwrites the stored value even when empty;
// an absent field keeps the stored value. Setting logo to the empty string
// restores the default placeholder. A fresh session token is returned because
// profile data embedded in the client session may have changed.
func (s *CollegeService) UpdateProfile(ctx context.Context, collegeID int64, req *dto.UpdateCollegeRequest, logoFile *multipart.FileHeader) (*models.College, string, error) {
	college, err := s.collegeRepo.GetByID(ctx, collegeID)
	if err != nil {
		return nil, "", err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, "", apperrors.NewValidationError("Name cannot be empty")
		}
		college.Name = *req.Name
	}
	if req.Address != nil {
		college.Address = *req.Address
	}
	if req.City != nil {
		college.City = *req.City
	}
	if req.State != nil {
		college.State = *req.State
	}
	if req.Country != nil {
		college.Country = *req.Country
	}
	if req.Description != nil {
		college.Description = *req.Description
	}
	if req.Website != nil {
		college.Website = req.Website
	}
	if req.ContactNumber != nil {
		college.ContactNumber = req.ContactNumber
	}

	oldLogo := college.Logo
	switch {
	case logoFile != nil:
		if !filestorage.IsImage(logoFile) {
			return nil, "", apperrors.NewValidationError("Logo must be an image file")
		}
		if logoFile.Size > filestorage.MaxLogoSize {
			return nil, "", apperrors.NewValidationError("Logo file exceeds the 5MB limit")
		}
		storedPath, err := s.storage.SaveFile(logoFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to store logo: %w", err)
		}
		college.Logo = storedPath
	case req.Logo != nil && *req.Logo == "":
		// Explicitly clearing the logo restores the default placeholder.
		college.Logo = filestorage.DefaultLogoPath
	}

	if err := s.collegeRepo.Update(ctx, college); err != nil {
		if college.Logo != oldLogo {
			_ = s.storage.DeleteFile(college.Logo)
		}
		return nil, "", err
	}

	if college.Logo != oldLogo {
		if err := s.storage.DeleteFile(oldLogo); err != nil {
			s.logger.Warn().Err(err).Str("logo", oldLogo).Msg("Failed to remove replaced logo file")
		}
	}

	token, err := s.jwtService.GenerateToken(college.ID, college.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info().Int64("collegeId", college.ID).Msg("College profile updated")
	return college, token, nil
}
