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
	"github.com/collegeconnect/collegeconnect/internal/pkg/filestorage"
)

// ResourceService handles resource uploads, downloads and fan-out.
type ResourceService struct {
	resourceRepo        repositories.IResourceRepository
	storage             *filestorage.LocalStorage
	notificationService *NotificationService
	logger              zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(
	resourceRepo repositories.IResourceRepository,
	storage *filestorage.LocalStorage,
	notificationService *NotificationService,
	logger zerolog.Logger,
) *ResourceService {
	return &ResourceService{
		resourceRepo:        resourceRepo,
		storage:             storage,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Create stores the uploaded file and its metadata record, then fans a
// notification out to every other college. If the record cannot be written,
// the stored file is removed again.
func (s *ResourceService) Create(ctx context.Context, uploader *models.College, req *dto.CreateResourceRequest, file *multipart.FileHeader) (*models.Resource, error) {
	if file == nil {
		return nil, apperrors.ErrNoFileUploaded
	}
	if file.Size > filestorage.MaxResourceSize {
		return nil, apperrors.NewValidationError("Resource file exceeds the 20MB limit")
	}

	category := models.ResourceCategory(req.Category)
	if !category.Valid() {
		return nil, apperrors.NewValidationError("Invalid resource category: " + req.Category)
	}

	storedPath, err := s.storage.SaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to store resource file: %w", err)
	}

	resource := &models.Resource{
		Title:            req.Title,
		Description:      req.Description,
		Category:         category,
		File:             storedPath,
		OriginalFileName: file.Filename,
		UploadedByID:     uploader.ID,
	}

	id, err := s.resourceRepo.Create(ctx, resource)
	if err != nil {
		if delErr := s.storage.DeleteFile(storedPath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("file", storedPath).Msg("Failed to remove orphaned resource file")
		}
		return nil, err
	}

	created, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notificationService.NotifyResourceCreated(ctx, created, uploader)

	s.logger.Info().Int64("resourceId", created.ID).Int64("collegeId", uploader.ID).Msg("Resource uploaded")
	return created, nil
}

// GetAll returns all resources, newest first.
func (s *ResourceService) GetAll(ctx context.Context) ([]*models.Resource, error) {
	return s.resourceRepo.GetAll(ctx)
}

// GetByID returns a single resource.
func (s *ResourceService) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	return s.resourceRepo.GetByID(ctx, id)
}

// Update applies a partial metadata update. The stored file is immutable;
// only the uploading college may update the record.
func (s *ResourceService) Update(ctx context.Context, collegeID, resourceID int64, req *dto.UpdateResourceRequest) (*models.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource.UploadedByID != collegeID {
		return nil, apperrors.NewForbiddenError("Only the uploading college can update this resource")
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperrors.NewValidationError("Title cannot be empty")
		}
		resource.Title = *req.Title
	}
	if req.Description != nil {
		resource.Description = *req.Description
	}
	if req.Category != nil {
		category := models.ResourceCategory(*req.Category)
		if !category.Valid() {
			return nil, apperrors.NewValidationError("Invalid resource category: " + *req.Category)
		}
		resource.Category = category
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}
	return s.resourceRepo.GetByID(ctx, resourceID)
}

// Delete removes a resource record and its stored file. Only the uploading
// college may delete it. File removal is best effort once the record is gone.
func (s *ResourceService) Delete(ctx context.Context, collegeID, resourceID int64) error {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return err
	}
	if resource.UploadedByID != collegeID {
		return apperrors.NewForbiddenError("Only the uploading college can delete this resource")
	}

	if err := s.resourceRepo.Delete(ctx, resourceID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(resource.File); err != nil {
		s.logger.Warn().Err(err).Str("file", resource.File).Msg("Failed to remove deleted resource file")
	}

	s.logger.Info().Int64("resourceId", resourceID).Int64("collegeId", collegeID).Msg("Resource deleted")
	return nil
}

// ResolveDownload returns the resource record together with the absolute path
// of its stored file, verifying the file still exists on disk.
func (s *ResourceService) ResolveDownload(ctx context.Context, resourceID int64) (*models.Resource, string, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, "", err
	}

	path := s.storage.ResolvePath(resource.File)
	if path == "" || !s.storage.Exists(resource.File) {
		return nil, "", apperrors.ErrFileNotFound
	}
	return resource, path, nil
}
