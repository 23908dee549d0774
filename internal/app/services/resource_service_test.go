package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
	"github.com/collegeconnect/collegeconnect/internal/pkg/filestorage"
)

func newTestStorage(t *testing.T) (*filestorage.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir)
	require.NoError(t, err)
	return storage, dir
}

// makeFileHeader builds a real multipart.FileHeader the way gin receives one.
func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("resourceFile", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["resourceFile"]
	require.Len(t, files, 1)
	return files[0]
}

func newTestResourceService(t *testing.T, collegeRepo *fakeCollegeRepo) (*ResourceService, *fakeResourceRepo, *fakeNotificationRepo, string) {
	resourceRepo := newFakeResourceRepo()
	notifRepo := newFakeNotificationRepo()
	storage, dir := newTestStorage(t)
	notifSvc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	svc := NewResourceService(resourceRepo, storage, notifSvc, zerolog.Nop())
	return svc, resourceRepo, notifRepo, dir
}

func createResourceRequest() *dto.CreateResourceRequest {
	return &dto.CreateResourceRequest{
		Title:       "Data Structures Notes",
		Description: "Semester 3 lecture notes",
		Category:    "Reports & Academic Content",
	}
}

func TestResourceServiceCreate(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, notifRepo, dir := newTestResourceService(t, collegeRepo)
	colleges := seedColleges(t, collegeRepo, 3)

	file := makeFileHeader(t, "notes.pdf", "pdf bytes")
	resource, err := svc.Create(context.Background(), colleges[0], createResourceRequest(), file)
	require.NoError(t, err)

	assert.Equal(t, "Data Structures Notes", resource.Title)
	assert.Equal(t, models.ResourceCategoryReportsAcademicContent, resource.Category)
	assert.Equal(t, "notes.pdf", resource.OriginalFileName)
	assert.True(t, strings.HasPrefix(resource.File, "/uploads/"))
	assert.True(t, strings.HasSuffix(resource.File, ".pdf"), "stored name keeps the extension")
	assert.NotContains(t, resource.File, "notes", "stored name is server generated")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.Len(t, notifRepo.all(), 2)
}

func TestResourceServiceCreateWithoutFile(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _, _ := newTestResourceService(t, collegeRepo)
	colleges := seedColleges(t, collegeRepo, 1)

	_, err := svc.Create(context.Background(), colleges[0], createResourceRequest(), nil)
	assert.ErrorIs(t, err, apperrors.ErrNoFileUploaded)
}

func TestResourceServiceCreateOversizedFile(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _, dir := newTestResourceService(t, collegeRepo)
	colleges := seedColleges(t, collegeRepo, 1)

	file := makeFileHeader(t, "huge.zip", "zip bytes")
	file.Size = filestorage.MaxResourceSize + 1

	_, err := svc.Create(context.Background(), colleges[0], createResourceRequest(), file)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must not be stored")
}

func TestResourceServiceCreateInvalidCategory(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _, _ := newTestResourceService(t, collegeRepo)
	colleges := seedColleges(t, collegeRepo, 1)

	req := createResourceRequest()
	req.Category = "Memes"
	_, err := svc.Create(context.Background(), colleges[0], req, makeFileHeader(t, "a.txt", "x"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestResourceServiceCreateCleansUpOnRepoFailure(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, resourceRepo, _, dir := newTestResourceService(t, collegeRepo)
	colleges := seedColleges(t, collegeRepo, 1)
	resourceRepo.failNext = assert.AnError

	_, err := svc.Create(context.Background(), colleges[0], createResourceRequest(), makeFileHeader(t, "a.txt", "x"))
	assert.ErrorIs(t, err, assert.AnError)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "orphaned file must be removed when the record fails")
}

func TestResourceServiceUpdateMetadata(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _, _ := newTestResourceService(t, collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], createResourceRequest(), makeFileHeader(t, "a.pdf", "x"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, colleges[0].ID, created.ID, &dto.UpdateResourceRequest{
		Title:    strPtr("Revised Notes"),
		Category: strPtr("Event Materials"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Revised Notes", updated.Title)
	assert.Equal(t, models.ResourceCategoryEventMaterials, updated.Category)
	assert.Equal(t, created.Description, updated.Description)
	// The stored file is immutable across metadata updates.
	assert.Equal(t, created.File, updated.File)
	assert.Equal(t, created.OriginalFileName, updated.OriginalFileName)

	_, err = svc.Update(ctx, colleges[1].ID, created.ID, &dto.UpdateResourceRequest{Title: strPtr("X")})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Update(ctx, colleges[0].ID, created.ID, &dto.UpdateResourceRequest{Category: strPtr("Memes")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestResourceServiceDeleteRemovesFile(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _, dir := newTestResourceService(t, collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], createResourceRequest(), makeFileHeader(t, "a.pdf", "x"))
	require.NoError(t, err)

	err = svc.Delete(ctx, colleges[1].ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, colleges[0].ID, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceEntryNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResourceServiceResolveDownload(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _, _ := newTestResourceService(t, collegeRepo)
	colleges := seedColleges(t, collegeRepo, 1)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], createResourceRequest(), makeFileHeader(t, "report.pdf", "content"))
	require.NoError(t, err)

	resource, path, err := svc.ResolveDownload(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resource.ID)
	assert.Equal(t, "report.pdf", resource.OriginalFileName)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestResourceServiceResolveDownloadMissingFile(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _, _ := newTestResourceService(t, collegeRepo)
	colleges := seedColleges(t, collegeRepo, 1)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], createResourceRequest(), makeFileHeader(t, "a.pdf", "x"))
	require.NoError(t, err)

	_, path, err := svc.ResolveDownload(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, _, err = svc.ResolveDownload(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)

	_, _, err = svc.ResolveDownload(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrResourceEntryNotFound)
}
