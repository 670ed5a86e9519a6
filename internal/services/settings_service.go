package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"smartstock/internal/caching"
	"smartstock/internal/models"
	"smartstock/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPassword is returned when the reconfirmation password for a
// destructive operation does not match the stored credential.
var ErrWrongPassword = errors.New("incorrect password")

type SettingsService interface {
	Get(ctx context.Context, businessID uuid.UUID) (*models.BusinessSettings, error)
	Update(ctx context.Context, settings *models.BusinessSettings) error
	UploadLogo(ctx context.Context, businessID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
	FactoryReset(ctx context.Context, businessID, userID uuid.UUID, password string) error
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	userRepo     repositories.UserRepository
	storage      StorageService
	cacheSvc     caching.CacheService
	logoBucket   string
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, userRepo repositories.UserRepository, storage StorageService, cacheSvc caching.CacheService, logoBucket string) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		storage:      storage,
		cacheSvc:     cacheSvc,
		logoBucket:   logoBucket,
	}
}

// Get returns the stored settings, or an empty record when the business has
// never saved any, so clients always get a renderable object.
func (s *settingsService) Get(ctx context.Context, businessID uuid.UUID) (*models.BusinessSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, businessID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.BusinessSettings{BusinessID: businessID}, nil
	}
	if err != nil {
		return nil, err
	}

	if settings.LogoKey != nil && *settings.LogoKey != "" {
		url, err := s.storage.PresignedURL(ctx, s.logoBucket, *settings.LogoKey, time.Hour)
		if err != nil {
			log.Printf("Failed to presign logo for business %s: %v", businessID, err)
		} else {
			settings.LogoURL = url
		}
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, settings *models.BusinessSettings) error {
	return s.settingsRepo.Upsert(ctx, settings)
}

// UploadLogo stores the logo object under a per-business key and records that
// key on the settings row. The settings row must exist first.
func (s *settingsService) UploadLogo(ctx context.Context, businessID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	if err := s.storage.EnsureBucketExists(ctx, s.logoBucket); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("%s/%s", businessID.String(), filename)
	if err := s.storage.Upload(ctx, s.logoBucket, objectName, contentType, reader, size); err != nil {
		return "", err
	}
	if err := s.settingsRepo.SetLogoKey(ctx, businessID, objectName); err != nil {
		return "", err
	}
	return s.storage.PresignedURL(ctx, s.logoBucket, objectName, time.Hour)
}

// FactoryReset verifies the acting user's password, then clears the business's
// transactional data. Settings and user rows survive.
func (s *settingsService) FactoryReset(ctx context.Context, businessID, userID uuid.UUID, password string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}

	if err := s.settingsRepo.PurgeBusinessData(ctx, businessID); err != nil {
		return err
	}

	if err := s.cacheSvc.InvalidateBusiness(ctx, businessID); err != nil {
		log.Printf("Failed to invalidate dashboard cache for business %s: %v", businessID, err)
	}
	return nil
}
