package upload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnsupportedType = errors.New("upload: mime type not supported")

var allowedMimeTypes = map[string]bool{
	"image/gif":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// Upload is the persisted metadata for a stored object.
type Upload struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:1024;not null" json:"name"`
	Path      string    `gorm:"size:1024;not null" json:"path"`
	Type      string    `gorm:"size:32;not null;default:image" json:"type"`
	Mime      string    `gorm:"size:128;not null" json:"mime"`
	Size      int64     `gorm:"not null" json:"size"`
	CreatedAt time.Time `json:"createDate"`
	UpdatedAt time.Time `json:"updateDate"`
}

func (Upload) TableName() string { return "uploads" }

type Service struct {
	db         *gorm.DB
	store      ObjectStore
	cdnBaseURL string
}

func NewService(db *gorm.DB, store ObjectStore, cdnBaseURL string) *Service {
	return &Service{db: db, store: store, cdnBaseURL: strings.TrimSuffix(cdnBaseURL, "/")}
}

// UploadFile validates the MIME type, stores the bytes under a generated
// name and records the metadata. The returned Path is the CDN URL.
func (s *Service) UploadFile(ctx context.Context, filename, mimeType string, body []byte) (*Upload, error) {
	if !allowedMimeTypes[mimeType] {
		return nil, ErrUnsupportedType
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	if err := s.store.Put(ctx, name, mimeType, body); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	up := &Upload{
		Name: name,
		Path: fmt.Sprintf("%s/%s", s.cdnBaseURL, name),
		Type: "image",
		Mime: mimeType,
		Size: int64(len(body)),
	}
	if err := s.db.WithContext(ctx).Create(up).Error; err != nil {
		return nil, fmt.Errorf("record upload: %w", err)
	}
	return up, nil
}
