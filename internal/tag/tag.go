// Package tag manages post tags.
package tag

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Tag struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:256;not null" json:"name"`
	Slug          string         `gorm:"size:512;uniqueIndex;not null" json:"slug"`
	Description   string         `gorm:"size:1024" json:"description,omitempty"`
	FeaturedImage string         `gorm:"size:1024" json:"featuredImage,omitempty"`
	CreatedAt     time.Time      `json:"createDate"`
	UpdatedAt     time.Time      `json:"updateDate"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tag) TableName() string { return "tags" }

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, t *Tag) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// FindMultiple returns the tags matching ids. Callers compare lengths to
// detect unknown ids.
func (s *Service) FindMultiple(ctx context.Context, ids []uint) ([]Tag, error) {
	var tags []Tag
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	return tags, nil
}

// Delete soft-deletes the tag; posts keep their association rows but the
// tag no longer resolves.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&Tag{}, id).Error; err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
