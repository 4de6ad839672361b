package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-cms/inkwell/internal/tag"
	"github.com/inkwell-cms/inkwell/internal/user"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("post: not found")
	ErrUnknownTags   = errors.New("post: one or more tag ids do not exist")
	ErrDuplicateSlug = errors.New("post: slug already in use")
)

type CreatePostInput struct {
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Status           Status     `json:"status"`
	Content          string     `json:"content"`
	Schema           string     `json:"schema"`
	FeaturedImageURL string     `json:"featuredImageUrl"`
	PublishOn        *time.Time `json:"publishOn"`
	Tags             []uint     `json:"tags"`
}

type Service struct {
	db    *gorm.DB
	users *user.Repository
	tags  *tag.Service
}

func NewService(db *gorm.DB, users *user.Repository, tags *tag.Service) *Service {
	return &Service{db: db, users: users, tags: tags}
}

// Create resolves the author and every referenced tag before inserting. A
// tag id that resolves to nothing fails the whole request; a slug collision
// surfaces as ErrDuplicateSlug.
func (s *Service) Create(ctx context.Context, input CreatePostInput, authorID string) (*Post, error) {
	author, err := s.users.Get(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	tags, err := s.tags.FindMultiple(ctx, input.Tags)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(input.Tags) {
		return nil, ErrUnknownTags
	}

	p := &Post{
		Title:            input.Title,
		Slug:             input.Slug,
		Status:           input.Status,
		Content:          input.Content,
		Schema:           input.Schema,
		FeaturedImageURL: input.FeaturedImageURL,
		PublishOn:        input.PublishOn,
		AuthorID:         author.ID,
		Author:           *author,
		Tags:             tags,
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Post, error) {
	var p Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

// ListByAuthor returns the author's posts, newest first.
func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	var posts []Post
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Update replaces the mutable fields and the tag set of an existing post.
func (s *Service) Update(ctx context.Context, id uint, input CreatePostInput) (*Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.tags.FindMultiple(ctx, input.Tags)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(input.Tags) {
		return nil, ErrUnknownTags
	}

	p.Title = input.Title
	p.Slug = input.Slug
	p.Status = input.Status
	p.Content = input.Content
	p.Schema = input.Schema
	p.FeaturedImageURL = input.FeaturedImageURL
	p.PublishOn = input.PublishOn

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(p).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return tx.Save(p).Error
	})
	if err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}
