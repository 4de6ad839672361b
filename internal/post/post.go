// Package post manages blog posts and their author/tag associations.
package post

import (
	"time"

	"github.com/inkwell-cms/inkwell/internal/tag"
	"github.com/inkwell-cms/inkwell/internal/user"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusReview    Status = "review"
	StatusPublished Status = "published"
)

type Post struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"size:512;not null" json:"title"`
	Slug             string     `gorm:"size:256;uniqueIndex;not null" json:"slug"`
	Status           Status     `gorm:"size:32;not null;default:draft" json:"status"`
	Content          string     `gorm:"type:text" json:"content,omitempty"`
	Schema           string     `gorm:"type:text" json:"schema,omitempty"`
	FeaturedImageURL string     `gorm:"size:1024" json:"featuredImageUrl,omitempty"`
	PublishOn        *time.Time `json:"publishOn,omitempty"`

	AuthorID string    `gorm:"size:36;index;not null" json:"-"`
	Author   user.User `json:"author"`
	Tags     []tag.Tag `gorm:"many2many:post_tags" json:"tags"`

	CreatedAt time.Time `json:"createDate"`
	UpdatedAt time.Time `json:"updateDate"`
}

func (Post) TableName() string { return "posts" }
