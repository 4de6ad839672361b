// Package user owns the user store. Its repository implements the directory
// interface defined by the auth package, so auth never touches gorm and the
// two modules do not depend on each other circularly.
package user

import (
	"time"

	"github.com/inkwell-cms/inkwell/internal/auth"
	"gorm.io/gorm"
)

// User is the persisted account row. Password is nullable: accounts created
// through federation carry a GoogleID and no password. Email and GoogleID
// are unique at the database level, which collapses concurrent first-time
// federation calls for the same identity into a visible conflict instead of
// a duplicate account.
type User struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	FirstName string  `gorm:"size:96;not null" json:"firstName"`
	LastName  string  `gorm:"size:96;not null" json:"lastName"`
	Email     string  `gorm:"size:96;uniqueIndex;not null" json:"email"`
	Password  *string `gorm:"size:96" json:"-"`
	GoogleID  *string `gorm:"size:96;uniqueIndex" json:"-"`

	CreatedAt time.Time      `json:"createDate"`
	UpdatedAt time.Time      `json:"updateDate"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) toIdentity() *auth.Identity {
	ident := &auth.Identity{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.Password != nil {
		ident.PasswordHash = *u.Password
	}
	if u.GoogleID != nil {
		ident.GoogleID = *u.GoogleID
	}
	return ident
}
