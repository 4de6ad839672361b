// Package storage opens the relational store by dialect name and runs
// migrations for every registered model.
package storage

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/inkwell-cms/inkwell/internal/post"
	"github.com/inkwell-cms/inkwell/internal/tag"
	"github.com/inkwell-cms/inkwell/internal/upload"
	"github.com/inkwell-cms/inkwell/internal/user"
)

type DialectorOpener = func(dsn string) gorm.Dialector

var openers = map[string]DialectorOpener{
	"sqlite":   sqlite.Open,
	"postgres": postgres.Open,
	"mysql":    mysql.Open,
}

// Open connects to the database named by dbType and optionally runs
// migrations. TranslateError is enabled so unique-constraint violations
// surface as gorm.ErrDuplicatedKey on dialects that support it.
func Open(dbType, dsn string, migrate bool) (*gorm.DB, error) {
	opener, ok := openers[dbType]
	if !ok {
		return nil, fmt.Errorf("storage: unknown database type %q", dbType)
	}

	db, err := gorm.Open(opener(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dbType, err)
	}

	if migrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&tag.Tag{},
		&post.Post{},
		&upload.Upload{},
	); err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}
	return nil
}
