package upload

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakeStore struct {
	keys  []string
	mimes []string
}

func (f *fakeStore) Put(_ context.Context, key, contentType string, _ []byte) error {
	f.keys = append(f.keys, key)
	f.mimes = append(f.mimes, contentType)
	return nil
}

func setupService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&Upload{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	store := &fakeStore{}
	return NewService(db, store, "https://cdn.example.com/"), store
}

func TestUploadFile(t *testing.T) {
	svc, store := setupService(t)

	up, err := svc.UploadFile(context.Background(), "photo.PNG", "image/png", []byte("fake-png"))
	if err != nil {
		t.Fatalf("failed to upload: %v", err)
	}

	if len(store.keys) != 1 {
		t.Fatalf("expected one stored object, got %d", len(store.keys))
	}
	if !strings.HasSuffix(store.keys[0], ".png") {
		t.Errorf("expected lowercased extension, got %q", store.keys[0])
	}
	if up.Path != "https://cdn.example.com/"+store.keys[0] {
		t.Errorf("unexpected path %q", up.Path)
	}
	if up.Mime != "image/png" || up.Size != int64(len("fake-png")) {
		t.Errorf("unexpected metadata: %+v", up)
	}
}

func TestUploadRejectsUnsupportedMime(t *testing.T) {
	svc, store := setupService(t)

	_, err := svc.UploadFile(context.Background(), "doc.pdf", "application/pdf", []byte("%PDF"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
	if len(store.keys) != 0 {
		t.Error("rejected upload must not reach the object store")
	}
}
