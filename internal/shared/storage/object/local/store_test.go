package local

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
)

func TestSaveOpenDeleteRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	content := []byte("%PDF-1.4 local store test")
	key, size, _, err := store.Save(ctx, "user-1", "cv.pdf", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len(content)) {
		t.Fatalf("size %d, want %d", size, len(content))
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("stored bytes diverge")
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Open(ctx, key); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist after delete, got %v", err)
	}
}

func TestDeleteMissingKeyIsNoOp(t *testing.T) {
	store := New(t.TempDir())

	if err := store.Delete(context.Background(), "user/none.pdf"); err != nil {
		t.Fatalf("deleting a missing object must succeed, got %v", err)
	}
}

func TestSaveNamesAreUniquePerUpload(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key1, _, _, err := store.Save(ctx, "user-1", "cv.pdf", bytes.NewReader([]byte("one")))
	if err != nil {
		t.Fatalf("save 1: %v", err)
	}
	key2, _, _, err := store.Save(ctx, "user-1", "cv.pdf", bytes.NewReader([]byte("two")))
	if err != nil {
		t.Fatalf("save 2: %v", err)
	}
	if key1 == key2 {
		t.Fatalf("same file name must not collide across uploads")
	}
}

func TestOpenRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("traversal keys must be rejected")
	}
}
