package curriculos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
)

type trackingStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	deleted []string
	saveErr error
}

func newTrackingStore() *trackingStore {
	return &trackingStore{blobs: map[string][]byte{}}
}

func (s *trackingStore) Save(_ context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	if s.saveErr != nil {
		return "", 0, "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	s.mu.Lock()
	key := fmt.Sprintf("%s/%d-%s", userID, len(s.blobs), fileName)
	s.blobs[key] = data
	s.mu.Unlock()
	return key, int64(len(data)), "application/pdf", nil
}

func (s *trackingStore) Open(_ context.Context, storageKey string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[storageKey]
	if !ok {
		return nil, fmt.Errorf("no blob at %s", storageKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *trackingStore) Delete(_ context.Context, storageKey string) error {
	s.mu.Lock()
	delete(s.blobs, storageKey)
	s.deleted = append(s.deleted, storageKey)
	s.mu.Unlock()
	return nil
}

type failingRepo struct {
	Repo
	upsertErr error
}

func (r *failingRepo) Upsert(ctx context.Context, curriculo Curriculo) (Curriculo, error) {
	if r.upsertErr != nil {
		return Curriculo{}, r.upsertErr
	}
	return r.Repo.Upsert(ctx, curriculo)
}

func newTestService() (*Service, *trackingStore) {
	store := newTrackingStore()
	return NewService(NewMemoryRepo(), store, 5<<20), store
}

func submit(t *testing.T, svc *Service, userID, name, content string) Curriculo {
	t.Helper()
	stored, err := svc.Submit(context.Background(), userID, name, "application/pdf", int64(len(content)), bytes.NewReader([]byte(content)))
	if err != nil {
		t.Fatalf("submit %s: %v", name, err)
	}
	return stored
}

func TestSubmitStoresFileAndRecord(t *testing.T) {
	svc, store := newTestService()

	stored := submit(t, svc, "user-1", "cv.pdf", "%PDF-1.4 first")
	if stored.FileName != "cv.pdf" {
		t.Fatalf("unexpected file name %q", stored.FileName)
	}
	if stored.FileSize != int64(len("%PDF-1.4 first")) {
		t.Fatalf("unexpected size %d", stored.FileSize)
	}
	if _, ok := store.blobs[stored.FilePath]; !ok {
		t.Fatalf("blob missing at %s", stored.FilePath)
	}

	current, err := svc.Current(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.FilePath != stored.FilePath {
		t.Fatalf("current record diverges")
	}
}

func TestSubmitReplacesPreviousUpload(t *testing.T) {
	svc, store := newTestService()

	first := submit(t, svc, "user-1", "cv1.pdf", "%PDF-1.4 first")
	second := submit(t, svc, "user-1", "cv2.pdf", "%PDF-1.4 second version")

	if second.ID != first.ID {
		t.Fatalf("replacement must keep the record ID")
	}
	if second.FilePath == first.FilePath {
		t.Fatalf("replacement must store a fresh blob")
	}

	current, err := svc.Current(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.FileName != "cv2.pdf" {
		t.Fatalf("expected replaced record, got %q", current.FileName)
	}

	if _, ok := store.blobs[first.FilePath]; ok {
		t.Fatalf("old blob should be deleted after replacement")
	}
	if _, ok := store.blobs[second.FilePath]; !ok {
		t.Fatalf("new blob must survive replacement")
	}
}

func TestSubmitCompensatesWhenRecordWriteFails(t *testing.T) {
	store := newTrackingStore()
	repo := &failingRepo{Repo: NewMemoryRepo(), upsertErr: errors.New("db down")}
	svc := NewService(repo, store, 5<<20)

	_, err := svc.Submit(context.Background(), "user-1", "cv.pdf", "application/pdf", 10, bytes.NewReader([]byte("%PDF-1.4 x")))
	if err == nil {
		t.Fatalf("expected submit to fail")
	}
	if len(store.blobs) != 0 {
		t.Fatalf("orphaned blob left behind after failed record write")
	}
}

func TestSubmitRejectsNonPDF(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Submit(context.Background(), "user-1", "cv.docx", "application/pdf", 10, bytes.NewReader([]byte("not a pdf")))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSubmitRejectsDeclaredNonPDFType(t *testing.T) {
	svc, store := newTestService()

	// JPEG magic bytes under a .pdf name, declared honestly by the client.
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x00}, 64)...)
	_, err := svc.Submit(context.Background(), "user-1", "cv.pdf", "image/jpeg", int64(len(jpeg)), bytes.NewReader(jpeg))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(store.blobs) != 0 {
		t.Fatalf("rejected upload must not reach storage")
	}
}

func TestSubmitAcceptsTextBodyDeclaredAsPDF(t *testing.T) {
	svc, _ := newTestService()

	// Content sniffing sees plain text here; the declared type wins.
	stored := submit(t, svc, "user-1", "cv.pdf", "nome: Maria\nexperiência: logística")
	if stored.FileName != "cv.pdf" {
		t.Fatalf("unexpected file name %q", stored.FileName)
	}
}

func TestSubmitAcceptsGenericDeclaredType(t *testing.T) {
	svc, _ := newTestService()

	for _, declared := range []string{"", "application/octet-stream"} {
		_, err := svc.Submit(context.Background(), "user-1", "cv.pdf", declared, 10, bytes.NewReader([]byte("%PDF-1.4 x")))
		if err != nil {
			t.Fatalf("declared %q: %v", declared, err)
		}
	}
}

func TestSubmitRejectsOversizedDeclaredSize(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Submit(context.Background(), "user-1", "cv.pdf", "application/pdf", (5<<20)+1, bytes.NewReader([]byte("x")))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if len(store.blobs) != 0 {
		t.Fatalf("oversized upload must be rejected before storage")
	}
}

func TestSubmitRejectsOversizedBody(t *testing.T) {
	store := newTrackingStore()
	svc := NewService(NewMemoryRepo(), store, 16)

	// Declared size lies; the actual body is over the limit.
	body := bytes.Repeat([]byte("a"), 64)
	_, err := svc.Submit(context.Background(), "user-1", "cv.pdf", "application/pdf", 10, bytes.NewReader(body))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if len(store.blobs) != 0 {
		t.Fatalf("oversized blob must not be kept")
	}
}

func TestSubmitRejectsTraversalNames(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Submit(context.Background(), "user-1", "../../etc/passwd.pdf", "application/pdf", 10, bytes.NewReader([]byte("x")))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRemoveDeletesRecordAndBlob(t *testing.T) {
	svc, store := newTestService()
	stored := submit(t, svc, "user-1", "cv.pdf", "%PDF-1.4 first")

	if err := svc.Remove(context.Background(), "user-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.Current(context.Background(), "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("record should be gone, got %v", err)
	}
	if _, ok := store.blobs[stored.FilePath]; ok {
		t.Fatalf("blob should be gone")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Remove(context.Background(), "user-1"); err != nil {
		t.Fatalf("removing a missing curriculo must succeed, got %v", err)
	}
}

func TestByPathScopedToOwner(t *testing.T) {
	svc, _ := newTestService()
	stored := submit(t, svc, "user-1", "cv.pdf", "%PDF-1.4 first")

	if _, err := svc.ByPath(context.Background(), "user-1", stored.FilePath); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if _, err := svc.ByPath(context.Background(), "user-2", stored.FilePath); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign lookup must fail with ErrNotFound, got %v", err)
	}
}

func TestDownloadReturnsStoredBytes(t *testing.T) {
	svc, _ := newTestService()
	submit(t, svc, "user-1", "cv.pdf", "%PDF-1.4 contents")

	record, rc, err := svc.Download(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 contents" {
		t.Fatalf("downloaded bytes diverge")
	}
	if record.FileName != "cv.pdf" {
		t.Fatalf("unexpected record %q", record.FileName)
	}
}
