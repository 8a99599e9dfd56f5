package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
)

func TestIsSupportedFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"inbox/meeting.mp3", true},
		{"inbox/MEETING.WAV", true},
		{"inbox/voice.m4a", true},
		{"inbox/board.heic", true},
		{"inbox/receipt.jpeg", true},
		{"inbox/notes.txt", false},
		{"inbox/video.mp4", false},
		{"inbox/.board.png", false},
		{"inbox/noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isSupportedFile(tt.path); got != tt.want {
				t.Errorf("isSupportedFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSemaphore(t *testing.T) {
	s := newSemaphore(1)
	ctx := context.Background()
	if err := s.acquire(ctx); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := s.acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("acquire on a full semaphore = %v", err)
	}

	s.release()
	if err := s.acquire(context.Background()); err != nil {
		t.Errorf("acquire after release = %v", err)
	}
}

type recorder struct {
	mu    sync.Mutex
	files []string
	seen  chan string
}

func (r *recorder) handle(ctx context.Context, path string) error {
	r.mu.Lock()
	r.files = append(r.files, filepath.Base(path))
	r.mu.Unlock()
	r.seen <- filepath.Base(path)
	return nil
}

func waitFor(t *testing.T, seen <-chan string, want string) {
	t.Helper()
	select {
	case got := <-seen:
		if got != want {
			t.Errorf("handled %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", want)
	}
}

func TestStartHandlesPendingAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pending.wav"), []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{seen: make(chan string, 4)}
	w, err := New(dir, rec.handle, logger.NewNop(), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	waitFor(t, rec.seen, "pending.wav")

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "photo.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rec.seen, "photo.png")

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.files) != 2 {
		t.Errorf("handled %v, want only the supported files", rec.files)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.NewNop(), 0); err == nil {
		t.Error("New() should fail for a missing directory")
	}
}
