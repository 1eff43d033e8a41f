package discovery

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
)

// deadPort reserves a free port and releases it so nothing is listening.
func deadPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserving port: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}

func TestFindReturnsFirstHealthyPortAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/test" {
			t.Fatalf("unexpected probe path %s", r.URL.Path)
		}
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	livePort := srv.Listener.Addr().(*net.TCPAddr).Port
	p := New("127.0.0.1", []int{deadPort(t), deadPort(t), livePort})

	base, err := p.Find(context.Background())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := "http://127.0.0.1:" + strconv.Itoa(livePort)
	if base != want {
		t.Fatalf("Find = %q, want %q", base, want)
	}

	// Second call must come from the cache, not another probe.
	again, err := p.Find(context.Background())
	if err != nil {
		t.Fatalf("cached Find: %v", err)
	}
	if again != base {
		t.Fatalf("cached Find = %q, want %q", again, base)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected exactly 1 probe hit, got %d", n)
	}

	// Invalidate forces a re-probe.
	p.Invalidate()
	if _, err := p.Find(context.Background()); err != nil {
		t.Fatalf("Find after Invalidate: %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("expected 2 probe hits after invalidate, got %d", n)
	}
}

func TestFindExhaustsPorts(t *testing.T) {
	p := New("127.0.0.1", []int{deadPort(t), deadPort(t)})

	_, err := p.Find(context.Background())
	if !errors.Is(err, ErrNoBackendFound) {
		t.Fatalf("expected ErrNoBackendFound, got %v", err)
	}
}

func TestFindSkipsUnhealthyBackend(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer good.Close()

	badPort := bad.Listener.Addr().(*net.TCPAddr).Port
	goodPort := good.Listener.Addr().(*net.TCPAddr).Port

	p := New("127.0.0.1", []int{badPort, goodPort})
	base, err := p.Find(context.Background())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := "http://127.0.0.1:" + strconv.Itoa(goodPort)
	if base != want {
		t.Fatalf("Find = %q, want %q", base, want)
	}
}
