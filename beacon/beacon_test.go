package beacon

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"helix-lamp/types"
)

type capture struct {
	mu     sync.Mutex
	bodies []string
}

func (c *capture) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	if r.Method == http.MethodPost {
		c.bodies = append(c.bodies, string(body))
	}
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bodies)
}

func TestNotify(t *testing.T) {
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer srv.Close()

	b := New(srv.URL, time.Minute, types.NewDiscardLogger())
	if !b.Enabled() {
		t.Fatal("beacon with endpoint should be enabled")
	}
	if err := b.CheckConnectivity(); err != nil {
		t.Fatalf("CheckConnectivity() error = %v", err)
	}
	if err := b.Notify("lamp is online"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if rec.count() != 1 || rec.bodies[0] != "lamp is online" {
		t.Errorf("server saw %v, want one message", rec.bodies)
	}

	if err := b.Notify(""); err == nil {
		t.Error("Notify(\"\") should fail")
	}
}

func TestNotifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := New(srv.URL, time.Minute, types.NewDiscardLogger())
	if err := b.Notify("hello"); err == nil {
		t.Error("Notify() should fail on a 500")
	}
}

func TestDisabledBeacon(t *testing.T) {
	b := New("", time.Minute, types.NewDiscardLogger())
	if b.Enabled() {
		t.Fatal("beacon without endpoint should be disabled")
	}
	if err := b.Notify("anything"); err != nil {
		t.Errorf("disabled Notify() error = %v, want nil", err)
	}
	if err := b.CheckConnectivity(); err != nil {
		t.Errorf("disabled CheckConnectivity() error = %v, want nil", err)
	}

	// Run must return immediately, not tick forever.
	done := make(chan struct{})
	go func() {
		b.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("disabled Run() did not return")
	}
}

func TestRunHeartbeats(t *testing.T) {
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer srv.Close()

	b := New(srv.URL, 10*time.Millisecond, types.NewDiscardLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	b.Run(ctx)

	if rec.count() < 2 {
		t.Errorf("saw %d heartbeats in 50ms at 10ms interval, want at least 2", rec.count())
	}
}
