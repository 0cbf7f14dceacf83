// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

// fakeServer implements HTTPServer for shutdown-path testing.
type fakeServer struct {
	listenErr  error
	shutdownCh chan struct{}
	shutdowns  int
}

func newFakeServer(listenErr error) *fakeServer {
	return &fakeServer{
		listenErr:  listenErr,
		shutdownCh: make(chan struct{}),
	}
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.shutdownCh
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(_ context.Context) error {
	f.shutdowns++
	close(f.shutdownCh)
	return nil
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	server := newFakeServer(nil)
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(ctx)
	}()

	// Give the listener goroutine a moment to start, then shut down.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if server.shutdowns != 1 {
		t.Errorf("shutdown count = %d, want 1", server.shutdowns)
	}
}

func TestHTTPServerServiceListenFailure(t *testing.T) {
	listenErr := errors.New("listen tcp :80: bind: permission denied")
	svc := NewHTTPServerService(newFakeServer(listenErr), time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, listenErr) {
		t.Errorf("Serve returned %v, want wrapped listen error", err)
	}
}

func TestHTTPServerServiceName(t *testing.T) {
	svc := NewHTTPServerService(newFakeServer(nil), 0)
	if svc.String() != "http-server" {
		t.Errorf("String() = %q, want http-server", svc.String())
	}
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("default shutdown timeout = %v, want 10s", svc.shutdownTimeout)
	}
}
