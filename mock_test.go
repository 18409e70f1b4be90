package redshiftlineage

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"testing"
)

type mockRegionResolver struct {
	mu                       sync.Mutex
	profiles                 []string
	ResolveDefaultRegionFunc func(ctx context.Context, profile string) (string, error)
}

func (m *mockRegionResolver) ResolveDefaultRegion(ctx context.Context, profile string) (string, error) {
	m.mu.Lock()
	m.profiles = append(m.profiles, profile)
	m.mu.Unlock()
	if m.ResolveDefaultRegionFunc == nil {
		return "", errors.New("unexpected call ResolveDefaultRegion")
	}
	return m.ResolveDefaultRegionFunc(ctx, profile)
}

func (m *mockRegionResolver) Profiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.profiles...)
}

type mockHook struct {
	GetConnectionFunc func(ctx context.Context) (*Connection, error)
}

func (m *mockHook) GetConnection(ctx context.Context) (*Connection, error) {
	if m.GetConnectionFunc == nil {
		return nil, errors.New("unexpected call GetConnection")
	}
	return m.GetConnectionFunc(ctx)
}

func captureLog(t *testing.T, set func(Logger) error, current Logger) (*bytes.Buffer, func()) {
	t.Helper()
	var buf bytes.Buffer
	if err := set(log.New(&buf, "", 0)); err != nil {
		t.Fatalf("set logger: %s", err)
	}
	return &buf, func() {
		if err := set(current); err != nil {
			t.Fatalf("restore logger: %s", err)
		}
	}
}

func captureWarnLog(t *testing.T) (*bytes.Buffer, func()) {
	return captureLog(t, SetWarnLogger, warnLogger)
}

func requireNoErrorLog(t *testing.T) func() {
	t.Helper()
	buf, restore := captureLog(t, SetLogger, errLogger)
	return func() {
		restore()
		if buf.Len() > 0 {
			t.Errorf("unexpected error log: %s", buf.String())
		}
	}
}
