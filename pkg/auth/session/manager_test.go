package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		values: map[string]string{},
		ttls:   map[string]time.Duration{},
	}
}

func (m *mockStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
		delete(m.ttls, key)
	}
	return nil
}

type mockKeyer struct{}

func (mockKeyer) AccessSessionKey(accessID string) string {
	return "pv:session:access:" + accessID
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{
		store: store,
		keyer: mockKeyer{},
		ttl:   time.Hour,
	}
}

func TestGenerateStoresMarkerWithTTL(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)

	accessID := NewAccessID()
	if err := manager.Generate(context.Background(), accessID); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	key := mockKeyer{}.AccessSessionKey(accessID)
	if store.values[key] == "" {
		t.Fatal("expected marker to be stored")
	}
	if store.ttls[key] != time.Hour {
		t.Fatalf("expected ttl %s, got %s", time.Hour, store.ttls[key])
	}
}

func TestGenerateRejectsEmptyAccessID(t *testing.T) {
	manager := newTestManager(newMockStore())
	if err := manager.Generate(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank access id")
	}
}

func TestHasSession(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)

	accessID := NewAccessID()
	ok, err := manager.HasSession(context.Background(), accessID)
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if ok {
		t.Fatal("expected no session before Generate")
	}

	if err := manager.Generate(context.Background(), accessID); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	ok, err = manager.HasSession(context.Background(), accessID)
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected session after Generate")
	}
}

func TestHasSessionPropagatesStoreErrors(t *testing.T) {
	store := newMockStore()
	store.getErr = fmt.Errorf("redis down")
	manager := newTestManager(store)

	if _, err := manager.HasSession(context.Background(), NewAccessID()); err == nil {
		t.Fatal("expected store error to propagate")
	}
}

func TestRevoke(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)

	accessID := NewAccessID()
	if err := manager.Generate(context.Background(), accessID); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if err := manager.Revoke(context.Background(), accessID); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	ok, err := manager.HasSession(context.Background(), accessID)
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if ok {
		t.Fatal("expected session to be gone after Revoke")
	}
}
