package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) AccessSessionKey(accessID string) string {
	return "session:access:" + accessID
}

func newTestManager() (*Manager, *fakeStore) {
	store := newFakeStore()
	return &Manager{store: store, keyer: fakeKeyer{}, ttl: time.Hour}, store
}

func TestOpenThenHasSession(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	if err := mgr.Open(ctx, "abc"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	ok, err := mgr.HasSession(ctx, "abc")
	if err != nil {
		t.Fatalf("HasSession failed: %v", err)
	}
	if !ok {
		t.Fatal("expected live session")
	}
}

func TestHasSessionFalseWhenMissing(t *testing.T) {
	mgr, _ := newTestManager()
	ok, err := mgr.HasSession(context.Background(), "missing")
	if err != nil {
		t.Fatalf("HasSession failed: %v", err)
	}
	if ok {
		t.Fatal("expected no session")
	}
}

func TestRevokeRemovesSession(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	if err := mgr.Open(ctx, "abc"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := mgr.Revoke(ctx, "abc"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	ok, err := mgr.HasSession(ctx, "abc")
	if err != nil {
		t.Fatalf("HasSession failed: %v", err)
	}
	if ok {
		t.Fatal("expected session revoked")
	}
}

func TestBlankAccessIDRejected(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	if err := mgr.Open(ctx, " "); err == nil {
		t.Fatal("expected error for blank access id")
	}
	if _, err := mgr.HasSession(ctx, ""); err == nil {
		t.Fatal("expected error for blank access id")
	}
	if err := mgr.Revoke(ctx, ""); err == nil {
		t.Fatal("expected error for blank access id")
	}
}
