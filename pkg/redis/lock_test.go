package redis

import (
	"context"
	"testing"
	"time"
)

func TestLockAcquireRelease(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	lock, err := NewLock(client, client.LockKey("sync-all"), time.Hour)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}

	ok, err := lock.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !ok {
		t.Fatal("expected lock acquired")
	}

	second, err := NewLock(client, client.LockKey("sync-all"), time.Hour)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	ok, err = second.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if ok {
		t.Fatal("expected contention to fail")
	}

	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}

	ok, err = second.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	if !ok {
		t.Fatal("expected lock acquired after release")
	}
}

func TestLockReleaseIgnoresForeignOwner(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	lock, err := NewLock(client, client.LockKey("sync-all"), time.Hour)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("expected lock acquired")
	}

	// Simulate TTL expiry followed by another owner taking the key.
	mock.data[client.LockKey("sync-all")] = "someone-else"

	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mock.data[client.LockKey("sync-all")] != "someone-else" {
		t.Fatal("release must not delete another owner's lock")
	}
}
