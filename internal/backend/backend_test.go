package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

func openTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := OpenMemory(zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func waitSnapshot(t *testing.T, sub remote.TaskSubscription) []models.Task {
	t.Helper()
	select {
	case snap, ok := <-sub.Snapshots():
		if !ok {
			t.Fatal("subscription closed while waiting for a snapshot")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot within 2s")
		return nil
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	if _, err := b.Create(ctx, models.Task{OwnerID: "u1", Title: "existing"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	sub, err := b.Subscribe(ctx, "u1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	snap := waitSnapshot(t, sub)
	if len(snap) != 1 || snap[0].Title != "existing" {
		t.Fatalf("initial snapshot = %v", snap)
	}
}

func TestWritesNotifySubscribers(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, "u1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()
	waitSnapshot(t, sub) // initial, empty

	id, err := b.Create(ctx, models.Task{OwnerID: "u1", Title: "first", Tags: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	snap := waitSnapshot(t, sub)
	if len(snap) != 1 || snap[0].ID != id {
		t.Fatalf("snapshot after create = %v", snap)
	}
	if len(snap[0].Tags) != 2 {
		t.Fatalf("tags did not round-trip: %v", snap[0].Tags)
	}

	if err := b.Update(ctx, "u1", id, map[string]any{"status": models.StatusCompleted, "completed_at": time.Now()}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	snap = waitSnapshot(t, sub)
	if snap[0].Status != models.StatusCompleted || snap[0].CompletedAt == nil {
		t.Fatalf("snapshot after update = %+v", snap[0])
	}

	if err := b.Delete(ctx, "u1", id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	snap = waitSnapshot(t, sub)
	if len(snap) != 0 {
		t.Fatalf("snapshot after delete = %v", snap)
	}
}

func TestSnapshotsAreScopedToOwner(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	if _, err := b.Create(ctx, models.Task{OwnerID: "other", Title: "not yours"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	sub, err := b.Subscribe(ctx, "u1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	if snap := waitSnapshot(t, sub); len(snap) != 0 {
		t.Fatalf("subscriber sees another owner's tasks: %v", snap)
	}
}

func TestSnapshotOrdering(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		_, err := b.Create(ctx, models.Task{
			OwnerID:   "u1",
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	sub, err := b.Subscribe(ctx, "u1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	snap := waitSnapshot(t, sub)
	want := []string{"newest", "middle", "oldest"}
	for i, title := range want {
		if snap[i].Title != title {
			t.Fatalf("snapshot order = %v, want %v", snap, want)
		}
	}
}

func TestUpdateMissingTask(t *testing.T) {
	b := openTestBackend(t)
	err := b.Update(context.Background(), "u1", "ghost", map[string]any{"status": models.StatusCompleted})
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("Update on missing id = %v, want ErrNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	b := openTestBackend(t)
	if err := b.Delete(context.Background(), "u1", "ghost"); err != nil {
		t.Fatalf("deleting a missing id errored: %v", err)
	}
}

func TestCancelStopsNotifications(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, "u1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	waitSnapshot(t, sub)

	sub.Cancel()
	sub.Cancel() // idempotent

	if _, err := b.Create(ctx, models.Task{OwnerID: "u1", Title: "after cancel"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The channel must be closed with nothing further delivered
	if snap, ok := <-sub.Snapshots(); ok {
		t.Fatalf("cancelled subscription still delivered %v", snap)
	}
}

func TestTimeLogs(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()
	logs := b.Logs()

	first := models.TimeLog{
		OwnerID:    "u1",
		TaskID:     "t1",
		TaskTitle:  "Fix bug",
		DurationMS: 1500,
		SavedAt:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	second := first
	second.TaskTitle = "Write docs"
	second.SavedAt = first.SavedAt.Add(time.Hour)

	for _, log := range []models.TimeLog{first, second} {
		if _, err := logs.Create(ctx, log); err != nil {
			t.Fatalf("CreateLog failed: %v", err)
		}
	}

	got, err := logs.Recent(ctx, "u1")
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 || got[0].TaskTitle != "Write docs" {
		t.Fatalf("Recent = %v, want newest first", got)
	}

	other, err := logs.Recent(ctx, "someone-else")
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatal("logs leaked across owners")
	}
}

func TestUserDocuments(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	if _, err := b.Get(ctx, "u1"); !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("Get on missing user = %v, want ErrNotFound", err)
	}

	user := models.User{
		ID:          "u1",
		Email:       "dana@example.com",
		DisplayName: "dana",
		Role:        models.RoleOwner,
		Settings:    models.DefaultSettings(),
	}
	if err := b.Put(ctx, user); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	newSettings := models.Settings{Notifications: false, EmailDigest: true, Theme: "dark"}
	if err := b.UpdateSettings(ctx, "u1", "Dana K", newSettings); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	got, err := b.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.DisplayName != "Dana K" || got.Settings != newSettings {
		t.Fatalf("user after update = %+v", got)
	}

	if err := b.UpdateSettings(ctx, "ghost", "x", newSettings); !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("UpdateSettings on missing user = %v, want ErrNotFound", err)
	}
}
