package account

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

type fakeUsers struct {
	docs map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{docs: make(map[string]models.User)}
}

func (f *fakeUsers) Get(ctx context.Context, id string) (models.User, error) {
	user, ok := f.docs[id]
	if !ok {
		return models.User{}, remote.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) Put(ctx context.Context, user models.User) error {
	f.docs[user.ID] = user
	return nil
}

func (f *fakeUsers) UpdateSettings(ctx context.Context, id, displayName string, settings models.Settings) error {
	user, ok := f.docs[id]
	if !ok {
		return remote.ErrNotFound
	}
	user.DisplayName = displayName
	user.Settings = settings
	f.docs[id] = user
	return nil
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(f.docs))
	for _, u := range f.docs {
		users = append(users, u)
	}
	return users, nil
}

func TestEnsureUserCreatesWithDefaults(t *testing.T) {
	users := newFakeUsers()
	svc := NewService(users)

	user, err := svc.EnsureUser(context.Background(), "u1", "dana@example.com")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if user.DisplayName != "dana" || user.Role != models.RoleOwner {
		t.Fatalf("first sign-in created %+v", user)
	}
	if user.Settings != models.DefaultSettings() {
		t.Fatalf("settings = %+v, want defaults", user.Settings)
	}
}

func TestEnsureUserReturnsExisting(t *testing.T) {
	users := newFakeUsers()
	users.docs["u1"] = models.User{
		ID:          "u1",
		Email:       "dana@example.com",
		DisplayName: "Dana K",
		Role:        models.RoleOwner,
		Settings:    models.Settings{Notifications: false, Theme: "dark"},
	}
	svc := NewService(users)

	user, err := svc.EnsureUser(context.Background(), "u1", "dana@example.com")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if user.DisplayName != "Dana K" || user.Settings.Theme != "dark" {
		t.Fatalf("existing document was overwritten: %+v", user)
	}
}

func TestInviteCreatesPlaceholderViewer(t *testing.T) {
	users := newFakeUsers()
	svc := NewService(users)

	member, err := svc.Invite(context.Background(), "guest@example.com")
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if member.Role != models.RoleViewer || !member.Placeholder {
		t.Fatalf("invite created %+v", member)
	}
	if member.ID == "" {
		t.Fatal("invited member has no id")
	}
	if _, ok := users.docs[member.ID]; !ok {
		t.Fatal("invite did not persist the placeholder document")
	}
}

func TestExport(t *testing.T) {
	users := newFakeUsers()
	users.docs["u1"] = models.User{
		ID:          "u1",
		Email:       "dana@example.com",
		DisplayName: "Dana",
		Settings:    models.Settings{Notifications: true, Theme: "light"},
	}
	svc := NewService(users)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), "u1", &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc struct {
		User struct {
			Email       string `json:"email"`
			DisplayName string `json:"display_name"`
		} `json:"user"`
		Settings   models.Settings `json:"settings"`
		ExportedAt time.Time       `json:"exported_at"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.User.Email != "dana@example.com" || doc.User.DisplayName != "Dana" {
		t.Fatalf("exported user = %+v", doc.User)
	}
	if doc.ExportedAt.IsZero() {
		t.Fatal("export lacks a timestamp")
	}
}
