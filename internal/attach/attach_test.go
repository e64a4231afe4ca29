package attach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

type fakeStorage struct {
	uploads int
	lastKey string
	fail    error
}

func (f *fakeStorage) Upload(ctx context.Context, ownerID, filename string, data []byte) (string, error) {
	f.uploads++
	f.lastKey = filename
	if f.fail != nil {
		return "", f.fail
	}
	return "https://files.example.com/" + ownerID + "/" + filename, nil
}

type fakeTasks struct {
	created []models.Task
}

func (f *fakeTasks) Subscribe(ctx context.Context, ownerID string) (remote.TaskSubscription, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTasks) Create(ctx context.Context, task models.Task) (string, error) {
	f.created = append(f.created, task)
	return "task-1", nil
}

func (f *fakeTasks) Update(ctx context.Context, ownerID, id string, fields map[string]any) error {
	return nil
}

func (f *fakeTasks) Delete(ctx context.Context, ownerID, id string) error {
	return nil
}

func newTestCreator(storage *fakeStorage, tasks *fakeTasks) *Creator {
	c := NewCreator(storage, tasks)
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c
}

func TestCreateWithoutFileSkipsStorage(t *testing.T) {
	storage := &fakeStorage{}
	tasks := &fakeTasks{}
	c := newTestCreator(storage, tasks)

	id, err := c.Create(context.Background(), models.Task{Title: "No file", OwnerID: "u1"}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id != "task-1" {
		t.Fatalf("Create returned id %q", id)
	}
	if storage.uploads != 0 {
		t.Fatal("no-file path still called storage")
	}
	if tasks.created[0].Attachment != nil {
		t.Fatal("no-file task carries an attachment")
	}
}

func TestCreateUploadsBeforeTask(t *testing.T) {
	storage := &fakeStorage{}
	tasks := &fakeTasks{}
	c := newTestCreator(storage, tasks)

	file := &File{Name: "report.pdf", Data: []byte("pdf")}
	if _, err := c.Create(context.Background(), models.Task{Title: "With file", OwnerID: "u1"}, file); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if storage.uploads != 1 {
		t.Fatalf("storage called %d times, want 1", storage.uploads)
	}
	if !strings.HasPrefix(storage.lastKey, "1700000000000_") || !strings.HasSuffix(storage.lastKey, "report.pdf") {
		t.Fatalf("upload key %q lacks the timestamp namespace", storage.lastKey)
	}

	att := tasks.created[0].Attachment
	if att == nil {
		t.Fatal("task created without the resolved attachment")
	}
	if att.Name != "report.pdf" || !strings.Contains(att.URL, "u1") {
		t.Fatalf("attachment = %+v", att)
	}
}

func TestUploadFailureCreatesNoTask(t *testing.T) {
	storage := &fakeStorage{fail: errors.New("storage unavailable")}
	tasks := &fakeTasks{}
	c := newTestCreator(storage, tasks)

	_, err := c.Create(context.Background(), models.Task{Title: "Doomed"}, &File{Name: "f.txt"})

	var uploadErr *remote.AttachmentUploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("Create returned %v, want AttachmentUploadError", err)
	}
	if uploadErr.Name != "f.txt" {
		t.Fatalf("error names %q", uploadErr.Name)
	}
	if len(tasks.created) != 0 {
		t.Fatal("task record created despite the failed upload")
	}
}
