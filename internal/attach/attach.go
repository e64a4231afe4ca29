// Package attach sequences an optional file upload ahead of task
// creation, so a persisted task always carries a resolved attachment
// reference or none at all.
package attach

import (
	"context"
	"fmt"
	"time"

	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

// Storage is the attachment storage boundary. Upload stores the bytes
// under a key namespaced by the owner and returns a retrievable URL.
type Storage interface {
	Upload(ctx context.Context, ownerID, filename string, data []byte) (string, error)
}

// File is a pending upload attached to a task being created
type File struct {
	Name string
	Data []byte
}

// Creator persists tasks, resolving any requested upload first
type Creator struct {
	storage Storage
	tasks   remote.TaskCollection
	now     func() time.Time
}

// NewCreator wires a task creator to its storage and collection
func NewCreator(storage Storage, tasks remote.TaskCollection) *Creator {
	return &Creator{storage: storage, tasks: tasks, now: time.Now}
}

// Create uploads the file if one is present, then persists the task
// carrying the resolved attachment. If the upload fails no task record
// is created and the whole operation fails.
func (c *Creator) Create(ctx context.Context, task models.Task, file *File) (string, error) {
	if file != nil {
		// Timestamp prefix keeps concurrent uploads of the same
		// filename from colliding.
		key := fmt.Sprintf("%d_%s", c.now().UnixMilli(), file.Name)
		url, err := c.storage.Upload(ctx, task.OwnerID, key, file.Data)
		if err != nil {
			return "", &remote.AttachmentUploadError{Name: file.Name, Err: err}
		}
		task.Attachment = &models.Attachment{Name: file.Name, URL: url}
	}

	return c.tasks.Create(ctx, task)
}
