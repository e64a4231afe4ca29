package remote

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is. The first two are
// validation failures, rejected before any remote call is made.
var (
	ErrNoTaskSelected  = errors.New("no task selected")
	ErrSessionTooShort = errors.New("time session too short to save")
	ErrNotFound        = errors.New("record not found")
)

// WriteError wraps a failed create, update or delete against a collection
type WriteError struct {
	Op  string // "create", "update", "delete"
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// AttachmentUploadError marks a task creation aborted because the
// requested file upload did not resolve. No task record exists.
type AttachmentUploadError struct {
	Name string
	Err  error
}

func (e *AttachmentUploadError) Error() string {
	return fmt.Sprintf("attachment upload failed for %q: %v", e.Name, e.Err)
}

func (e *AttachmentUploadError) Unwrap() error { return e.Err }

// SubscriptionError is a stream-level fault on a live subscription.
// The task store degrades to its last known snapshot when it sees one.
type SubscriptionError struct {
	Err error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("subscription failed: %v", e.Err)
}

func (e *SubscriptionError) Unwrap() error { return e.Err }
