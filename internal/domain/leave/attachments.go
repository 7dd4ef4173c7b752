package leave

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"hradmin/internal/domain/shared"
	"hradmin/internal/platform/storage"
)

var ErrAttachmentNotFound = fmt.Errorf("attachment %w", shared.ErrNotFound)

// AttachmentStore is the object storage used for supporting documents.
type AttachmentStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (storage.Object, error)
}

func attachmentKey(leaveID int64, name string) string {
	return fmt.Sprintf("leaves/%d/%s", leaveID, name)
}

// attachmentName keeps only a short lowercase extension from the client file
// name; the rest of the stored name is random.
func attachmentName(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 10 || strings.ContainsAny(ext, " /?#%") {
		ext = ""
	}
	return uuid.NewString() + ext
}

// AddAttachment uploads body and records it on the leave request.
func (s *Service) AddAttachment(ctx context.Context, id int64, filename string, body io.Reader, size int64, contentType string) (Leave, error) {
	current, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Leave{}, err
	}
	name := attachmentName(filename)
	if err := s.Files.Put(ctx, attachmentKey(id, name), body, size, contentType); err != nil {
		return Leave{}, err
	}
	names := append(append([]string{}, current.Attachments...), name)
	return s.Store.Update(ctx, id, Data{Attachments: shared.Set(names)})
}

// OpenAttachment streams a previously uploaded document. The caller closes
// the returned body.
func (s *Service) OpenAttachment(ctx context.Context, id int64, name string) (storage.Object, error) {
	current, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return storage.Object{}, err
	}
	if !current.HasAttachment(name) {
		return storage.Object{}, ErrAttachmentNotFound
	}
	return s.Files.Get(ctx, attachmentKey(id, name))
}
