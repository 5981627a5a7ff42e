package attachment

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/incial/crm-api/internal/domain"
	"github.com/incial/crm-api/internal/pkg/id"
)

type UploadInput struct {
	MeetingID   string
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	UploadedBy  string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.Attachment, error)
	ListByMeeting(ctx context.Context, meetingID string) ([]domain.Attachment, error)
	Download(ctx context.Context, attachmentID string) (io.ReadCloser, *domain.Attachment, error)
	Delete(ctx context.Context, attachmentID string) error
}

type attachmentStore interface {
	Put(ctx context.Context, a *domain.Attachment) error
	Get(ctx context.Context, attachmentID string) (*domain.Attachment, error)
	ListByMeeting(ctx context.Context, meetingID string) ([]domain.Attachment, error)
	HardDelete(ctx context.Context, attachmentID string) error
}

type meetingStore interface {
	Get(ctx context.Context, meetingID string) (*domain.Meeting, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	objects     objectStore
	attachments attachmentStore
	meetings    meetingStore
}

func NewService(objects objectStore, attachments attachmentStore, meetings meetingStore) Service {
	return &service{objects: objects, attachments: attachments, meetings: meetings}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.Attachment, error) {
	// Uploading to a missing meeting is a 404, not an orphaned object.
	if _, err := s.meetings.Get(ctx, input.MeetingID); err != nil {
		return nil, err
	}
	safeName := sanitizeFilename(input.Filename)
	attachmentID := id.New()
	key := fmt.Sprintf("meetings/%s/%s-%s", input.MeetingID, attachmentID, safeName)
	if _, err := s.objects.Upload(ctx, key, input.Reader, input.ContentType); err != nil {
		return nil, err
	}
	a := &domain.Attachment{
		AttachmentID: attachmentID,
		MeetingID:    input.MeetingID,
		Object:       key,
		Name:         safeName,
		Type:         input.ContentType,
		Size:         input.Size,
		UploadedBy:   input.UploadedBy,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.attachments.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) ListByMeeting(ctx context.Context, meetingID string) ([]domain.Attachment, error) {
	return s.attachments.ListByMeeting(ctx, meetingID)
}

func (s *service) Download(ctx context.Context, attachmentID string) (io.ReadCloser, *domain.Attachment, error) {
	a, err := s.attachments.Get(ctx, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	body, err := s.objects.Download(ctx, a.Object)
	if err != nil {
		return nil, nil, err
	}
	return body, a, nil
}

func (s *service) Delete(ctx context.Context, attachmentID string) error {
	a, err := s.attachments.Get(ctx, attachmentID)
	if err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, a.Object); err != nil {
		return err
	}
	return s.attachments.HardDelete(ctx, attachmentID)
}

func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == "/" || base == "" {
		return "unnamed"
	}
	return base
}
