package meeting

import (
	"context"
	"fmt"
	"time"

	"github.com/incial/crm-api/internal/domain"
	"github.com/incial/crm-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldTitle       = "title"
	fieldDateTime    = "date_time"
	fieldStatus      = "status"
	fieldMeetingLink = "meeting_link"
	fieldNotes       = "notes"
	fieldCompanyID   = "company_id"
	fieldAssignedTo  = "assigned_to"
)

type Service interface {
	List(ctx context.Context) ([]domain.Meeting, error)
	Get(ctx context.Context, meetingID string) (*domain.Meeting, error)
	Create(ctx context.Context, req domain.CreateMeetingRequest) (*domain.Meeting, error)
	Update(ctx context.Context, meetingID string, req domain.UpdateMeetingRequest) (*domain.Meeting, error)
	Delete(ctx context.Context, meetingID string) error
}

type meetingStore interface {
	Put(ctx context.Context, m *domain.Meeting) error
	Get(ctx context.Context, meetingID string) (*domain.Meeting, error)
	Scan(ctx context.Context) ([]domain.Meeting, error)
	Update(ctx context.Context, meetingID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, meetingID string) error
}

type service struct {
	repo meetingStore
}

func NewService(repo meetingStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Meeting, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	return s.repo.Get(ctx, meetingID)
}

func (s *service) Create(ctx context.Context, req domain.CreateMeetingRequest) (*domain.Meeting, error) {
	dt, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return nil, fmt.Errorf("date_time must be RFC3339: %w", domain.ErrBadRequest)
	}
	status := req.Status
	if status == "" {
		status = domain.StatusScheduled
	}
	m := &domain.Meeting{
		MeetingID:   id.New(),
		Title:       req.Title,
		DateTime:    dt,
		Status:      status,
		MeetingLink: req.MeetingLink,
		Notes:       req.Notes,
		CompanyID:   req.CompanyID,
		AssignedTo:  req.AssignedTo,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update patches only the fields present in the request. created_at is never
// touched.
func (s *service) Update(ctx context.Context, meetingID string, req domain.UpdateMeetingRequest) (*domain.Meeting, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.DateTime != nil {
		dt, err := time.Parse(time.RFC3339, *req.DateTime)
		if err != nil {
			return nil, fmt.Errorf("date_time must be RFC3339: %w", domain.ErrBadRequest)
		}
		updates[fieldDateTime] = dt
	}
	if req.Status != nil {
		updates[fieldStatus] = *req.Status
	}
	if req.MeetingLink != nil {
		updates[fieldMeetingLink] = *req.MeetingLink
	}
	if req.Notes != nil {
		updates[fieldNotes] = *req.Notes
	}
	if req.CompanyID != nil {
		updates[fieldCompanyID] = *req.CompanyID
	}
	if req.AssignedTo != nil {
		updates[fieldAssignedTo] = *req.AssignedTo
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, meetingID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, meetingID)
}

func (s *service) Delete(ctx context.Context, meetingID string) error {
	return s.repo.HardDelete(ctx, meetingID)
}
