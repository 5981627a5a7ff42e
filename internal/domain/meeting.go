package domain

import "time"

// StatusScheduled is the default meeting status applied at creation.
const StatusScheduled = "Scheduled"

type Meeting struct {
	MeetingID   string    `json:"id" dynamodbav:"meeting_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	DateTime    time.Time `json:"date_time" dynamodbav:"date_time"`
	Status      string    `json:"status" dynamodbav:"status"`
	MeetingLink *string   `json:"meeting_link,omitempty" dynamodbav:"meeting_link"`
	Notes       *string   `json:"notes,omitempty" dynamodbav:"notes"`
	CompanyID   *string   `json:"company_id,omitempty" dynamodbav:"company_id"`
	AssignedTo  *string   `json:"assigned_to,omitempty" dynamodbav:"assigned_to"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateMeetingRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	DateTime    string  `json:"date_time" validate:"required"` // RFC3339
	Status      string  `json:"status" validate:"omitempty,max=50"`
	MeetingLink *string `json:"meeting_link"`
	Notes       *string `json:"notes"`
	CompanyID   *string `json:"company_id"`
	AssignedTo  *string `json:"assigned_to" validate:"omitempty,max=255"`
}

// UpdateMeetingRequest patches a meeting: only non-nil fields are written.
type UpdateMeetingRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	DateTime    *string `json:"date_time"` // RFC3339
	Status      *string `json:"status" validate:"omitempty,max=50"`
	MeetingLink *string `json:"meeting_link"`
	Notes       *string `json:"notes"`
	CompanyID   *string `json:"company_id"`
	AssignedTo  *string `json:"assigned_to" validate:"omitempty,max=255"`
}
