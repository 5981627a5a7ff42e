package domain

import "time"

// Attachment is metadata for a file stored in S3 and linked to a meeting.
// PK: attachment_id, GSI: meeting_id-index.
type Attachment struct {
	AttachmentID string    `json:"id" dynamodbav:"attachment_id"`
	MeetingID    string    `json:"meeting_id" dynamodbav:"meeting_id"`
	Object       string    `json:"-" dynamodbav:"object"` // S3 key
	Name         string    `json:"name" dynamodbav:"name"`
	Type         string    `json:"type" dynamodbav:"type"`
	Size         int64     `json:"size" dynamodbav:"size"`
	UploadedBy   string    `json:"uploaded_by" dynamodbav:"uploaded_by"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}
