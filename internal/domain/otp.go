package domain

import "time"

// Otp is a one-time password issued for password reset.
// PK: email — keying by recipient alone is what enforces the
// at-most-one-active-code invariant: a PutItem atomically replaces any
// previous code for the same address.
// ExpiresAt is a Unix timestamp also used as the DynamoDB TTL attribute.
type Otp struct {
	Email     string    `json:"email" dynamodbav:"email"`
	Code      string    `json:"-" dynamodbav:"code"`
	Verified  bool      `json:"verified" dynamodbav:"verified"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

// Expired reports whether the code is past its TTL at the given instant.
func (o *Otp) Expired(now time.Time) bool {
	return o.ExpiresAt <= now.Unix()
}
