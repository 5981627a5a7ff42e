package http

import (
	jwtinfra "github.com/incial/crm-api/internal/infrastructure/jwt"
	"github.com/incial/crm-api/internal/infrastructure/dynamo"
	s3infra "github.com/incial/crm-api/internal/infrastructure/s3"
	"github.com/incial/crm-api/internal/application/otp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	MeetingRepo    *dynamo.MeetingRepo
	UserRepo       *dynamo.UserRepo
	OtpRepo        *dynamo.OtpRepo
	AttachmentRepo *dynamo.AttachmentRepo
	S3Store        *s3infra.Store
	OtpNotifier    otp.Notifier
	JWTCodec       *jwtinfra.Codec
}
