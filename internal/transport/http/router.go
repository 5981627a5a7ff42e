package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/incial/crm-api/internal/application/attachment"
	"github.com/incial/crm-api/internal/application/auth"
	"github.com/incial/crm-api/internal/application/meeting"
	"github.com/incial/crm-api/internal/application/otp"
	"github.com/incial/crm-api/internal/config"
	"github.com/incial/crm-api/internal/domain"
	"github.com/incial/crm-api/internal/transport/http/handler"
	appmiddleware "github.com/incial/crm-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router along with the OTP
// lifecycle service (the caller schedules its expiry sweep).
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, otp.Service) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second with a burst of 10 on the sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(deps.OtpRepo, deps.OtpNotifier)
	authSvc := auth.NewService(deps.UserRepo, otpSvc, deps.JWTCodec)
	meetingSvc := meeting.NewService(deps.MeetingRepo)
	attachmentSvc := attachment.NewService(deps.S3Store, deps.AttachmentRepo, deps.MeetingRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	resetH := handler.NewPasswordResetHandler(authSvc)
	meetingH := handler.NewMeetingHandler(meetingSvc)
	attachmentH := handler.NewAttachmentHandler(attachmentSvc)

	r.Route("/v1", func(r chi.Router) {
		// Public routes.
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/password-reset/{action}", resetH.Action)

		// Authenticated staff routes.
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTCodec))
			r.Use(appmiddleware.RequireRole(domain.StaffRoles...))

			r.Get("/meetings", meetingH.List)
			r.Post("/meetings", meetingH.Create)
			r.Get("/meetings/{id}", meetingH.Get)
			r.Put("/meetings/{id}", meetingH.Update)
			r.Delete("/meetings/{id}", meetingH.Delete)

			r.Post("/meetings/{id}/attachments", attachmentH.Upload)
			r.Get("/meetings/{id}/attachments", attachmentH.ListByMeeting)
			r.Get("/attachments/{id}", attachmentH.Download)
			r.Delete("/attachments/{id}", attachmentH.Delete)
		})
	})

	return r, otpSvc
}
