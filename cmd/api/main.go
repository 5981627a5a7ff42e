package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/incial/crm-api/internal/application/otp"
	"github.com/incial/crm-api/internal/config"
	"github.com/incial/crm-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/incial/crm-api/internal/infrastructure/jwt"
	s3infra "github.com/incial/crm-api/internal/infrastructure/s3"
	"github.com/incial/crm-api/internal/infrastructure/smtp"
	"github.com/incial/crm-api/internal/infrastructure/sns"
	transporthttp "github.com/incial/crm-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// The signing secret is not optional. A process that cannot mint or
	// verify tokens must not serve requests.
	codec, err := jwtinfra.NewCodec(cfg)
	if err != nil {
		log.Fatalf("jwt codec: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// S3 store for meeting attachments.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	notifier, err := buildOtpNotifier(cfg)
	if err != nil {
		log.Fatalf("otp notifier: %v", err)
	}

	deps := &transporthttp.Deps{
		MeetingRepo:    dynamo.NewMeetingRepo(dynamoClient, cfg.DynamoTables.Meetings),
		UserRepo:       dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		OtpRepo:        dynamo.NewOtpRepo(dynamoClient, cfg.DynamoTables.Otps),
		AttachmentRepo: dynamo.NewAttachmentRepo(dynamoClient, cfg.DynamoTables.Attachments),
		S3Store:        s3Store,
		OtpNotifier:    notifier,
		JWTCodec:       codec,
	}

	router, otpSvc := transporthttp.NewRouter(cfg, deps)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepLoop(sweepCtx, otpSvc, cfg.OtpSweepInterval)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// buildOtpNotifier selects the reset-code delivery channel. Email is the
// default; SMS requires a working SNS client.
func buildOtpNotifier(cfg *config.Config) (otp.Notifier, error) {
	switch cfg.OtpChannel {
	case "sms":
		sender, err := sns.NewSender(cfg)
		if err != nil {
			return nil, err
		}
		return sns.NewOtpNotifier(sender), nil
	default:
		return smtp.NewOtpNotifier(smtp.NewMailer(cfg)), nil
	}
}

// sweepLoop periodically removes expired reset codes. Failures are logged
// inside the service; the loop itself never exits on error.
func sweepLoop(ctx context.Context, svc otp.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.SweepExpired(ctx)
		}
	}
}
