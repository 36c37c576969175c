package services

import (
	"context"
	"log"

	"syntra/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService handles scheduled background jobs
type CronService struct {
	cron    *cron.Cron
	otpRepo repositories.OtpRepository
}

// NewCronService creates a new cron service
func NewCronService(otpRepo repositories.OtpRepository) *CronService {
	return &CronService{
		cron:    cron.New(),
		otpRepo: otpRepo,
	}
}

// Start registers and starts all scheduled jobs
func (s *CronService) Start() error {
	// Purge expired OTP codes daily at 03:00
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredOTPs); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron jobs started")
	return nil
}

// Stop stops the cron scheduler
func (s *CronService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		log.Println("🛑 Cron jobs stopped")
	}
}

// purgeExpiredOTPs deletes OTP codes past their expiry
func (s *CronService) purgeExpiredOTPs() {
	deleted, err := s.otpRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("⚠️ OTP purge failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 Purged %d expired OTP codes", deleted)
	}
}
