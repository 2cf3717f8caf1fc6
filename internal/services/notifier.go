package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jobxnepal/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const sweepInterval = 30 * time.Minute

// NotifierService periodically emails job seekers about new postings that
// match one of their job choices, then marks each posting as sent.
type NotifierService struct {
	DB     *gorm.DB
	Mailer Mailer

	// Single-slot guard: a tick that arrives while a sweep is still running
	// is skipped rather than queued.
	sweeping sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewNotifierService(db *gorm.DB, mailer Mailer) *NotifierService {
	ctx, cancel := context.WithCancel(context.Background())
	return &NotifierService{
		DB:     db,
		Mailer: mailer,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the background sweep. The first cycle runs immediately,
// subsequent ones on the ticker.
func (s *NotifierService) Start() {
	ticker := time.NewTicker(sweepInterval)

	go func() {
		defer ticker.Stop()

		s.runSweep()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runSweep()
			}
		}
	}()

	log.Info().Dur("interval", sweepInterval).Msg("job notification sweep started")
}

// Stop cancels the background loop. An in-flight cycle finishes its current
// job before observing cancellation.
func (s *NotifierService) Stop() {
	s.cancel()
	log.Info().Msg("job notification sweep stopped")
}

func (s *NotifierService) runSweep() {
	if !s.sweeping.TryLock() {
		log.Warn().Msg("previous notification sweep still running, skipping this cycle")
		return
	}
	defer s.sweeping.Unlock()

	if err := s.Sweep(s.ctx); err != nil {
		log.Error().Err(err).Msg("notification sweep failed")
	}
}

// Sweep processes every posting whose newsletter has not gone out yet. A
// failure while handling one posting skips it (the flag stays false, so the
// next cycle retries) and the sweep moves on to the rest.
func (s *NotifierService) Sweep(ctx context.Context) error {
	var jobs []models.Job
	if err := s.DB.WithContext(ctx).Where("newsletters_sent = ?", false).Find(&jobs).Error; err != nil {
		return fmt.Errorf("fetch unsent jobs: %w", err)
	}

	if len(jobs) == 0 {
		return nil
	}

	log.Info().Int("jobs", len(jobs)).Msg("notification sweep: processing unsent postings")

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.notifyForJob(ctx, job); err != nil {
			log.Error().Err(err).Uint("job_id", job.ID).Msg("skipping posting, will retry next cycle")
			continue
		}
	}

	return nil
}

// notifyForJob emails every matching seeker, then durably flips the sent
// flag. There is no transaction spanning send and flag update: if the flag
// write fails after mails went out, the next cycle may send duplicates.
func (s *NotifierService) notifyForJob(ctx context.Context, job models.Job) error {
	// Matching is on the three choice fields alone, whatever the account's
	// role.
	var users []models.User
	err := s.DB.WithContext(ctx).
		Where("choice_first_choice = ? OR choice_second_choice = ? OR choice_third_choice = ?",
			job.JobCategory, job.JobCategory, job.JobCategory).
		Find(&users).Error
	if err != nil {
		return fmt.Errorf("fetch matching users: %w", err)
	}

	for _, user := range users {
		subject, body := composeJobAlert(user, job)
		// Fire-and-forget: one bounced address must not block the rest.
		if err := s.Mailer.Send(user.Email, subject, body); err != nil {
			log.Error().Err(err).Str("email", user.Email).Uint("job_id", job.ID).
				Msg("failed to send job alert")
		}
	}

	if err := s.DB.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", job.ID).
		Update("newsletters_sent", true).Error; err != nil {
		return fmt.Errorf("mark newsletter sent: %w", err)
	}

	return nil
}

func composeJobAlert(user models.User, job models.Job) (subject, body string) {
	subject = fmt.Sprintf("New Job Alert for %s in %s Available Now", job.Title, job.JobCategory)
	body = fmt.Sprintf(
		"Hi %s,\n\n"+
			"A new job that fits your job choices has just been posted. The position is for a %s in %s, and they are looking to hire immediately.\n\n"+
			"Job Details:\n"+
			"- Position: %s\n"+
			"- Company: %s\n"+
			"- Location: %s\n"+
			"- Salary: %s\n\n"+
			"We're here to support you in your job search.\n\n"+
			"Best Regards,\nJobxNepal Team",
		user.Name, job.Title, job.CompanyName,
		job.Title, job.CompanyName, job.Location, job.Salary,
	)
	return subject, body
}
