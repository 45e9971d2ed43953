package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chungjai123/food-bot/internal/ports/jobs"
	"github.com/chungjai123/food-bot/internal/ports/service"
)

// DefaultRetries паузы между повторами упавшей джобы | now + 1m + 10m + 30m
var DefaultRetries = []time.Duration{
	1 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs           []jobs.Job
	retries        []time.Duration
	alerterService service.IAlerterService
	log            *slog.Logger
}

// NewScheduler создаёт новый планировщик джоб; alerterService может быть nil
func NewScheduler(log *slog.Logger, alerterService service.IAlerterService) *Scheduler {
	return &Scheduler{
		jobs:           make([]jobs.Job, 0),
		retries:        DefaultRetries,
		alerterService: alerterService,
		log:            log,
	}
}

// WithRetries заменяет паузы между повторами; пустой список отключает повторы
func (s *Scheduler) WithRetries(retries []time.Duration) *Scheduler {
	s.retries = retries
	return s
}

// Register регистрирует джобу в планировщике
func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает все джобы и блокируется до отмены контекста
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.jobs) == 0 {
		s.log.Warn("no jobs registered, scheduler not started")
		return nil
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func(job jobs.Job) {
			defer wg.Done()
			s.runJob(ctx, job)
		}(job)
	}
	wg.Wait()

	s.log.Info("job scheduler stopped")
	return nil
}

// runJob крутит джобу по её расписанию до отмены контекста
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()
	for {
		now := time.Now()
		timer := time.NewTimer(job.NextRun(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-timer.C:
			attemptErrors, err := s.executeJobWithRetry(ctx, job)
			if err != nil {
				s.log.Error("job failed after all retries",
					"job_name", jobName,
					"error", err,
					"attempts", len(attemptErrors),
				)
				s.sendAlert(ctx, jobName, attemptErrors)
				continue
			}
			s.log.Debug("job executed successfully", "job_name", jobName)
		}
	}
}

// jobAttemptError представляет ошибку конкретной попытки выполнения джобы
type jobAttemptError struct {
	attempt int
	err     error
}

// executeJobWithRetry выполняет джобу, при ошибке повторяет по s.retries.
// Возвращает ошибки всех попыток и финальную ошибку
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job) ([]jobAttemptError, error) {
	var attemptErrors []jobAttemptError

	for attempt := 1; ; attempt++ {
		err := job.Run(ctx)
		if err == nil {
			return nil, nil
		}
		attemptErrors = append(attemptErrors, jobAttemptError{attempt: attempt, err: err})

		if attempt > len(s.retries) {
			return attemptErrors, fmt.Errorf("all retry attempts failed (total attempts: %d): %w", attempt, err)
		}

		s.log.Warn("job execution failed, will retry",
			"job_name", job.Name(),
			"attempt", attempt,
			"retries_remaining", len(s.retries)-attempt+1,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return attemptErrors, ctx.Err()
		case <-time.After(s.retries[attempt-1]):
		}
	}
}

// sendAlert алертит на финальную ошибку после ретраев
func (s *Scheduler) sendAlert(ctx context.Context, jobName string, attemptErrors []jobAttemptError) {
	if s.alerterService == nil || ctx.Err() != nil {
		return
	}

	var message strings.Builder
	message.WriteString("Финальная ошибка планировщика, ретраи исчерпаны\n\n")
	message.WriteString(fmt.Sprintf("Джоба: %s\n\n", jobName))
	message.WriteString("Ошибки попыток:\n")
	for _, attemptErr := range attemptErrors {
		message.WriteString(fmt.Sprintf("Попытка %d: %s\n", attemptErr.attempt, attemptErr.err.Error()))
	}

	if alertErr := s.alerterService.SendAlert(ctx, message.String()); alertErr != nil {
		s.log.Warn("failed to send job failure alert",
			"job_name", jobName,
			"error", alertErr,
		)
	}
}
