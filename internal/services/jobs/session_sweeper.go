package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/chungjai123/food-bot/internal/usecases/intake"
	"github.com/chungjai123/food-bot/internal/usecases/pending"
)

const sessionSweeperName = "session-sweeper"

// Purger кэш с ручной очисткой истёкших ключей (in-memory)
type Purger interface {
	Purge() int
}

// SessionSweeper удаляет простаивающие диалоги /setprofile и неподтверждённые анализы
type SessionSweeper struct {
	intake   *intake.Machine
	pending  *pending.Registry
	cache    Purger
	ttl      time.Duration
	interval time.Duration
	log      *slog.Logger
}

// NewSessionSweeper cache может быть nil (Redis чистит TTL сам)
func NewSessionSweeper(
	intakeMachine *intake.Machine,
	pendingRegistry *pending.Registry,
	cache Purger,
	ttl time.Duration,
	interval time.Duration,
	log *slog.Logger,
) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{
		intake:   intakeMachine,
		pending:  pendingRegistry,
		cache:    cache,
		ttl:      ttl,
		interval: interval,
		log:      log,
	}
}

func (j *SessionSweeper) Name() string {
	return sessionSweeperName
}

// NextRun каждые interval
func (j *SessionSweeper) NextRun(now time.Time) time.Time {
	return now.Add(j.interval)
}

// Run при ttl <= 0 сессии не трогает, чистит только кэш
func (j *SessionSweeper) Run(ctx context.Context) error {
	now := time.Now()

	sessions := j.intake.Sweep(now, j.ttl)
	analyses := j.pending.Sweep(now, j.ttl)

	purged := 0
	if j.cache != nil {
		purged = j.cache.Purge()
	}

	if sessions > 0 || analyses > 0 {
		j.log.Info("idle sessions expired",
			"intake_sessions", sessions,
			"pending_analyses", analyses,
			"ttl", j.ttl,
		)
	}
	if purged > 0 {
		j.log.Debug("expired cache keys purged", "count", purged)
	}
	return ctx.Err()
}
