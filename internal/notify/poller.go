package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/metrics"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

// DefaultInterval is how often a provider-side loop re-polls by default.
const DefaultInterval = 2 * time.Minute

// sweepCheckpointID is the reserved checkpoint slot for the server-wide
// sweep. Real trainer ids start at 1, so it never collides.
const sweepCheckpointID = 0

// CheckpointStore holds each provider's last-checked timestamp. The bool
// result of LastChecked distinguishes "never checked" from a zero time.
type CheckpointStore interface {
	LastChecked(ctx context.Context, providerID uint) (time.Time, bool, error)
	SetLastChecked(ctx context.Context, providerID uint, t time.Time) error
}

// Poller surfaces newly created pending registrations to a provider by
// diffing against a stored checkpoint. There is no push channel; callers
// drive the polling cadence.
type Poller struct {
	repo  domain.Repository
	store CheckpointStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewPoller(repo domain.Repository, store CheckpointStore, log zerolog.Logger) *Poller {
	return &Poller{
		repo:  repo,
		store: store,
		log:   log.With().Str("component", "notify").Logger(),
		now:   time.Now,
	}
}

// CheckNew returns pending registrations created since the provider's last
// check and advances the checkpoint. The checkpoint only moves forward, so
// an immediate second call reports nothing new. The very first call reports
// everything currently pending.
func (p *Poller) CheckNew(
	ctx context.Context,
	providerID uint,
) ([]models.ServiceRegistration, error) {

	until := p.now()

	last, _, err := p.store.LastChecked(ctx, providerID)
	if err != nil {
		return nil, err
	}

	regs, err := p.repo.ListPendingInWindow(ctx, providerID, last, until)
	if err != nil {
		return nil, err
	}

	if err := p.store.SetLastChecked(ctx, providerID, until); err != nil {
		return nil, err
	}

	if regs == nil {
		regs = []models.ServiceRegistration{}
	}
	if len(regs) > 0 {
		metrics.AddPollNewPending(len(regs))
	}

	return regs, nil
}

// Run polls on a fixed interval until ctx is done, invoking fn for each
// non-empty result. Transient errors are logged and the loop keeps going:
// CheckNew is idempotent, so a failed tick is safely retried by the next.
func (p *Poller) Run(
	ctx context.Context,
	providerID uint,
	interval time.Duration,
	fn func([]models.ServiceRegistration),
) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			regs, err := p.CheckNew(ctx, providerID)
			if err != nil {
				p.log.Error().Err(err).Uint("provider_id", providerID).Msg("poll failed")
				continue
			}
			if len(regs) > 0 {
				fn(regs)
			}
		}
	}
}

// RunSweep logs every newly created pending registration server-wide on a
// fixed interval until ctx is done. It keeps its own checkpoint under the
// reserved id, so a restart never re-logs a registration; per-trainer
// CheckNew checkpoints are untouched.
func (p *Poller) RunSweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.sweep(ctx); err != nil {
				p.log.Error().Err(err).Msg("notification sweep failed")
			}
		}
	}
}

func (p *Poller) sweep(ctx context.Context) error {
	until := p.now()

	last, _, err := p.store.LastChecked(ctx, sweepCheckpointID)
	if err != nil {
		return err
	}

	regs, err := p.repo.ListAllPendingInWindow(ctx, last, until)
	if err != nil {
		return err
	}

	if err := p.store.SetLastChecked(ctx, sweepCheckpointID, until); err != nil {
		return err
	}

	for _, reg := range regs {
		p.log.Info().
			Uint("registration_id", reg.ID).
			Uint("trainer_id", reg.TrainerID).
			Str("batch_id", reg.BatchID).
			Msg("new pending registration")
	}

	return nil
}
