package notify

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/infra/redisstore"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

// pollerRepo is a listing-only fake; the poller never touches the write
// side of the repository.
type pollerRepo struct {
	regs []models.ServiceRegistration
}

var _ domain.Repository = (*pollerRepo)(nil)

func (f *pollerRepo) add(trainerID uint, status string, createdAt time.Time) models.ServiceRegistration {
	reg := models.ServiceRegistration{
		ID:        uint(len(f.regs) + 1),
		TrainerID: trainerID,
		Status:    status,
		CreatedAt: createdAt,
	}
	f.regs = append(f.regs, reg)
	return reg
}

func (f *pollerRepo) ListPendingInWindow(
	_ context.Context,
	trainerID uint,
	after time.Time,
	until time.Time,
) ([]models.ServiceRegistration, error) {

	var out []models.ServiceRegistration
	for _, r := range f.regs {
		if r.TrainerID != trainerID || r.Status != string(domain.StatusPending) {
			continue
		}
		if r.CreatedAt.After(after) && !r.CreatedAt.After(until) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *pollerRepo) ListAllPendingInWindow(
	_ context.Context,
	after time.Time,
	until time.Time,
) ([]models.ServiceRegistration, error) {

	var out []models.ServiceRegistration
	for _, r := range f.regs {
		if r.Status != string(domain.StatusPending) {
			continue
		}
		if r.CreatedAt.After(after) && !r.CreatedAt.After(until) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *pollerRepo) GetService(context.Context, uint) (*models.TrainerService, error) {
	return nil, errors.New("not implemented")
}

func (f *pollerRepo) CreateRegistration(context.Context, *models.ServiceRegistration) error {
	return errors.New("not implemented")
}

func (f *pollerRepo) CreateBatchAtomic(context.Context, uint, []uint, []models.ServiceRegistration) ([]models.ServiceRegistration, error) {
	return nil, errors.New("not implemented")
}

func (f *pollerRepo) WithRegistration(context.Context, uint, func(*models.ServiceRegistration) error) (*models.ServiceRegistration, error) {
	return nil, errors.New("not implemented")
}

func (f *pollerRepo) ListByCustomer(context.Context, uint) ([]models.ServiceRegistration, error) {
	return nil, errors.New("not implemented")
}

func (f *pollerRepo) ListByTrainer(context.Context, uint) ([]models.ServiceRegistration, error) {
	return nil, errors.New("not implemented")
}

func newTestPoller(t *testing.T, repo *pollerRepo) *Poller {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewPoller(repo, redisstore.NewCheckpointStore(rdb), zerolog.Nop())
}

func TestCheckNew_FirstCallReportsEverythingPending(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	repo := &pollerRepo{}
	repo.add(7, string(domain.StatusPending), base.Add(-2*time.Hour))
	repo.add(7, string(domain.StatusPending), base.Add(-time.Hour))
	repo.add(7, string(domain.StatusApproved), base.Add(-time.Hour))
	repo.add(8, string(domain.StatusPending), base.Add(-time.Hour))

	p := newTestPoller(t, repo)
	p.now = func() time.Time { return base }

	regs, err := p.CheckNew(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, regs, 2, "only this trainer's pending registrations")
	assert.True(t, regs[0].CreatedAt.Before(regs[1].CreatedAt), "oldest first")
}

func TestCheckNew_SecondImmediateCallIsEmpty(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	repo := &pollerRepo{}
	repo.add(7, string(domain.StatusPending), base.Add(-time.Hour))

	p := newTestPoller(t, repo)
	p.now = func() time.Time { return base }

	first, err := p.CheckNew(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := p.CheckNew(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Empty(t, second, "the checkpoint only moves forward")
}

func TestCheckNew_ReportsEachRegistrationOnce(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	repo := &pollerRepo{}
	repo.add(7, string(domain.StatusPending), base.Add(-time.Hour))

	p := newTestPoller(t, repo)
	now := base
	p.now = func() time.Time { return now }

	first, err := p.CheckNew(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A booking lands between two polls.
	late := repo.add(7, string(domain.StatusPending), base.Add(time.Minute))
	now = base.Add(2 * time.Minute)

	second, err := p.CheckNew(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, late.ID, second[0].ID)

	now = base.Add(4 * time.Minute)
	third, err := p.CheckNew(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, third)
}

func TestCheckNew_CheckpointsAreIndependentPerProvider(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	repo := &pollerRepo{}
	repo.add(7, string(domain.StatusPending), base.Add(-time.Hour))
	repo.add(8, string(domain.StatusPending), base.Add(-time.Hour))

	p := newTestPoller(t, repo)
	p.now = func() time.Time { return base }

	regs, err := p.CheckNew(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, regs, 1)

	// Trainer 8 has not polled yet; their backlog is untouched.
	regs, err = p.CheckNew(context.Background(), 8)
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestSweep_AdvancesItsOwnCheckpoint(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	repo := &pollerRepo{}
	repo.add(7, string(domain.StatusPending), base.Add(-time.Hour))
	repo.add(8, string(domain.StatusPending), base.Add(-time.Hour))

	p := newTestPoller(t, repo)
	p.now = func() time.Time { return base }

	require.NoError(t, p.sweep(context.Background()))
	require.NoError(t, p.sweep(context.Background()))

	// The sweep's checkpoint is separate: trainer 7's own poll still sees
	// its backlog afterwards.
	regs, err := p.CheckNew(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestRunSweep_StopsOnContextCancel(t *testing.T) {
	p := newTestPoller(t, &pollerRepo{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.RunSweep(ctx, 5*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep loop did not stop on context cancel")
	}
}

func TestRun_DeliversBatchesUntilCanceled(t *testing.T) {
	repo := &pollerRepo{}
	repo.add(7, string(domain.StatusPending), time.Now().Add(-time.Minute))

	p := newTestPoller(t, repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan []models.ServiceRegistration, 1)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, 7, 5*time.Millisecond, func(regs []models.ServiceRegistration) {
			select {
			case got <- regs:
			default:
			}
		})
		close(done)
	}()

	select {
	case regs := <-got:
		assert.Len(t, regs, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("poll loop never delivered the pending registration")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poll loop did not stop on context cancel")
	}
}
