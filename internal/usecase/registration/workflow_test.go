package registration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

func seedPending(repo *fakeRegRepo, trainerID, customerID uint) models.ServiceRegistration {
	return repo.seedReg(models.ServiceRegistration{
		CustomerID:       customerID,
		TrainerID:        trainerID,
		ServiceID:        10,
		NumberOfSessions: 1,
		TotalPrice:       50,
	})
}

func TestApproveRegistration(t *testing.T) {
	repo := newFakeRegRepo()
	reg := seedPending(repo, 7, 100)
	uc := NewApprove(repo, &fakeAuditor{})

	out, err := uc.Execute(context.Background(), 7, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), out.Status)
	assert.Equal(t, string(domain.StatusApproved), repo.regs[reg.ID].Status)
}

func TestApproveRegistration_WrongTrainer(t *testing.T) {
	repo := newFakeRegRepo()
	reg := seedPending(repo, 7, 100)
	uc := NewApprove(repo, &fakeAuditor{})

	_, err := uc.Execute(context.Background(), 8, reg.ID)
	require.Error(t, err)
	assert.True(t, bookingerr.IsKind(err, bookingerr.KindNotFound),
		"another trainer's registration looks absent")
	assert.Equal(t, string(domain.StatusPending), repo.regs[reg.ID].Status)
}

func TestApproveRegistration_NotFound(t *testing.T) {
	uc := NewApprove(newFakeRegRepo(), &fakeAuditor{})

	_, err := uc.Execute(context.Background(), 7, 42)
	require.Error(t, err)
	assert.True(t, bookingerr.IsKind(err, bookingerr.KindNotFound))
}

func TestRejectRegistration(t *testing.T) {
	repo := newFakeRegRepo()
	reg := seedPending(repo, 7, 100)
	uc := NewReject(repo, &fakeAuditor{})

	out, err := uc.Execute(context.Background(), 7, reg.ID, "slot no longer offered")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), out.Status)
	assert.Equal(t, "slot no longer offered", out.RejectionReason)
}

func TestRejectRegistration_ReasonRequired(t *testing.T) {
	repo := newFakeRegRepo()
	reg := seedPending(repo, 7, 100)
	uc := NewReject(repo, &fakeAuditor{})

	_, err := uc.Execute(context.Background(), 7, reg.ID, "")
	require.Error(t, err)
	assert.True(t, bookingerr.HasCode(err, "missing_rejection_reason"))
	assert.Equal(t, string(domain.StatusPending), repo.regs[reg.ID].Status)
}

func TestCancelRegistration_ByOwner(t *testing.T) {
	repo := newFakeRegRepo()
	reg := seedPending(repo, 7, 100)
	uc := NewCancel(repo, &fakeAuditor{})

	out, err := uc.Execute(context.Background(), 100, false, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), out.Status)
}

func TestCancelRegistration_ByStranger(t *testing.T) {
	repo := newFakeRegRepo()
	reg := seedPending(repo, 7, 100)
	uc := NewCancel(repo, &fakeAuditor{})

	_, err := uc.Execute(context.Background(), 200, false, reg.ID)
	require.Error(t, err)
	assert.True(t, bookingerr.IsKind(err, bookingerr.KindNotFound))
	assert.Equal(t, string(domain.StatusPending), repo.regs[reg.ID].Status)
}

func TestCancelRegistration_ByAdmin(t *testing.T) {
	repo := newFakeRegRepo()
	reg := seedPending(repo, 7, 100)
	uc := NewCancel(repo, &fakeAuditor{})

	out, err := uc.Execute(context.Background(), 1, true, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), out.Status)
}

func TestCancelRegistration_TerminalStays(t *testing.T) {
	repo := newFakeRegRepo()
	reg := repo.seedReg(models.ServiceRegistration{
		CustomerID: 100, TrainerID: 7,
		Status: string(domain.StatusCompleted), NumberOfSessions: 1,
	})
	uc := NewCancel(repo, &fakeAuditor{})

	_, err := uc.Execute(context.Background(), 100, false, reg.ID)
	require.Error(t, err)
	assert.True(t, bookingerr.IsKind(err, bookingerr.KindInvalidTransition))
	assert.Equal(t, string(domain.StatusCompleted), repo.regs[reg.ID].Status)
}

func TestCompleteRegistration(t *testing.T) {
	repo := newFakeRegRepo()
	reg := repo.seedReg(models.ServiceRegistration{
		CustomerID: 100, TrainerID: 7,
		Status: string(domain.StatusApproved), NumberOfSessions: 10, CompletedSessions: 4,
	})
	uc := NewComplete(repo, &fakeAuditor{})

	out, err := uc.Execute(context.Background(), 7, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), out.Status)
	assert.Equal(t, 10, out.CompletedSessions, "completion fills the session counter")
}

func TestCompleteRegistration_PendingRefused(t *testing.T) {
	repo := newFakeRegRepo()
	reg := seedPending(repo, 7, 100)
	uc := NewComplete(repo, &fakeAuditor{})

	_, err := uc.Execute(context.Background(), 7, reg.ID)
	require.Error(t, err)
	assert.True(t, bookingerr.IsKind(err, bookingerr.KindInvalidTransition))
}

func TestRecordProgressRegistration(t *testing.T) {
	repo := newFakeRegRepo()
	reg := repo.seedReg(models.ServiceRegistration{
		CustomerID: 100, TrainerID: 7,
		Status: string(domain.StatusApproved), NumberOfSessions: 10,
	})
	uc := NewRecordProgress(repo, &fakeAuditor{})

	out, err := uc.Execute(context.Background(), 7, reg.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, out.CompletedSessions)
	assert.Equal(t, string(domain.StatusApproved), out.Status)

	_, err = uc.Execute(context.Background(), 7, reg.ID, 11)
	require.Error(t, err)
	assert.True(t, bookingerr.HasCode(err, "sessions_out_of_range"))
	assert.Equal(t, 6, repo.regs[reg.ID].CompletedSessions)
}

// Registrations from one batch move independently: rejecting one leaves
// its siblings pending.
func TestBatchSiblingsAreIndependent(t *testing.T) {
	repo := newFakeRegRepo()
	seedCatalog(repo)

	created, err := newBatchUC(repo).Execute(context.Background(), CreateBatchInput{
		CustomerID: 100,
		TrainerID:  7,
		ServiceID:  10,
		StartDate:  tomorrow(),
		SlotIDs:    []uint{1, 2},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	_, err = NewReject(repo, &fakeAuditor{}).Execute(context.Background(), 7, created[0].ID, "conflict with my own training")
	require.NoError(t, err)
	_, err = NewApprove(repo, &fakeAuditor{}).Execute(context.Background(), 7, created[1].ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), repo.regs[created[0].ID].Status)
	assert.Equal(t, string(domain.StatusApproved), repo.regs[created[1].ID].Status)
}

func TestListForCustomer_EmptyIsNotNil(t *testing.T) {
	uc := NewList(newFakeRegRepo())

	regs, err := uc.ForCustomer(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, regs)
	assert.Empty(t, regs)
}

func TestListForTrainer(t *testing.T) {
	repo := newFakeRegRepo()
	seedPending(repo, 7, 100)
	seedPending(repo, 7, 101)
	seedPending(repo, 8, 100)
	uc := NewList(repo)

	regs, err := uc.ForTrainer(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, regs, 2)
}
