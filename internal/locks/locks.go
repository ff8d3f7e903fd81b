package locks

import "sync"

// TrainerLocks serializes check-then-act sequences per trainer. Slot writes
// and batch creation for one trainer must not interleave; different trainers
// proceed in parallel.
type TrainerLocks struct {
	mu sync.Map // trainerID -> *sync.Mutex
}

func NewTrainerLocks() *TrainerLocks {
	return &TrainerLocks{}
}

func (l *TrainerLocks) lock(trainerID uint) *sync.Mutex {
	m, _ := l.mu.LoadOrStore(trainerID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

func (l *TrainerLocks) Lock(trainerID uint) {
	l.lock(trainerID).Lock()
}

func (l *TrainerLocks) Unlock(trainerID uint) {
	l.lock(trainerID).Unlock()
}
