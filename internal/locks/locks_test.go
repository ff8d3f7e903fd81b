package locks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrainerLocks_SerializePerTrainer(t *testing.T) {
	l := NewTrainerLocks()

	const workers = 16
	const rounds = 100

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				l.Lock(7)
				counter++
				l.Unlock(7)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*rounds, counter)
}

func TestTrainerLocks_DistinctTrainersDoNotBlock(t *testing.T) {
	l := NewTrainerLocks()

	l.Lock(7)
	done := make(chan struct{})
	go func() {
		l.Lock(8)
		l.Unlock(8)
		close(done)
	}()
	<-done
	l.Unlock(7)
}
