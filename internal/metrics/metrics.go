package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	registrationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trainer_scheduler",
			Name:      "registrations_created_total",
			Help:      "Count of service registrations created, by booking path.",
		},
		[]string{"path"},
	)

	registrationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trainer_scheduler",
			Name:      "registration_transitions_total",
			Help:      "Count of registration status transitions, by target status.",
		},
		[]string{"to"},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "trainer_scheduler",
			Name:      "slot_conflicts_total",
			Help:      "Count of rejected slot writes due to overlap.",
		},
	)

	pollNewPending = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "trainer_scheduler",
			Name:      "poll_new_pending_total",
			Help:      "Count of pending registrations surfaced by the notification poll.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			registrationsCreated,
			registrationTransitions,
			slotConflicts,
			pollNewPending,
		)
	})
}

func IncRegistrationsCreated(path string, n int) {
	registrationsCreated.WithLabelValues(path).Add(float64(n))
}

func IncTransition(to string) {
	registrationTransitions.WithLabelValues(to).Inc()
}

func IncSlotConflict() {
	slotConflicts.Inc()
}

func AddPollNewPending(n int) {
	pollNewPending.Add(float64(n))
}
