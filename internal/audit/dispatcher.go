package audit

import "github.com/rs/zerolog"

type Event struct {
	TrainerID uint
	UserID    *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// eventWriter persists a single audit event; *Logger is the gorm-backed
// production implementation.
type eventWriter interface {
	Log(trainerID uint, userID *uint, action, entity string, entityID *uint, metadata any) error
}

// Dispatcher decouples audit writes from request handling: events go through
// a buffered queue drained by a single worker, and a full queue drops the
// event rather than blocking the API.
type Dispatcher struct {
	logger eventWriter
	log    zerolog.Logger
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.logger.Log(
			ev.TrainerID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// queue full: drop the event, never break the API
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and blocks until the worker has written every
// queued event. All producers must have stopped dispatching first; in main
// the HTTP server is shut down before Close runs.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
