package registration

// ===============================
// Registration Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// transitions lists every legal status change. Anything absent here is
// rejected, which makes the terminal states (rejected, completed, canceled)
// closed by construction.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCanceled},
	StatusApproved: {StatusCompleted, StatusCanceled},
}

func InitialStatus() Status {
	return StatusPending
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the given status.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}
