package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusRequested Status = "requested"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"

	// Derivado, nunca persistido.
	StatusInProgress Status = "in_progress"
)

type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
)

// TerminalStatuses: estados sem transição de saída.
var TerminalStatuses = []Status{
	StatusRejected,
	StatusCanceled,
	StatusCompleted,
}

func IsTerminal(s Status) bool {
	for _, t := range TerminalStatuses {
		if s == t {
			return true
		}
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanAccept: só o profissional aceita, e só a partir de "requested".
func CanAccept(current Status, actor Role) error {
	if actor != RoleProfessional {
		return InvalidTransitionError{From: current, Action: "accept", Actor: actor}
	}
	if current != StatusRequested {
		return InvalidTransitionError{From: current, Action: "accept", Actor: actor}
	}
	return nil
}

// CanReject: só o profissional rejeita, e só a partir de "requested".
func CanReject(current Status, actor Role) error {
	if actor != RoleProfessional {
		return InvalidTransitionError{From: current, Action: "reject", Actor: actor}
	}
	if current != StatusRequested {
		return InvalidTransitionError{From: current, Action: "reject", Actor: actor}
	}
	return nil
}

// CanCancel: qualquer parte cancela enquanto a reserva está ativa.
func CanCancel(current Status, actor Role) error {
	if current != StatusRequested && current != StatusAccepted {
		return InvalidTransitionError{From: current, Action: "cancel", Actor: actor}
	}
	return nil
}

// CanComplete: só a partir de "accepted".
func CanComplete(current Status, actor Role) error {
	if current != StatusAccepted {
		return InvalidTransitionError{From: current, Action: "complete", Actor: actor}
	}
	return nil
}

func InitialStatus() Status {
	return StatusRequested
}
