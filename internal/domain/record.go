package domain

// DisputeState tracks where a recorded transaction is in the dispute cycle.
type DisputeState uint8

const (
	StateExecuted DisputeState = iota
	StateDisputed
	StateResolved
	StateChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case StateExecuted:
		return "executed"
	case StateDisputed:
		return "disputed"
	case StateResolved:
		return "resolved"
	case StateChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further dispute cycle transition is possible.
func (s DisputeState) Terminal() bool {
	return s == StateResolved || s == StateChargedBack
}

// Record is a stored deposit or withdrawal together with its dispute state.
type Record struct {
	Entry Entry
	State DisputeState
}

// Deposit returns the underlying deposit, if the record holds one.
func (r *Record) Deposit() (Deposit, bool) {
	d, ok := r.Entry.(Deposit)
	return d, ok
}
