package checkout

// AttemptStatus tracks a checkout attempt through its lifecycle. Failed is
// terminal for the attempt; a new attempt starts over from Idle.
type AttemptStatus string

const (
	StatusIdle       AttemptStatus = "IDLE"
	StatusValidating AttemptStatus = "VALIDATING"
	StatusSubmitting AttemptStatus = "SUBMITTING"
	StatusSucceeded  AttemptStatus = "SUCCEEDED"
	StatusFailed     AttemptStatus = "FAILED"
)

func (s AttemptStatus) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String representation (for logging)
func (s AttemptStatus) String() string {
	return string(s)
}
