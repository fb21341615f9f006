package job

// StateType is the state enum for job
type StateType = string

// define status enum
var (
	StatePending  StateType = "pending"
	StatePlacing  StateType = "placing"
	StateRefining StateType = "refining"
	StateScoring  StateType = "scoring"

	// done status
	StateDone StateType = "done"

	// fail status
	StateFail StateType = "fail"
)

// IsTerminal reports whether the job will never move again.
func IsTerminal(s StateType) bool {
	return s == StateDone || s == StateFail
}
