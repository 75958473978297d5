package usecase

// Recorder receives domain events worth counting. Implementations must be safe for concurrent use.
type Recorder interface {
	PredictionSubmitted(mode, outcome string)
	PredictionsReset(mode string, removed int)
	GateEvaluated(mode string, allowed bool)
}

const (
	submitOutcomeCreated   = "created"
	submitOutcomeUpdated   = "updated"
	submitOutcomeUnchanged = "unchanged"
	submitOutcomeRejected  = "rejected"
)

type noopRecorder struct{}

func (noopRecorder) PredictionSubmitted(string, string) {}
func (noopRecorder) PredictionsReset(string, int)       {}
func (noopRecorder) GateEvaluated(string, bool)         {}
