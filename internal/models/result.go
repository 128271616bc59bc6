package models

// StepResult is produced by every guarded step and consumed immediately by the sequencer
type StepResult struct {
	Succeeded         bool
	StepName          string
	DiagnosticMessage string
	ScreenshotTag     string
}

// Passed builds a successful StepResult
func Passed(step string) StepResult {
	return StepResult{Succeeded: true, StepName: step}
}

// AvailabilityVerdict is the outcome of a console readiness poll
type AvailabilityVerdict struct {
	Available          bool
	ElapsedPollSeconds float64
}

// SequenceOutcome is the terminal artifact of a login sequence run.
// It is returned by value and never mutated after creation.
type SequenceOutcome struct {
	Success       bool
	FailedStep    string
	ScreenshotTag string
	TraceID       string
}
