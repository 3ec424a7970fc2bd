package flow

// Stage is the part of a run that failed
type Stage string

// Stages of a run
const (
	StageValidation Stage = "validation"
	StageListing    Stage = "listing"
	StageRender     Stage = "render"
	StageArchive    Stage = "archive"
)

// StageError tags a fatal error with the stage it came from
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
