package diarize

// UnavailableError signals that diarization could not run at all. The
// caller is expected to inspect for it with errors.As and fall back to
// plain transcription instead of aborting the run.
type UnavailableError struct {
	Reason error
}

func (e *UnavailableError) Error() string {
	if e == nil || e.Reason == nil {
		return "diarization unavailable"
	}
	return "diarization unavailable: " + e.Reason.Error()
}

func (e *UnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Reason
}
