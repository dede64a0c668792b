package asr

import "errors"

// ModelLoadError marks a failed model load. Fatal for the run.
type ModelLoadError struct {
	Err error
}

func (e *ModelLoadError) Error() string {
	if e == nil || e.Err == nil {
		return "model load failed"
	}
	return "model load failed: " + e.Err.Error()
}

func (e *ModelLoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsModelLoadError(err error) bool {
	var loadErr *ModelLoadError
	return errors.As(err, &loadErr)
}

// InferenceError marks a failed recognition call for one unit. The
// pipeline downgrades it to a warning and continues; one bad chunk never
// aborts the run.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	if e == nil || e.Err == nil {
		return "inference failed"
	}
	return "inference failed: " + e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
