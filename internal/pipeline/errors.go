package pipeline

// InputError marks invalid input: a missing file or an unsupported
// extension. Fatal for the run.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }
