package progress

// Estimator computes an ETA from a running mean of per-unit processing
// time. The mean is only trusted once two units have been observed.
type Estimator struct {
	count int
	mean  float64
}

// Observe records the elapsed time of one processed unit, in seconds.
func (e *Estimator) Observe(seconds float64) {
	e.count++
	e.mean += (seconds - e.mean) / float64(e.count)
}

// ETA returns the estimated remaining time in seconds for the given
// number of unprocessed units. ok is false until at least two units have
// been observed.
func (e *Estimator) ETA(remaining int) (seconds float64, ok bool) {
	if e.count < 2 {
		return 0, false
	}
	return e.mean * float64(remaining), true
}
