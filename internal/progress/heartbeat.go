package progress

import (
	"math"
	"sync"
	"time"
)

const (
	heartbeatInterval = 1500 * time.Millisecond
	heartbeatStart    = 0.05
	heartbeatStep     = 0.008
	heartbeatCap      = 0.13
)

// StartHeartbeat emits synthetic loading_model events while a blocking
// model load runs, so consumers never see a stalled stream. Reported
// progress creeps up from 0.05 and saturates at 0.13. The returned stop
// function is idempotent and must be called (typically deferred) whether
// the load succeeded or not.
func StartHeartbeat(r *Reporter, detail string) (stop func()) {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		p := heartbeatStart
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p = math.Min(p+heartbeatStep, heartbeatCap)
				r.Report(p, StepLoadingModel, detail)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
