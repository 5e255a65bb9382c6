// Package workers runs the background jobs of the miniforum server on a
// cron schedule.
// It defines the Worker interface and a Workers aggregate that schedules
// every worker on a shared robfig/cron scheduler.
package workers

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that performs one pass of the job.
//
// Run is called by the scheduler on its own goroutine and must not block
// past the pass it performs.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run() {
//	    // perform one pass
//	}
type Worker interface {
	Run()
}
