// Package parallel provides the fork-join worker pool behind pixproc's
// row engine.
//
// A [WorkerPool] owns a fixed set of goroutines, each with its own queue.
// Idle workers steal from their neighbours. [WorkerPool.ForRows] splits a
// half-open row range into contiguous [Band] values and runs one band per
// work item, so every row is handled by exactly one goroutine.
//
// Thread safety: WorkerPool is safe for concurrent use. Work items must not
// submit further work to the pool they run on.
package parallel
