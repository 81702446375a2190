// Package job runs background work off the request path.
//
// A Runner owns a bounded queue and a fixed pool of workers; work that
// cannot be queued is rejected rather than blocking the caller. A
// Scheduler triggers named periodic jobs on their own tickers. Neither is
// a process-wide singleton: both are constructed and started by whichever
// process owns them.
package job
