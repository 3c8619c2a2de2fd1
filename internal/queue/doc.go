// Package queue persists dubbing jobs in SQLite and hands them to workers.
// Jobs move queued -> processing -> completed or failed; progress only ever
// moves forward. The database also lets the daemon fail jobs that were
// in flight when a previous run stopped.
package queue
