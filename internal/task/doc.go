// Package task isolates the blocking scoring engine call from the HTTP
// serving goroutines. A small pool of dedicated workers consumes scoring
// jobs from a bounded queue; callers await each job's result through a
// per-job channel, so a stalled engine call can never hold up the
// scheduling of unrelated requests.
package task
