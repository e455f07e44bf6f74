// Package state shares backend health between the poller and the UI.
//
// The health poller writes with Update from its own goroutine; the Bubble Tea
// model reads with Snapshot on every tick. Store is the only value in lectio
// touched from more than one goroutine, so it is the only one with a lock.
// Snapshots are plain copies, so callers can hold on to them freely.
//
// A single failed probe is shown as a warning. Two or more in a row mark the
// backend offline until a probe succeeds again.
package state
