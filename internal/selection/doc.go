// Package selection holds the set of transcripts chosen for a study guide.
//
// The selection is ordered, unique by Drive file id, capped at MaxFiles and
// re-sorted by name whenever it is replaced. Display derives the chip list
// from the state on every call, so there is no separate view copy to keep in
// sync.
package selection
