// Package controller owns the file selection and submission state.
//
// A Controller holds the selected files, the form fields and the submission
// pipeline, and talks to one pluggable source adapter (the backend checklist
// or the Drive picker). It is driven from a single event loop, so it carries
// no locks. Anything that blocks on the network is split in two: a method that
// captures what the request needs and returns a function to run elsewhere, and
// a method that folds the answer back in.
//
// Every mutator leaves the selection, its file ids and the form gate
// consistent before returning.
package controller
