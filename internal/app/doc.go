// Package app is the composition root for lectio.
//
// # Overview
//
// Setup loads configuration, opens the JSON log file and builds the backend
// client. Both the TUI (Run) and the headless cobra commands start from the
// resulting Env so they share the same client, logger and preferences.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> Setup()             Config, logger, API client, prefs
//	       ├─────> Env.NewSource()     Modal or Drive picker
//	       ├─────> Env.NewController() Selection, form and pipeline owner
//	       ├─────> StartPoller()       Background health probe
//	       └─────> ui.Run()            Start TUI (blocks)
//
// # Polling Behavior
//
// The poller probes the backend health endpoint at the configured interval
// (default 15 seconds) and records latency and failures in a state.Store.
// Consecutive failures double the delay up to two minutes. The UI reads
// snapshots from the store on its own tick.
//
// # Error Handling
//
// Invalid configuration and client construction failures are returned from
// Run. Health probe failures are logged and surface as an offline badge; they
// never stop the UI.
package app
