// Package guideapi provides an HTTP client for the study guide generator backend.
//
// # Overview
//
// The backend owns the Google session and does the heavy lifting: it lists the
// user's Drive transcripts, hands out a short-lived access token for the Drive
// picker, and turns a set of transcripts into a study guide saved back to Drive.
// This package is the thin client for those endpoints.
//
// # API Endpoints
//
//   - GET /api/list-files: Drive text files with folder names
//   - GET /api/access-token: OAuth access token for the Drive picker
//   - POST /api/generate: multipart form, returns the saved guide's link
//   - GET /health: liveness probe
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Send the configured session cookie (the backend is cookie authenticated)
//   - Set Accept, User-Agent and a fresh X-Request-ID header
//   - Use a short timeout, except generation which waits for the model
//
// # Error Handling
//
// Failures are typed so callers can pick the right message:
//
//   - *NetworkError: the request never got an answer
//   - *ServerError: non-2xx status or success=false, with the backend's detail
//   - *AuthError: the access token could not be obtained
//
// FastAPI reports errors as {"detail": "..."}; Detail(err) returns that text.
package guideapi
