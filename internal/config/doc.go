// Package config loads the lectio client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lectio/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//  5. LECTIO_SERVER_URL, LECTIO_SESSION_COOKIE and LECTIO_DEVELOPER_KEY
//     override the file when set
//
// # TOML Format
//
//	server_url = "https://guides.example.org"
//	session_cookie = "..."        # value of the backend's session cookie
//	cookie_name = "session"
//	source = "picker"             # "modal" (backend list) or "picker" (Drive)
//	developer_key = "AIza..."     # Google API key, picker only
//	picker_limit = 10
//	request_timeout = 10          # seconds
//	generate_timeout = 660        # seconds; generation waits on the model
//	health_interval = 15          # seconds
//	log_dir = "~/.local/state/lectio"
//	log_level = "info"
//
// Every field is optional. Tilde expansion is performed on log_dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, and values that cannot work (an unknown
// source or log level). A missing file is not an error.
package config
