// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task or category, empty title).
	UserError = 1

	// ConfigError indicates a configuration error (no API base URL, bad config.toml).
	ConfigError = 2

	// BackendError indicates a remote API or network error.
	BackendError = 3
)
