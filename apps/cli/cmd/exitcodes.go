package cmd

// Exit codes for the apiprobe CLI
const (
	// ExitSuccess indicates the request or all checks succeeded
	ExitSuccess = 0

	// ExitCheckFailure indicates one or more diagnostic checks failed
	ExitCheckFailure = 1

	// ExitRequestError indicates the request could not be built or sent
	ExitRequestError = 2

	// ExitConfigError indicates a configuration or request-file error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
