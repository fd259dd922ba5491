package main

// Exit codes shared by all valign commands.
const (
	ExitSuccess       = 0 // Success
	ExitError         = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError   = 2 // Workspace or configuration error
	ExitEncoderError  = 3 // Embedding encoder not available
	ExitRegistryError = 4 // Vector registry missing or stale
	ExitVeto          = 5 // Action failed the acceptability gate
)
