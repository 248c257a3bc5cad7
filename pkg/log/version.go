package log

// Version information for the log module.
const (
	// Version is the current version of the log module.
	Version = "1.1.0"

	// MinCompatibleVersion is the oldest version whose Field helpers
	// (Duration, Any) callers may rely on.
	MinCompatibleVersion = "1.1.0"
)
