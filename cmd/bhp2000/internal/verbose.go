package internal

var verbose bool

// SetVerbose records the global --verbose flag value.
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose reports whether --verbose was set.
func IsVerbose() bool {
	return verbose
}
