// Package timeout defines centralized timeout constants for AI operations.
package timeout

import "time"

const (
	// ProviderCallTimeout bounds a single provider adapter call. It applies
	// separately to the primary attempt and to the fallback attempt.
	ProviderCallTimeout = 60 * time.Second

	// ContextAssemblyTimeout bounds the whole context-assembly phase,
	// profile fetch included.
	ContextAssemblyTimeout = 10 * time.Second

	// MaxTruncateLength is the maximum length for truncating strings in logs.
	MaxTruncateLength = 200
)

// Truncate shortens s for log output, appending an ellipsis when cut.
func Truncate(s string) string {
	if len(s) <= MaxTruncateLength {
		return s
	}
	return s[:MaxTruncateLength] + "..."
}
