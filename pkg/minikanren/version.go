package minikanren

// Version represents the current version of the kanrencore relational
// engine.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
