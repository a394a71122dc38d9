package config

import "github.com/gkampitakis/ciinfo"

// WorkspaceScanEnabled returns whether the workspace root should be
// preloaded on initialize based on the configured mode.
// "on" → true, "off" → false, "auto" → enabled when not running in CI.
func WorkspaceScanEnabled(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default: // "auto"
		return !ciinfo.IsCI
	}
}

// CIName returns the detected CI provider name, or empty string if not in CI.
func CIName() string {
	if !ciinfo.IsCI {
		return ""
	}
	return ciinfo.Name
}
