package version

import (
	"runtime/debug"
)

var version = "dev"

// Version returns the current version string
func Version() string {
	tsVersion := TreeSitterVersion()
	if tsVersion != "" {
		return version + " (tree-sitter " + tsVersion + ")"
	}
	return version
}

// TreeSitterVersion returns the linked go-tree-sitter version from build info.
func TreeSitterVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/smacker/go-tree-sitter" {
			return dep.Version
		}
	}
	return ""
}
