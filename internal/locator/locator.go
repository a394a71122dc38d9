// Package locator translates between editor document locators
// (file:// URIs) and the canonical filesystem paths the document store
// keys on.
package locator

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"go.lsp.dev/uri"
)

// Resolve converts a locator string to a canonical path. ok is false
// when the locator is not a resolvable file reference.
func Resolve(locator string) (string, bool) {
	parsed, err := url.Parse(locator)
	if err != nil {
		return "", false
	}
	if parsed.Scheme != "file" {
		return "", false
	}
	path := parsed.Path
	if path == "" {
		return "", false
	}
	// On Windows, file URIs look like file:///C:/path, so Path is /C:/path.
	if runtime.GOOS == "windows" && len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return Canonical(filepath.FromSlash(path)), true
}

// Build converts a filesystem path to a file URI locator.
func Build(path string) string {
	return string(uri.File(path))
}

// Canonical normalizes a path for use as a store key: absolute-ish
// cleaning plus case-preserving slash normalization.
func Canonical(path string) string {
	return filepath.Clean(strings.TrimSpace(path))
}
