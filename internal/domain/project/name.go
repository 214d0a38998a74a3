package project

import (
	"path/filepath"
	"strings"
)

// NormalizeName strips the host's path notation (":app") from a name.
func NormalizeName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), ":")
}

// ValidateName checks that name can serve as a single directory element.
func ValidateName(name string) error {
	switch {
	case name == "":
		return NewInvalidProjectNameError(name, "project name is empty")
	case name == "." || name == "..":
		return NewInvalidProjectNameError(name, "project name cannot be a relative path element")
	case strings.ContainsAny(name, `/\:`) || strings.ContainsRune(name, filepath.Separator):
		return NewInvalidProjectNameError(name, "project name cannot contain path separators")
	}
	return nil
}
