// Package secrets resolves sensitive configuration values, preferring
// file-backed sources (docker/k8s secrets) over inline values.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a sensitive value comes from. File takes
// precedence over Value when both are set.
type Source struct {
	// Name gives error messages context ("database url", "redis url").
	Name  string
	Value string
	File  string
}

// Load resolves and trims the value. An error is returned when neither
// File nor Value yield a usable string.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			return value, nil
		}
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}

	if value := strings.TrimSpace(src.Value); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%s is not configured", name)
}
