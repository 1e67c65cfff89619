// Package validation provides input validators for the analyze request,
// preventing path traversal in file lists and keeping identifiers
// restricted to a safe character set.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// repoIDPattern restricts repo_id to alphanumerics, hyphens, and
// underscores, matching the reference service's gateway validation.
var repoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// suspiciousPathChars rejects characters that have no business in a
// relative source path.
var suspiciousPathChars = regexp.MustCompile(`[<>:"|?*]`)

const (
	MaxChangeDescriptionLen = 1000
	MaxAffectedFiles        = 100
	MaxRepoIDLen            = 100
)

// ValidateRepoID checks repo_id against the allowed character set and
// length bound.
func ValidateRepoID(repoID string) error {
	if repoID == "" {
		return fmt.Errorf("repo_id cannot be empty")
	}
	if len(repoID) > MaxRepoIDLen {
		return fmt.Errorf("repo_id exceeds %d characters", MaxRepoIDLen)
	}
	if !repoIDPattern.MatchString(repoID) {
		return fmt.Errorf("invalid repo_id format: %q (must be alphanumeric, hyphens, or underscores)", repoID)
	}
	return nil
}

// ValidateFilePath rejects directory traversal and path strings carrying
// characters that are never legitimate in a repository-relative path.
func ValidateFilePath(path string) error {
	if strings.Contains(path, "..") || strings.HasPrefix(path, "/") {
		return fmt.Errorf("invalid file path: %q", path)
	}
	if suspiciousPathChars.MatchString(path) {
		return fmt.Errorf("file path contains invalid characters: %q", path)
	}
	return nil
}

// ValidateFilePaths validates every entry of paths, enforcing the
// affected_files cap and collecting every invalid path into one error.
func ValidateFilePaths(paths []string) error {
	if len(paths) > MaxAffectedFiles {
		return fmt.Errorf("affected_files exceeds %d entries", MaxAffectedFiles)
	}
	var invalid []string
	for _, p := range paths {
		if err := ValidateFilePath(p); err != nil {
			invalid = append(invalid, p)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid file paths: %v", invalid)
	}
	return nil
}

// ValidateChangeDescription enforces the non-empty, length-bounded
// description field.
func ValidateChangeDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return fmt.Errorf("change_description cannot be empty")
	}
	if len(description) > MaxChangeDescriptionLen {
		return fmt.Errorf("change_description exceeds %d characters", MaxChangeDescriptionLen)
	}
	return nil
}
