// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// ConfigDirEnv overrides the configuration directory on every platform.
const ConfigDirEnv = "SANCTIONS_NORMALIZER_CONFIG_DIR"

const appDir = "sanctions-normalizer"

// GetConfigDir returns the sanctions-normalizer configuration directory.
// Uses APPDATA on Windows and the XDG base directory elsewhere, falling
// back to a dot directory in the user's home.
func GetConfigDir() string {
	// Check for explicit override first (works on all platforms)
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDir)
		}
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			return filepath.Join(profile, "."+appDir)
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appDir
	}
	return filepath.Join(home, "."+appDir)
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// ValidatePath validates a path for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return nil // Empty path is valid
	}

	if runtime.GOOS == "windows" {
		return validateWindowsPath(path)
	}

	return validateUnixPath(path)
}

// validateWindowsPath validates a Windows path
func validateWindowsPath(path string) error {
	invalidChars := `<>:"|?*`
	for i, char := range path {
		if !strings.ContainsRune(invalidChars, char) {
			continue
		}
		// Skip colon if it's part of a drive letter (position 1: C:)
		if char == ':' && i == 1 {
			continue
		}
		return &PathValidationError{
			Path:   path,
			Reason: "contains invalid character: " + string(char),
		}
	}

	if len(path) > 32767 {
		return &PathValidationError{
			Path:   path,
			Reason: "path exceeds maximum length of 32,767 characters",
		}
	}

	return nil
}

// validateUnixPath validates a Unix path
func validateUnixPath(path string) error {
	if strings.ContainsRune(path, 0) {
		return &PathValidationError{
			Path:   path,
			Reason: "contains null byte",
		}
	}
	return nil
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}

// SkippedFile is a candidate input that was not collected.
type SkippedFile struct {
	Path   string
	Reason string
}

// Collection holds the files found for one --file argument.
type Collection struct {
	Files   []string
	Skipped []SkippedFile
}

// CollectOptions controls CollectFiles.
type CollectOptions struct {
	Recursive bool
	// Exclude holds glob patterns matched against both the base name and
	// the full path of each candidate.
	Exclude []string
	// Accept filters directory and glob members; nil accepts everything.
	// A file named explicitly is always collected.
	Accept func(path string) bool
}

// CollectFiles expands input into the list of files to process. Input may be
// a regular file, a directory, or a glob pattern. Results are sorted so runs
// over the same tree are reproducible.
func CollectFiles(input string, opts CollectOptions) (*Collection, error) {
	if err := ValidatePath(input); err != nil {
		return nil, err
	}
	expanded := ExpandHome(input)
	result := &Collection{}

	info, err := os.Stat(expanded)
	if err != nil {
		if !hasGlobMeta(expanded) {
			return nil, fmt.Errorf("path does not exist or is not accessible: %w", err)
		}
		matches, err := filepath.Glob(expanded)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", input)
		}
		for _, match := range matches {
			st, err := os.Stat(match)
			if err != nil || !st.Mode().IsRegular() {
				continue
			}
			result.add(filepath.Clean(match), opts)
		}
		sort.Strings(result.Files)
		return result, nil
	}

	if info.Mode().IsRegular() {
		result.Files = append(result.Files, filepath.Clean(expanded))
		return result, nil
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is neither a regular file nor a directory: %s", input)
	}

	root := filepath.Clean(expanded)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Reason: err.Error()})
			return nil // Continue walking despite the error
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !opts.Recursive || excluded(path, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			result.add(path, opts)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}

	sort.Strings(result.Files)
	return result, nil
}

func (c *Collection) add(path string, opts CollectOptions) {
	switch {
	case excluded(path, opts.Exclude):
		c.Skipped = append(c.Skipped, SkippedFile{Path: path, Reason: "excluded by pattern"})
	case opts.Accept != nil && !opts.Accept(path):
		c.Skipped = append(c.Skipped, SkippedFile{Path: path, Reason: "unsupported file type"})
	default:
		c.Files = append(c.Files, path)
	}
}

func excluded(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[")
}
