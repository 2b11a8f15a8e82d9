package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures the source file collection behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".html", ".vue")
	Extensions []string
	// ExcludeDirs is a list of directory names to exclude (e.g., "node_modules", "dist")
	ExcludeDirs []string
}

// ScanResult contains the results of a source file collection
type ScanResult struct {
	// Files contains the absolute paths of all matched files
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// CollectFiles resolves a mixed list of file and directory paths into the
// sorted set of source files to scan. Directories are walked recursively;
// plain files are included regardless of extension since the caller named
// them explicitly.
func CollectFiles(paths []string, opts ScanOptions) (*ScanResult, error) {
	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	seen := make(map[string]bool)

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path: %w", err)
		}

		if !info.IsDir() {
			absPath, err := filepath.Abs(path)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
				continue
			}
			if !seen[absPath] {
				seen[absPath] = true
				result.Files = append(result.Files, absPath)
			}
			continue
		}

		if err := scanDirectory(path, opts, seen, result); err != nil {
			return nil, err
		}
	}

	// Sort files for consistent output
	sort.Strings(result.Files)

	return result, nil
}

// scanDirectory walks one directory tree and appends matching files to result.
func scanDirectory(dir string, opts ScanOptions, seen map[string]bool, result *ScanResult) error {
	// Create extension map for fast lookup
	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		// Ensure extensions start with a dot
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	// Create excluded dirs map
	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		// Skip the root directory itself
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		// Check extension if specified
		if len(extMap) > 0 {
			ext := strings.ToLower(filepath.Ext(d.Name()))
			if !extMap[ext] {
				return nil
			}
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}

		if !seen[absPath] {
			seen[absPath] = true
			result.Files = append(result.Files, absPath)
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	return nil
}
