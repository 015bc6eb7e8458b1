package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PolarWolf314/gitops-secrets/internal/envelope"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInspectPatterns match envelope files and generated modules.
var DefaultInspectPatterns = []string{
	"**/*.enc.json",
	"**/*.enc.{js,cjs,mjs}",
}

// skippedDirs are never searched.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	// Patterns are doublestar globs relative to the project root. Empty uses
	// DefaultInspectPatterns.
	Patterns []string
}

// EnvelopeInfo describes one envelope file. Nothing is decrypted.
type EnvelopeInfo struct {
	// Path is relative to the project root.
	Path       string
	Tag        envelope.Tag
	Iterations int

	// Stale is true when Iterations is below DefaultIterations.
	Stale bool

	// Err is set when the file could not be read or parsed.
	Err error
}

// InspectResult contains the outcome of an inspect operation.
type InspectResult struct {
	ProjectPath string
	Envelopes   []EnvelopeInfo
}

// Stale returns the envelopes encrypted with fewer iterations than the
// current default.
func (r *InspectResult) Stale() []EnvelopeInfo {
	var stale []EnvelopeInfo
	for _, info := range r.Envelopes {
		if info.Stale {
			stale = append(stale, info)
		}
	}
	return stale
}

// Inspect lists envelope files under the project root with their header
// parameters. No master key is needed.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	proj, err := loadProject()
	if err != nil {
		return nil, err
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = DefaultInspectPatterns
	}

	seen := map[string]bool{}
	var paths []string
	for _, pattern := range patterns {
		absPattern := pattern
		if !filepath.IsAbs(pattern) {
			absPattern = filepath.Join(proj.root, pattern)
		}

		matches, err := doublestar.FilepathGlob(absPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		for _, m := range matches {
			if seen[m] || inSkippedDir(proj.root, m) {
				continue
			}
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)

	result := &InspectResult{ProjectPath: proj.root}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info := inspectFile(path)
		if rel, err := filepath.Rel(proj.root, path); err == nil {
			info.Path = rel
		}
		result.Envelopes = append(result.Envelopes, info)
	}
	return result, nil
}

func inspectFile(path string) EnvelopeInfo {
	info := EnvelopeInfo{Path: path}

	cipherText, err := secrets.ReadCipherTextFile(path)
	if err != nil {
		info.Err = err
		return info
	}

	env, err := envelope.Parse(cipherText)
	if err != nil {
		info.Err = err
		return info
	}

	info.Tag = env.Tag
	info.Iterations = env.Iterations
	info.Stale = env.Iterations < secrets.DefaultIterations
	return info
}

func inSkippedDir(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if skippedDirs[part] {
			return true
		}
	}
	return false
}
