// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package patch

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/declfix/pkg/config"
	"github.com/walteh/declfix/pkg/log"
	"github.com/walteh/declfix/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📊 FileResult contains the outcome of patching a single file
type FileResult struct {
	Path         string // File that was processed
	LinesChanged int    // Lines that differ from the original
	Modified     bool   // Whether the file content changed
}

// 📈 Summary aggregates the results of a full run
type Summary struct {
	FilesScanned  int
	FilesModified int
	LinesChanged  int
}

// 🔧 Options configures a Patcher
type Options struct {
	Config *config.Config
	Logger *log.UserLogger // Optional console feedback
	DryRun bool            // Rewrite in memory, never write
	Async  bool            // Patch files concurrently
}

// 🎯 Patcher applies the configured replacement rules to each target file
type Patcher struct {
	cfg    *config.Config
	logger *log.UserLogger
	dryRun bool
	async  bool
}

// 🏭 New creates a new Patcher
func New(opts Options) *Patcher {
	return &Patcher{
		cfg:    opts.Config,
		logger: opts.Logger,
		dryRun: opts.DryRun,
		async:  opts.Async,
	}
}

// 🏃 Run patches every configured target and returns a run summary
func (p *Patcher) Run(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)

	if err := p.cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	// Resolve targets up front so a bad path fails before anything is
	// written.
	type job struct {
		path  string
		rules []config.Rule
	}
	var jobs []job
	for _, target := range p.cfg.Targets {
		paths, err := resolveTarget(target.Path)
		if err != nil {
			return nil, errors.Errorf("resolving target %s: %w", target.Path, err)
		}
		if len(paths) == 0 {
			logger.Warn().Str("target", target.Path).Msg("glob matched no files")
			continue
		}
		for _, path := range paths {
			jobs = append(jobs, job{path: path, rules: target.Rules})
		}
	}

	summary := &Summary{}
	var mu sync.Mutex

	process := func(j job) error {
		result, err := p.PatchFile(ctx, j.path, j.rules)
		if err != nil {
			if p.logger != nil {
				p.logger.LogFileChange(log.FileChange{
					Type:  log.FileError,
					Path:  j.path,
					Error: err,
				})
			}
			return errors.Errorf("patching %s: %w", j.path, err)
		}

		mu.Lock()
		summary.FilesScanned++
		if result.Modified {
			summary.FilesModified++
			summary.LinesChanged += result.LinesChanged
		}
		mu.Unlock()

		if p.logger != nil {
			changeType := log.FileUnchanged
			switch {
			case result.Modified && p.dryRun:
				changeType = log.FileSkipped
			case result.Modified:
				changeType = log.FilePatched
			}
			p.logger.LogFileChange(log.FileChange{
				Type:         changeType,
				Path:         result.Path,
				LinesChanged: result.LinesChanged,
			})
		}
		return nil
	}

	if p.async {
		g, _ := errgroup.WithContext(ctx)
		for _, j := range jobs {
			j := j
			g.Go(func() error { return process(j) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, j := range jobs {
			if err := process(j); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug().
		Int("scanned", summary.FilesScanned).
		Int("modified", summary.FilesModified).
		Int("lines", summary.LinesChanged).
		Msg("run complete")

	return summary, nil
}

// 📄 PatchFile rewrites a single file in place. The file is read in full
// before anything is written; a read failure leaves it untouched, and the
// write goes through a temp file plus rename so the original is either
// fully replaced or left as it was.
func (p *Patcher) PatchFile(ctx context.Context, path string, rules []config.Rule) (*FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stating file: %w", err)
	}

	rewriter := rewrite.NewLineRewriter(toRewriteRules(rules)...)
	result, err := rewriter.RewriteContent(ctx, content)
	if err != nil {
		return nil, errors.Errorf("rewriting content: %w", err)
	}

	if !p.dryRun {
		if err := writeFileAtomic(path, result.Content(), info.Mode()); err != nil {
			return nil, errors.Errorf("writing file: %w", err)
		}
	}

	return &FileResult{
		Path:         path,
		LinesChanged: result.LinesChanged,
		Modified:     result.WasModified,
	}, nil
}

// 🔄 toRewriteRules converts config rules into rewrite rules
func toRewriteRules(rules []config.Rule) []rewrite.Rule {
	out := make([]rewrite.Rule, len(rules))
	for i, r := range rules {
		out[i] = rewrite.Rule{Old: r.Old, New: r.New, TopLevel: r.TopLevel}
	}
	return out
}

// 🔍 resolveTarget expands a target path into concrete file paths. A plain
// path is returned as-is; a path with glob metacharacters is matched with
// doublestar. Matches come back sorted so runs are deterministic.
func resolveTarget(path string) ([]string, error) {
	if !strings.ContainsAny(path, "*?[{") {
		return []string{path}, nil
	}

	matches, err := doublestar.FilepathGlob(path)
	if err != nil {
		return nil, errors.Errorf("expanding glob: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// 💾 writeFileAtomic writes content to a temp file next to the target and
// renames it over the original.
func writeFileAtomic(path string, content []byte, mode os.FileMode) error {
	tempPath := path + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tempPath, content, mode.Perm()); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
