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
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/declfix/pkg/config"
)

const processorJS = `const VALID_COMMANDS = ['menu', 'help'];

function processMessage(msg) {
    const userLanguage = detectLanguage(msg);
    const mainMenu = buildMenu(userLanguage);
    if (msg.isRetry) {
        const userLanguage = detectLanguage(msg.original);
        return reply(userLanguage, mainMenu);
    }
    return reply(userLanguage, mainMenu);
}
`

const processorJSFixed = `const VALID_COMMANDS = ['menu', 'help'];

function processMessage(msg) {
    userLanguage = detectLanguage(msg);
    mainMenu = buildMenu(userLanguage);
    if (msg.isRetry) {
        userLanguage = detectLanguage(msg.original);
        return reply(userLanguage, mainMenu);
    }
    return reply(userLanguage, mainMenu);
}
`

var constRules = []config.Rule{
	{Old: "const userLanguage =", New: "userLanguage ="},
	{Old: "const mainMenu =", New: "mainMenu ="},
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPatchFile(t *testing.T) {
	t.Run("rewrites_indented_declarations", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "messageProcessor.js", processorJS)

		p := New(Options{Config: config.Default()})
		result, err := p.PatchFile(context.Background(), path, constRules)
		require.NoError(t, err)

		assert.True(t, result.Modified)
		assert.Equal(t, 3, result.LinesChanged)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, processorJSFixed, string(got))

		// Line count is preserved.
		assert.Equal(t,
			strings.Count(processorJS, "\n"),
			strings.Count(string(got), "\n"))
	})

	t.Run("second_run_is_a_noop", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "messageProcessor.js", processorJS)
		p := New(Options{Config: config.Default()})

		_, err := p.PatchFile(context.Background(), path, constRules)
		require.NoError(t, err)

		result, err := p.PatchFile(context.Background(), path, constRules)
		require.NoError(t, err)
		assert.False(t, result.Modified)
		assert.Equal(t, 0, result.LinesChanged)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, processorJSFixed, string(got))
	})

	t.Run("missing_file_is_an_error", func(t *testing.T) {
		p := New(Options{Config: config.Default()})
		_, err := p.PatchFile(context.Background(), filepath.Join(t.TempDir(), "nope.js"), constRules)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading file")
	})

	t.Run("dry_run_leaves_file_untouched", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "messageProcessor.js", processorJS)

		p := New(Options{Config: config.Default(), DryRun: true})
		result, err := p.PatchFile(context.Background(), path, constRules)
		require.NoError(t, err)

		assert.True(t, result.Modified, "dry run still reports what would change")
		assert.Equal(t, 3, result.LinesChanged)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, processorJS, string(got), "file must not be written")
	})

	t.Run("no_temp_file_left_behind", func(t *testing.T) {
		dir := t.TempDir()
		writeTestFile(t, dir, "messageProcessor.js", processorJS)

		p := New(Options{Config: config.Default()})
		_, err := p.PatchFile(context.Background(), filepath.Join(dir, "messageProcessor.js"), constRules)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "messageProcessor.js", entries[0].Name())
	})

	t.Run("file_mode_is_preserved", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "messageProcessor.js", processorJS)
		require.NoError(t, os.Chmod(path, 0600))

		p := New(Options{Config: config.Default()})
		_, err := p.PatchFile(context.Background(), path, constRules)
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestRun(t *testing.T) {
	t.Run("patches_configured_target", func(t *testing.T) {
		dir := t.TempDir()
		rel := filepath.Join("src", "services", "whatsapp", "messageProcessor.js")
		writeTestFile(t, dir, rel, processorJS)

		cwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(cwd) })

		p := New(Options{Config: config.Default()})
		summary, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, summary.FilesScanned)
		assert.Equal(t, 1, summary.FilesModified)
		assert.Equal(t, 3, summary.LinesChanged)

		got, err := os.ReadFile(rel)
		require.NoError(t, err)
		assert.Equal(t, processorJSFixed, string(got))
	})

	t.Run("glob_target_matches_multiple_files", func(t *testing.T) {
		dir := t.TempDir()
		writeTestFile(t, dir, filepath.Join("src", "a.js"), processorJS)
		writeTestFile(t, dir, filepath.Join("src", "nested", "b.js"), processorJS)
		writeTestFile(t, dir, filepath.Join("src", "c.txt"), processorJS)

		cwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(cwd) })

		cfg := &config.Config{
			Targets: []config.Target{
				{Path: "src/**/*.js", Rules: constRules},
			},
		}

		p := New(Options{Config: cfg})
		summary, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, summary.FilesScanned)
		assert.Equal(t, 2, summary.FilesModified)
		assert.Equal(t, 6, summary.LinesChanged)

		// The .txt file is outside the glob and stays as it was.
		got, err := os.ReadFile(filepath.Join("src", "c.txt"))
		require.NoError(t, err)
		assert.Equal(t, processorJS, string(got))
	})

	t.Run("async_run_patches_all_files", func(t *testing.T) {
		dir := t.TempDir()
		var targets []config.Target
		for _, name := range []string{"a.js", "b.js", "c.js", "d.js"} {
			writeTestFile(t, dir, name, processorJS)
			targets = append(targets, config.Target{
				Path:  filepath.Join(dir, name),
				Rules: constRules,
			})
		}

		p := New(Options{Config: &config.Config{Targets: targets}, Async: true})
		summary, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 4, summary.FilesScanned)
		assert.Equal(t, 4, summary.FilesModified)
	})

	t.Run("literal_missing_target_fails", func(t *testing.T) {
		cfg := &config.Config{
			Targets: []config.Target{
				{Path: filepath.Join(t.TempDir(), "gone.js"), Rules: constRules},
			},
		}

		p := New(Options{Config: cfg})
		_, err := p.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading file")
	})

	t.Run("empty_glob_is_not_an_error", func(t *testing.T) {
		dir := t.TempDir()
		cwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(cwd) })

		cfg := &config.Config{
			Targets: []config.Target{
				{Path: "src/**/*.js", Rules: constRules},
			},
		}

		p := New(Options{Config: cfg})
		summary, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, summary.FilesScanned)
	})

	t.Run("invalid_config_fails_before_touching_files", func(t *testing.T) {
		p := New(Options{Config: &config.Config{}})
		_, err := p.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validating config")
	})
}

func TestResolveTarget(t *testing.T) {
	t.Run("literal_path_passes_through", func(t *testing.T) {
		paths, err := resolveTarget("src/services/whatsapp/messageProcessor.js")
		require.NoError(t, err)
		assert.Equal(t, []string{"src/services/whatsapp/messageProcessor.js"}, paths)
	})

	t.Run("glob_expands_sorted", func(t *testing.T) {
		dir := t.TempDir()
		writeTestFile(t, dir, "b.js", "x\n")
		writeTestFile(t, dir, "a.js", "x\n")

		paths, err := resolveTarget(filepath.Join(dir, "*.js"))
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.js"),
			filepath.Join(dir, "b.js"),
		}, paths)
	})
}
