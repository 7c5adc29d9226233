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

package log

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

func init() {
	// Unchanged/skipped lines go through the debug printer
	pterm.EnableDebugMessages()
}

// 📢 UserLogger provides user-friendly feedback about patched files
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 FileChangeType represents the outcome of patching a file
type FileChangeType int

const (
	FilePatched FileChangeType = iota
	FileUnchanged
	FileSkipped
	FileError
)

// 🖼️ FileChange represents the result of patching one file
type FileChange struct {
	Type         FileChangeType
	Path         string
	LinesChanged int
	Error        error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogFileChange logs a file result with appropriate emoji and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FilePatched:
		action = "Patched"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"})
	case FileUnchanged:
		action = "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "👍"})
	case FileSkipped:
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case FileError:
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}

	msg := fmt.Sprintf("%s %s", action, change.Path)
	if change.LinesChanged > 0 {
		msg += fmt.Sprintf(" (%d lines)", change.LinesChanged)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg)
	} else {
		printer.Println(msg)
		u.log.Info().
			Str("path", change.Path).
			Int("lines_changed", change.LinesChanged).
			Msg(msg)
	}
}

// 📊 LogSummary logs the overall run summary
func (u *UserLogger) LogSummary(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	u.log.Info().Msg(description)
}

// ✅ Success logs the final confirmation line
func (u *UserLogger) Success(msg string) {
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).
		Println(color.New(color.FgGreen).Sprint(msg))
	u.log.Info().Msg(msg)
}

// 📝 Header logs the tool header
func (u *UserLogger) Header(msg string) {
	name := color.New(color.Bold, color.FgCyan).Sprint("declfix")
	pterm.Println(fmt.Sprintf("%s %s", name, color.New(color.Faint).Sprint("• "+msg)))
	u.log.Info().Msg(msg)
}
