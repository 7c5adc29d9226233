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

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/declfix/cmd/declfix/commands"
	"github.com/walteh/declfix/cmd/declfix/opts"
	"github.com/walteh/declfix/pkg/log"
)

func main() {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "declfix",
		Short: "Rewrite duplicate JavaScript declarations into assignments",
		Long: `declfix patches JavaScript source files whose generated or hand-merged
code redeclares an already-bound variable. Each configured rule turns a
declaration like "const userLanguage = ..." on an indented line into a
plain assignment, leaving every other line untouched.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := setupLogging(cmd.Context())
			rootOpts.UserLogger = log.NewUserLogger(ctx)
			cmd.SetContext(ctx)
		},
	}

	addRootFlags(rootCmd, rootOpts)

	fixCmd := commands.NewFixCmd(rootOpts)
	rootCmd.AddCommand(
		fixCmd,
		commands.NewCheckCmd(rootOpts),
		newVersionCmd(),
	)

	// Bare "declfix" behaves like "declfix fix".
	rootCmd.RunE = fixCmd.RunE

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
