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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/catalogrc/cmd/catalogrc/commands"
	"github.com/walteh/catalogrc/cmd/catalogrc/opts"
	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

type rootFlags struct {
	configFile string
	debug      bool
}

// newRootCmd wires the subcommands around a shared RootOpts
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "catalogrc",
		Short: "A tool for loading and inspecting product catalogs",
		Long: `catalogrc loads a product catalog from the built-in list, a catalog file
or a directory of catalog files, after a simulated network delay, and prints it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := setupRoot(cmd, flags, root)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewShowCmd(root),
		commands.NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", ".catalogrc.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupRoot loads the config and puts the loggers on the command context
func setupRoot(cmd *cobra.Command, flags *rootFlags, root *opts.RootOpts) (context.Context, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// config loading logs at debug, so the level has to be known first
	bootLevel := zerolog.InfoLevel
	if flags.debug {
		bootLevel = zerolog.DebugLevel
	}
	boot := log.New(cmd.ErrOrStderr(), bootLevel)

	cfg, err := config.LoadOptional(boot.Zerolog().WithContext(ctx), flags.configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel()
	if flags.debug {
		level = zerolog.DebugLevel
	}
	logger := log.New(cmd.ErrOrStderr(), level)

	root.Config = cfg
	root.Logger = logger

	ctx = logger.Zerolog().WithContext(ctx)
	ctx = log.NewContext(ctx, logger)

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration resolved")

	return ctx, nil
}
