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

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/catalogrc/cmd/catalogrc/opts"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/log"
	"github.com/walteh/catalogrc/pkg/metrics"
	"github.com/walteh/catalogrc/pkg/state"
	"gitlab.com/tozd/go/errors"
)

// ErrCatalogUnavailable is returned by show when the catalog ended up errored.
// Its text is the same generic message consumers see.
var ErrCatalogUnavailable = errors.Base(state.LoadFailedMessage)

type showOpts struct {
	delay   time.Duration
	fail    bool
	json    bool
	metrics bool
}

// 📦 showOutput is the --json document
type showOutput struct {
	Scope        string            `json:"scope"`
	Status       string            `json:"status"`
	IsLoading    bool              `json:"is_loading"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Items        []catalog.Product `json:"items"`
}

// NewShowCmd creates the show command
func NewShowCmd(root *opts.RootOpts) *cobra.Command {
	so := &showOpts{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Load the catalog and print it",
		Long: `Show mounts a catalog provider, waits for the simulated fetch to finish and
prints the products as a table. The source comes from the config file:
a single catalog file, a directory of catalog files or the built-in list.

The command exits non-zero when the catalog could not be loaded.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("delay") {
				if err := root.Config.SetDelay(so.delay); err != nil {
					return errors.Errorf("--delay: %w", err)
				}
			}
			return runShow(cmd.Context(), root, so, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().DurationVar(&so.delay, "delay", state.DefaultDelay, "simulated latency before the catalog is fetched (overrides config)")
	cmd.Flags().BoolVar(&so.fail, "fail", false, "use a source that always fails")
	cmd.Flags().BoolVar(&so.json, "json", false, "print the final state as JSON")
	cmd.Flags().BoolVar(&so.metrics, "metrics", false, "print the provider metrics after the catalog")

	return cmd
}

// newSource picks the catalog source the config asks for
func newSource(cfg *config.Config, fail bool) state.Source[catalog.Product] {
	switch {
	case fail:
		return &catalog.FailingSource{}
	case cfg.Source.Path != "":
		return &catalog.FileSource{Path: cfg.Source.Path}
	case cfg.Source.Dir != "":
		return &catalog.DirSource{Root: cfg.Source.Dir, Pattern: cfg.Source.Pattern}
	default:
		return catalog.Builtin()
	}
}

func runShow(ctx context.Context, root *opts.RootOpts, so *showOpts, out, errOut io.Writer) error {
	logger := root.Logger

	reg := prometheus.NewRegistry()
	recorder, err := metrics.NewPrometheus(reg)
	if err != nil {
		return errors.Errorf("creating metrics recorder: %w", err)
	}

	provider, err := state.NewProvider(newSource(root.Config, so.fail),
		state.WithDelay(root.Config.DelayDuration()),
		state.WithSink(logger),
		state.WithRecorder(recorder),
	)
	if err != nil {
		return errors.Errorf("creating catalog provider: %w", err)
	}

	logger.Header("Loading catalog")

	start := time.Now()
	scope := provider.Mount(ctx)
	defer scope.Unmount()

	snap, err := scope.Read()
	if err != nil {
		return err
	}
	logger.LogTransition(ctx, transitionOf(scope.ID(), snap, 0))

	snap, err = wait(ctx, scope, errOut, so.json)
	if err != nil {
		return err
	}
	logger.LogTransition(ctx, transitionOf(scope.ID(), snap, time.Since(start)))

	if so.json {
		err = writeJSON(out, scope.ID(), snap)
	} else {
		err = writeTable(out, logger, snap)
	}
	if err != nil {
		return err
	}

	if so.metrics {
		if err := writeMetrics(out, reg); err != nil {
			return err
		}
	}

	if snap.HasError() {
		return ErrCatalogUnavailable
	}
	return nil
}

// wait blocks until the scope resolves, with a spinner when errOut is a terminal
func wait(ctx context.Context, scope *state.Scope[catalog.Product], errOut io.Writer, quiet bool) (state.Snapshot[catalog.Product], error) {
	f, ok := errOut.(*os.File)
	if quiet || !ok || !isatty.IsTerminal(f.Fd()) {
		return scope.Wait(ctx)
	}

	spinner, err := pterm.DefaultSpinner.WithWriter(errOut).WithRemoveWhenDone(true).Start("Loading products...")
	if err != nil {
		return scope.Wait(ctx)
	}
	defer func() { _ = spinner.Stop() }()

	return scope.Wait(ctx)
}

func transitionOf(scope string, snap state.Snapshot[catalog.Product], elapsed time.Duration) log.Transition {
	return log.Transition{
		Scope:   scope,
		Status:  snap.Status.String(),
		Items:   len(snap.Items),
		Message: snap.ErrorMessage,
		Elapsed: elapsed,
	}
}

func writeJSON(out io.Writer, scope string, snap state.Snapshot[catalog.Product]) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(showOutput{
		Scope:        scope,
		Status:       snap.Status.String(),
		IsLoading:    snap.IsLoading,
		ErrorMessage: snap.ErrorMessage,
		Items:        snap.Items,
	}); err != nil {
		return errors.Errorf("encoding catalog: %w", err)
	}
	return nil
}

func writeTable(out io.Writer, logger *log.Logger, snap state.Snapshot[catalog.Product]) error {
	if snap.HasError() {
		logger.Error(snap.ErrorMessage)
		return nil
	}
	if len(snap.Items) == 0 {
		logger.Warning("The catalog is empty")
		return nil
	}

	data := pterm.TableData{{"ID", "Name", "Category", "Price"}}
	for _, p := range snap.Items {
		data = append(data, []string{p.ID, p.Name, p.Category, fmt.Sprintf("%.2f", p.Price)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering catalog table: %w", err)
	}
	if _, err := fmt.Fprintln(out, table); err != nil {
		return errors.Errorf("writing catalog table: %w", err)
	}
	logger.Successf("Loaded %d products", len(snap.Items))
	return nil
}

func writeMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.Errorf("encoding metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
