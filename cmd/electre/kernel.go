package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ritzau/electre-kernel/pkg/config"
	"github.com/ritzau/electre-kernel/pkg/kernel"
	"github.com/ritzau/electre-kernel/pkg/logging"
	"github.com/ritzau/electre-kernel/pkg/model"
	"github.com/ritzau/electre-kernel/pkg/output"
	"github.com/ritzau/electre-kernel/pkg/watcher"
	"github.com/ritzau/electre-kernel/pkg/xmcda"
	"github.com/spf13/cobra"
)

func newKernelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Find the kernel of an outranking relation",
		Long: `Builds the outranking graph from alternatives.xml and outranking.xml,
eliminates its cycles and writes the kernel to kernel.xml.

Edge weights for the cut_weakest method come from credibility.xml when
present, otherwise from the values of a valued outranking relation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			runner := newKernelRunner(cmd, cfg)
			if !cfg.Watch {
				_, err := runner.run(true)
				return err
			}
			return watchKernel(cmd.Context(), runner)
		},
	}

	cmd.Flags().StringP("input", "i", ".", "input directory with XMCDA files")
	cmd.Flags().StringP("output", "o", ".", "output directory for kernel.xml and messages.xml")
	cmd.Flags().String("method", string(model.MethodAggregate), "cycle elimination method: aggregate or cut_weakest")
	cmd.Flags().Float64("cut-threshold", 1.0, "minimal credibility for an outranking edge")
	cmd.Flags().Bool("watch", false, "re-run when input files change")
	return cmd
}

// kernelRunner runs the pipeline for one input directory. It keeps the
// configuration resolved against the last method parameters, so a change
// to data files alone reuses it.
type kernelRunner struct {
	cmd      *cobra.Command
	base     *config.Config
	resolved *config.Config // nil until method parameters were applied
}

func newKernelRunner(cmd *cobra.Command, base *config.Config) *kernelRunner {
	return &kernelRunner{cmd: cmd, base: base}
}

// run executes the whole pipeline once. Failures are reported in
// messages.xml; kernel.xml is only written on success.
func (r *kernelRunner) run(reloadConfig bool) (*kernel.Result, error) {
	out := r.base.Output
	if err := checkOutputDir(out); err != nil {
		return nil, err
	}

	result, err := r.find(reloadConfig)
	if err != nil {
		reportFailure(out, err)
		return nil, err
	}

	if err := xmcda.WriteKernel(filepath.Join(out, xmcda.KernelFile), result.Labels); err != nil {
		reportFailure(out, err)
		return nil, err
	}
	if err := xmcda.WriteMessages(filepath.Join(out, xmcda.MessagesFile), []string{"Everything OK."}, nil); err != nil {
		return nil, err
	}

	output.PrintKernelReport(r.cmd.OutOrStdout(), r.base.Input, result)
	return result, nil
}

func (r *kernelRunner) find(reloadConfig bool) (*kernel.Result, error) {
	in, err := xmcda.LoadKernelInput(r.base.Input)
	if err != nil {
		return nil, err
	}

	// Method parameters of the input directory rank below flags and env, above the config file
	if reloadConfig || r.resolved == nil {
		r.resolved = nil
		cfg, err := loadConfig(r.cmd, in.Parameters)
		if err != nil {
			return nil, err
		}
		r.resolved = cfg
	}
	cfg := r.resolved

	method, err := cfg.EliminationMethod()
	if err != nil {
		return nil, err
	}

	logging.Debug("input loaded",
		"alternatives", len(in.Alternatives),
		"crisp", in.Crisp,
		"credibility", in.Credibility != nil,
	)
	return kernel.Find(in.Alternatives, in.Relation(cfg.CutThreshold), in.Weights(), method)
}

// watchKernel runs the pipeline, then once more for every batch of changes to the input files
func watchKernel(ctx context.Context, runner *kernelRunner) error {
	prev, err := runner.run(true)
	if err != nil {
		logging.Error("kernel extraction failed", "error", err)
	}

	fw, err := watcher.NewFileWatcher(runner.base.Input)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		return err
	}
	defer fw.Stop()

	debouncer := watcher.NewDebouncer(fw.Events(), 300*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	for analysis := range debouncer.Output() {
		logging.Info("input changed", "files", analysis.ChangedFiles, "reload_config", analysis.NeedReloadConfig)
		if !analysis.NeedRerun {
			continue
		}

		result, err := runner.run(analysis.NeedReloadConfig)
		if err != nil {
			logging.Error("kernel extraction failed", "error", err)
			continue
		}
		logKernelChanges(kernel.Compare(prev, result))
		prev = result
	}

	logging.Info("stopped watching", "path", runner.base.Input)
	return nil
}

func logKernelChanges(diff *kernel.Diff) {
	if diff.Empty() {
		logging.Info("kernel unchanged")
		return
	}
	logging.Info("kernel changed",
		"added", diff.AddedLabels,
		"removed", diff.RemovedLabels,
		"edges_added", len(diff.AddedEdges),
		"edges_removed", len(diff.RemovedEdges),
	)
	logging.Debug("outranking edges changed", "added", diff.AddedEdges, "removed", diff.RemovedEdges)
}

func checkOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: directory %q doesn't exist", model.ErrConfiguration, dir)
	}
	return nil
}

// reportFailure writes the error to messages.xml, keeping the original error as the result
func reportFailure(dir string, err error) {
	if werr := xmcda.WriteMessages(filepath.Join(dir, xmcda.MessagesFile), nil, []string{err.Error()}); werr != nil {
		logging.Warn("failed to write messages", "error", werr)
	}
}
