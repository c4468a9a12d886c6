package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"questify/internal/artifact"
	"questify/internal/generate"
	"questify/internal/knowledge"
	"questify/internal/likelihood"
	"questify/internal/llm"
	"questify/internal/preprocess"
	"questify/internal/report"
)

var (
	transformYes     bool
	transformWorkers int
	transformOut     string
)

var transformCmd = &cobra.Command{
	Use:   "transform <template.xml> [more templates...]",
	Short: "Convert Quest XML report templates into structured report candidates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		kb, err := knowledge.Load()
		if err != nil {
			return err
		}
		client, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		files := append([]string(nil), args...)
		if !transformYes {
			files, err = prompter.ConfirmFiles(files)
			if err != nil {
				return err
			}
		}
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No files selected. Exiting.")
			return nil
		}

		outBase := transformOut
		if outBase == "" {
			outBase = cfg.OutputDir
		}
		runDir, err := artifact.RunDir(outBase, time.Now())
		if err != nil {
			return err
		}
		store := artifact.NewStore(runDir)
		log.WithField("dir", runDir).Info("run directory created")

		workers := transformWorkers
		if workers <= 0 {
			workers = cfg.Workers
		}
		runner := &transformRunner{
			client:   client,
			kb:       kb,
			store:    store,
			log:      log,
			workers:  workers,
			prompter: prompter,
			auto:     transformYes,
			out:      cmd.OutOrStdout(),
		}
		return runner.Run(ctx, files)
	},
}

func init() {
	transformCmd.Flags().BoolVarP(&transformYes, "yes", "y", false, "accept all verdicts without prompting")
	transformCmd.Flags().IntVar(&transformWorkers, "workers", 0, "concurrent generation workers (default from WORKERS)")
	transformCmd.Flags().StringVarP(&transformOut, "output", "o", "", "base directory for artifacts (default from OUTPUT_DIR)")
	rootCmd.AddCommand(transformCmd)
}

type transformRunner struct {
	client   llm.Client
	kb       *knowledge.Base
	store    *artifact.Store
	log      *logrus.Logger
	workers  int
	prompter *Prompter
	auto     bool
	out      io.Writer
}

// Run processes every file; a failure in one file is reported and the
// rest continue.
func (r *transformRunner) Run(ctx context.Context, files []string) error {
	stems := make([]string, len(files))
	for i, f := range files {
		stems[i] = stem(f)
	}
	subdirs := artifact.SubdirNames(stems)

	extractor := preprocess.NewExtractor(r.client, r.kb)
	estimator := likelihood.NewEstimator(r.client, r.kb)
	orchestrator := generate.NewOrchestrator(r.client, r.kb, r.log, r.workers)

	var failed int
	for i, path := range files {
		fmt.Fprintf(r.out, "\n%s\nGenerating reports for: %s\n%s\n", strings.Repeat("#", 50), path, strings.Repeat("#", 50))
		if err := r.runOne(ctx, extractor, estimator, orchestrator, path, subdirs[i]); err != nil {
			if llm.IsPermanent(err) || ctx.Err() != nil {
				return err
			}
			failed++
			r.log.WithField("file", path).WithError(err).Error("file failed")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func (r *transformRunner) runOne(ctx context.Context, extractor *preprocess.Extractor, estimator *likelihood.Estimator, orchestrator *generate.Orchestrator, path, subdir string) error {
	text, err := preprocess.ReadTemplate(path)
	if err != nil {
		return err
	}
	prepared, err := extractor.Prepare(ctx, text)
	if err != nil {
		return err
	}
	if _, err := r.store.SaveRaw(subdir, filepath.Base(path), []byte(prepared.Text)); err != nil {
		return err
	}

	judged, err := estimator.Estimate(ctx, prepared.Text, prepared.Extracted)
	if err != nil {
		return err
	}
	var ask likelihood.ConfirmFunc
	if !r.auto {
		ask = r.prompter.ConfirmLikelihood
	}
	verdicts, err := likelihood.Confirm(judged, ask)
	if err != nil {
		return err
	}

	candidates, err := orchestrator.Generate(ctx, prepared.Text, prepared.Extracted, verdicts)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Fprintf(r.out, "No candidates generated for %s\n", path)
		return nil
	}

	counts := make(map[report.Kind]int)
	for _, cand := range candidates {
		counts[cand.Kind]++
		name := fmt.Sprintf("%s_as_%s_%d", stem(path), cand.Kind, counts[cand.Kind])
		saved, err := r.store.SaveCandidate(subdir, name, cand)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Saved %s\n", saved)
	}
	for _, kind := range report.Kinds() {
		if counts[kind] > 0 {
			fmt.Fprintf(r.out, "%s: %d reports generated\n", kind, counts[kind])
		}
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
