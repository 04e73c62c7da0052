package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"

	"autohan/internal/layout"
	"autohan/internal/logger"
	"autohan/internal/ngram"
)

func main() {
	if err := mainE(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "autohan-train: %v\n", err)
		os.Exit(1)
	}
}

func mainE(ctx context.Context, args []string, stdout io.Writer) error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("autohan-train")
	var (
		output   = fs.StringLong("output", "model.json", "path of the model file to write")
		minFreq  = fs.IntLong("min-freq", 5, "drop entries seen fewer times than this")
		sample   = fs.BoolLong("sample", "write the built-in sample model instead of training")
		top      = fs.IntLong("top", 10, "number of top entries to report")
		source   = fs.StringLong("source", "", "source label stored in the model metadata")
		logLevel = fs.StringLong("log-level", "info", "debug, info, warn or error")
	)
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("AUTOHAN_TRAIN")); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			fmt.Fprintf(stdout, "%s\n", ffhelp.Flags(fs))
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}
	if *minFreq < 1 {
		return fmt.Errorf("min-freq must be at least 1, got %d", *minFreq)
	}

	log, err := logger.Init(*logLevel, "")
	if err != nil {
		return err
	}

	var model *ngram.Model
	if *sample {
		model = ngram.Sample()
	} else {
		corpora := fs.GetArgs()
		if len(corpora) == 0 {
			return errors.New("no corpus files given (use --sample for the built-in model)")
		}
		label := *source
		if label == "" {
			label = strings.Join(baseNames(corpora), ",")
		}
		counter, err := countCorpora(ctx, corpora, log)
		if err != nil {
			return err
		}
		model = counter.Build(uint64(*minFreq), label)
	}

	if err := writeModel(*output, model); err != nil {
		return err
	}
	log.Info("model written",
		"path", *output,
		"unigrams", model.UnigramCount(),
		"bigrams", model.BigramCount(),
	)
	report(stdout, model, *top)
	return nil
}

// countCorpora counts every file concurrently, one counter per file.
func countCorpora(ctx context.Context, paths []string, log *slog.Logger) (*ngram.Counter, error) {
	counters := make([]*ngram.Counter, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(filepath.Clean(path))
			if err != nil {
				return fmt.Errorf("open corpus: %w", err)
			}
			defer f.Close()
			counter := ngram.NewCounter()
			if err := counter.AddReader(f); err != nil {
				return fmt.Errorf("read corpus %s: %w", path, err)
			}
			log.Debug("corpus counted", "path", path, "syllables", counter.Size())
			counters[i] = counter
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	total := ngram.NewCounter()
	for _, counter := range counters {
		total.Merge(counter)
	}
	return total, nil
}

// writeModel replaces path atomically so a running engine never sees a
// half-written file.
func writeModel(path string, model *ngram.Model) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".autohan-model-*.json")
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := model.WriteJSON(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

func report(w io.Writer, model *ngram.Model, n int) {
	if n <= 0 {
		return
	}
	keys := layout.Dubeolsik()
	fmt.Fprintf(w, "top %d syllables:\n", n)
	for _, entry := range model.TopUnigrams(n) {
		fmt.Fprintf(w, "  %s %-8s %d\n", entry.Text, keys.Keystrokes(entry.Text), entry.Count)
	}
	fmt.Fprintf(w, "top %d bigrams:\n", n)
	for _, entry := range model.TopBigrams(n) {
		fmt.Fprintf(w, "  %s %-8s %d\n", entry.Text, keys.Keystrokes(entry.Text), entry.Count)
	}
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, path := range paths {
		out[i] = filepath.Base(path)
	}
	return out
}
