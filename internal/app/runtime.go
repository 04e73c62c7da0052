package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"autohan/internal/cli"
	"autohan/internal/config"
	"autohan/internal/emitter"
	"autohan/internal/engine"
	"autohan/internal/exception"
	"autohan/internal/layout"
	"autohan/internal/logger"
	"autohan/internal/ngram"
	"autohan/internal/source"
	"autohan/internal/watch"
)

type Runtime struct {
	opts     cli.Options
	stdout   io.Writer
	cfg      config.Config
	log      *slog.Logger
	model    *ngram.Model
	filter   *exception.Filter
	hotkeys  source.Hotkeys
	sink     emitter.Sink
	cleanups []func()
}

func NewRuntime(opts cli.Options, stdout io.Writer) *Runtime {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Runtime{opts: opts, stdout: stdout}
}

func (rt *Runtime) Run(ctx context.Context) error {
	defer rt.cleanup()

	if err := rt.prepareConfig(); err != nil {
		return err
	}
	if err := rt.prepareLogger(); err != nil {
		return err
	}
	if err := rt.prepareModel(); err != nil {
		return err
	}
	if err := rt.prepareFilter(); err != nil {
		return err
	}
	if len(rt.opts.Explain) > 0 {
		return rt.explain()
	}
	if err := rt.prepareHotkeys(); err != nil {
		return err
	}
	rt.buildSink()

	eng, err := rt.newEngine(rt.sink)
	if err != nil {
		return err
	}
	return rt.runEventLoop(ctx, eng)
}

func (rt *Runtime) prepareConfig() error {
	cfg, err := config.Resolve(rt.opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return err
	}
	if err := rt.opts.Apply(&cfg); err != nil {
		return err
	}
	rt.cfg = cfg
	return nil
}

func (rt *Runtime) prepareLogger() error {
	log, err := logger.Init(rt.cfg.Log.Level, rt.cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	rt.log = log
	if rt.cfg.Path != "" {
		rt.log.Debug("loaded config", "path", rt.cfg.Path)
	}
	return nil
}

func (rt *Runtime) prepareModel() error {
	if rt.opts.SampleModel {
		rt.model = ngram.Sample()
		rt.log.Info("using built-in sample model", "unigrams", rt.model.UnigramCount(), "bigrams", rt.model.BigramCount())
		return nil
	}
	model, err := ngram.Load(rt.cfg.Model.Path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	if model.Empty() {
		rt.log.Warn("model has no entries, nothing will be converted automatically", "path", rt.cfg.Model.Path)
	}
	meta := model.Metadata()
	if !model.Consistent() {
		rt.log.Warn("model metadata disagrees with its tables",
			"path", rt.cfg.Model.Path,
			"unique_unigrams", meta.UniqueUnigrams,
			"unique_bigrams", meta.UniqueBigrams,
		)
	}
	rt.log.Info("loaded model",
		"path", rt.cfg.Model.Path,
		"unigrams", model.UnigramCount(),
		"bigrams", model.BigramCount(),
		"total", model.TotalUnigrams(),
		"source", meta.Source,
	)
	rt.model = model
	return nil
}

func (rt *Runtime) prepareFilter() error {
	words := exception.DefaultWords()
	if rt.cfg.Exceptions.File != "" {
		loaded, err := exception.LoadFile(rt.cfg.Exceptions.File)
		if err != nil {
			return err
		}
		words = loaded
	}
	rt.filter = exception.New(words, rt.cfg.ExceptionOptions())
	rt.log.Debug("exception list ready", "words", rt.filter.Len())
	return nil
}

func (rt *Runtime) prepareHotkeys() error {
	hotkeys, err := source.ParseHotkeys(rt.cfg.Hotkeys)
	if err != nil {
		return err
	}
	rt.hotkeys = hotkeys
	return nil
}

func (rt *Runtime) buildSink() {
	terminal := emitter.NewTerminal(rt.stdout)
	rt.registerCleanup(func() { _ = terminal.Close() })
	var sink emitter.Sink = terminal
	if rt.cfg.Output.Clipboard {
		if emitter.Available() {
			sink = emitter.NewClipboard(sink)
		} else {
			rt.log.Warn("clipboard requested but no clipboard utility found")
		}
	}
	rt.sink = sink
}

func (rt *Runtime) newEngine(sink emitter.Sink) (*engine.Engine, error) {
	return engine.New(rt.cfg.Engine, engine.Deps{
		Layout: layout.Dubeolsik(),
		Scorer: ngram.NewScorer(rt.model, rt.cfg.ScoreConfig()),
		Filter: rt.filter,
		Sink:   sink,
		Logger: rt.log.With("component", "engine"),
	})
}

func (rt *Runtime) runEventLoop(ctx context.Context, eng *engine.Engine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return eng.Run(gctx) })
	g.Go(func() error {
		// the session ends with the keyboard
		defer cancel()
		err := source.NewTerminal(rt.hotkeys, rt.log.With("component", "source")).Run(gctx, eng)
		if errors.Is(err, source.ErrInterrupted) {
			return nil
		}
		return err
	})
	if rt.cfg.Exceptions.File != "" && rt.cfg.Exceptions.Watch {
		reloader := watch.NewReloader(rt.cfg.Exceptions.File, rt.cfg.ExceptionOptions(), func(f *exception.Filter) {
			eng.Post(engine.FilterReloaded{Filter: f})
		}, rt.log.With("component", "watch"))
		g.Go(func() error { return reloader.Run(gctx) })
	}
	return g.Wait()
}

func (rt *Runtime) registerCleanup(fn func()) {
	if fn == nil {
		return
	}
	rt.cleanups = append([]func(){fn}, rt.cleanups...)
}

func (rt *Runtime) cleanup() {
	for _, fn := range rt.cleanups {
		fn()
	}
	rt.cleanups = nil
}
