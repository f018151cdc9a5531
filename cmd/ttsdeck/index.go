package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/youruser/ttsdeck/internal/cards"
	"github.com/youruser/ttsdeck/internal/indexstore"
	"github.com/youruser/ttsdeck/internal/setindex"
)

const rebuildDebounce = 500 * time.Millisecond

var (
	indexDir     string
	indexMapping string
	indexOut     string
	indexSQLite  string
	indexWatch   bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the set index from a TTS saved objects directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if indexDir != "" {
			cfg.Index.SavedObjectsDir = indexDir
		}
		if indexMapping != "" {
			cfg.Index.SetMappingPath = indexMapping
		}
		if indexOut != "" {
			cfg.Index.Path = indexOut
		}
		if err := cfg.ValidateForIndex(); err != nil {
			return err
		}

		mapping, err := cards.LoadSetMapping(cfg.Index.SetMappingPath)
		if err != nil {
			return err
		}
		builder := setindex.NewBuilder(mapping, setindex.WithLogger(logger))

		if err := buildIndex(cmd.Context(), builder); err != nil {
			return err
		}
		if !indexWatch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchIndex(ctx, builder)
	},
}

func init() {
	indexCmd.Flags().StringVarP(&indexDir, "dir", "d", "", "TTS saved objects directory")
	indexCmd.Flags().StringVarP(&indexMapping, "mapping", "m", "", "set name to abbreviation table")
	indexCmd.Flags().StringVarP(&indexOut, "out", "o", "", "index artifact to write (.json, .db)")
	indexCmd.Flags().StringVar(&indexSQLite, "sqlite", "", "also write a SQLite copy of the index")
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "rebuild whenever the directory changes")
}

func buildIndex(ctx context.Context, builder *setindex.Builder) error {
	entries, report, err := builder.BuildDir(cfg.Index.SavedObjectsDir)
	if err != nil {
		return err
	}

	if err := indexstore.Save(ctx, cfg.Index.Path, entries); err != nil {
		return err
	}
	if indexSQLite != "" {
		if err := indexstore.SaveSQLite(ctx, indexSQLite, entries); err != nil {
			return err
		}
	}

	logger.Info("set index written",
		zap.String("path", cfg.Index.Path),
		zap.Int("sets", report.Sets),
		zap.Int("unclassified", len(report.Unclassified)),
		zap.Int("skipped_files", len(report.SkippedFiles)))
	return nil
}

func watchIndex(ctx context.Context, builder *setindex.Builder) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.Index.SavedObjectsDir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", cfg.Index.SavedObjectsDir)
	}
	logger.Info("watching for saved object changes", zap.String("dir", cfg.Index.SavedObjectsDir))

	// Rebuilds run on this goroutine only; events just arm the timer.
	timer := time.NewTimer(rebuildDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".json") {
				continue
			}
			logger.Debug("saved object changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(rebuildDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			if err := buildIndex(ctx, builder); err != nil {
				// a listing failure is fatal for one build, not for the watch
				logger.Error("index rebuild failed", zap.Error(err))
			}
		}
	}
}
