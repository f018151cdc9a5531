package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/ttsdeck/internal/api"
	"github.com/youruser/ttsdeck/internal/config"
	"github.com/youruser/ttsdeck/internal/indexstore"
	"github.com/youruser/ttsdeck/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("TTSDECK_CONFIG"))
	if err != nil {
		return err
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Println("falling back to the nop logger:", err)
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	// The set index is built offline by "ttsdeck index"; load it once.
	ix, err := indexstore.Load(cfg.Index.Path)
	if err != nil {
		return err
	}
	logger.Info("set index loaded", zap.String("path", cfg.Index.Path), zap.Int("sets", ix.Len()))

	srv, err := api.NewServer(ix, logger, api.ServerOptions{
		CardBackPath: cfg.Export.CardBackPath,
		Append:       cfg.Export.Append,
	})
	if err != nil {
		return err
	}

	r := gin.Default()
	api.RegisterRoutes(r, srv)

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	logger.Info("starting server", zap.String("url", "http://localhost"+addr))
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
