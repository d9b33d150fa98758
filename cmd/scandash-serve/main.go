package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"scandash/internal/config"
	"scandash/internal/serve"
	"scandash/internal/util"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	listen := flag.String("listen", "", "listen address (overrides config)")
	publicDir := flag.String("dir", "", "scan output directory (overrides config)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Serve.Listen = *listen
	}
	if *publicDir != "" {
		cfg.Serve.PublicDir = *publicDir
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	if _, err := os.Stat(cfg.Serve.PublicDir); err != nil {
		fmt.Fprintf(os.Stderr, "scan output directory: %v\n", err)
		os.Exit(1)
	}

	srv := serve.NewServer(cfg.Serve.PublicDir, logger)
	logger.Info("serving scan artifacts", "listen", cfg.Serve.Listen, "dir", cfg.Serve.PublicDir)

	if err := http.ListenAndServe(cfg.Serve.Listen, srv.Handler()); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
