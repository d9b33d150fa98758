package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"scandash/internal/chart"
	"scandash/internal/config"
	"scandash/internal/loader"
	"scandash/internal/ui"
	"scandash/internal/util"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	baseURL := flag.String("base-url", "", "scan artifact base URL (overrides config)")
	flag.Parse()

	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.Server.BaseURL = *baseURL
	}

	// The TUI owns stdout; logs go to a file.
	logPath := cfg.Logging.File
	if logPath == "" {
		logPath = fmt.Sprintf("/tmp/scandash-%s.log", time.Now().Format("2006-01-02"))
	}
	logger, logFile, err := util.NewFileLogger(cfg.Logging.Level, logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// One-time chart initialisation, before any chart is constructed.
	chart.Setup()

	ld := loader.New(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutSecs)*time.Second)
	logger.Info("starting dashboard", "base_url", cfg.Server.BaseURL, "top_n", cfg.Dashboard.TopN)

	p := tea.NewProgram(
		ui.New(ld, logger, cfg.Dashboard.TopN),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
