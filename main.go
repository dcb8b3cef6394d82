package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"charm-mint-tui/config"
	"charm-mint-tui/metrics"
	"charm-mint-tui/mint"

	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- MAIN --------------------

func main() {
	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".charm-mint-config.json")

	cfg := config.LoadOrCreate(configPath)
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(1)
	}

	contractABI := mint.DefaultABI()
	if cfg.Contract.ABIPath != "" {
		a, err := mint.LoadABI(cfg.Contract.ABIPath)
		if err != nil {
			fmt.Println("abi error:", err)
			os.Exit(1)
		}
		contractABI = a
	}

	reg := metrics.New()
	var srv *http.Server
	if cfg.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			fmt.Println("metrics listener:", err)
			os.Exit(1)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		srv = &http.Server{Handler: mux}
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintln(os.Stderr, "metrics server:", err)
			}
		}()
	}

	m := newModel(cfg, configPath, contractABI, reg, dialWallet)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err := p.Run()

	m.shutdown()
	if srv != nil {
		_ = srv.Close()
	}
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
