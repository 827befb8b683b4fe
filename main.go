package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/b0tShaman/neuro-core/config"
	"github.com/b0tShaman/neuro-core/host"
	"github.com/b0tShaman/neuro-core/shell"
)

// -------- MAIN -------- //
func main() {
	configPath := flag.String("config", "", "Config file path (default: ./neuro.yaml)")
	initConfig := flag.Bool("init", false, "Write a default config file and exit")
	seed := flag.Uint64("seed", 0, "Weight initialization seed, overrides the config (0 keeps it)")
	verbose := flag.Bool("v", false, "Log every runtime call")
	flag.Parse()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}

	if *initConfig {
		if err := config.InitConfig(cfgPath); err != nil {
			fmt.Printf("Failed to initialize config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config initialized at: %s\n", cfgPath)
		os.Exit(0)
	}

	// 1. Config
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Runtime.Seed = *seed
	}
	if *verbose {
		cfg.Log.Verbose = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// 2. Runtime
	logger := log.New(os.Stderr, cfg.Log.Prefix, log.LstdFlags)
	rt := host.New(cfg, logger)

	// 3. Shell
	fmt.Println("neuro-core runtime")
	if cfg.Runtime.Seed != 0 {
		fmt.Printf("Seed: %d\n", cfg.Runtime.Seed)
	}

	if err := shell.New(rt, cfg.Shell).Run(ctx); err != nil && err != context.Canceled {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
