package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/digimosa/concurrent-text-search/internal/config"
	"github.com/digimosa/concurrent-text-search/internal/extractor"
	"github.com/digimosa/concurrent-text-search/internal/scanner"
	"github.com/digimosa/concurrent-text-search/internal/shutdown"
	"github.com/digimosa/concurrent-text-search/internal/supervisor"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	ctx, cancel := shutdown.WithSignal(context.Background())
	code := run(ctx, os.Args, os.Stdin, os.Stdout)
	cancel()
	os.Exit(code)
}

// run executes one session and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) int {
	prog := args[0]
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "YAML config file")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	collect := fs.String("collect", "", "Result collection: ordered or unordered")
	maxWorkers := fs.Int("max-workers", -1, "Maximum number of workers (0 = no limit)")
	fs.Usage = func() {
		fmt.Fprintf(stdout, "Usage:\n\t%s <directory of files>\n", prog)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	// Setup configuration
	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stdout, "[ERROR] %v\n", err)
			return 1
		}
		cfg = loaded
	}
	cfg.RootPath = fs.Arg(0)
	if *verbose {
		cfg.Verbose = true
	}
	if *collect != "" {
		cfg.Collect = *collect
	}
	if *maxWorkers >= 0 {
		cfg.MaxWorkers = *maxWorkers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stdout, "[ERROR] %v\n", err)
		return 1
	}

	if cfg.Verbose {
		log.Printf("[CONFIG] root=%s collect=%s max_workers=%d", cfg.RootPath, cfg.Collect, cfg.MaxWorkers)
	}

	sup := supervisor.New(cfg, extractor.NewFactory())
	coord := scanner.NewCoordinator(cfg, sup, stdin, stdout)

	if err := coord.Start(); err != nil {
		switch {
		case errors.Is(err, scanner.ErrDirectoryNotFound):
			fmt.Fprintln(stdout, "Directory not found")
		case errors.Is(err, supervisor.ErrEmptyDirectory):
			fmt.Fprintln(stdout, "No files in directory")
		default:
			fmt.Fprintf(stdout, "[ERROR] %v\n", err)
		}
		if cfg.Verbose {
			log.Printf("[ERROR] startup failed: %v", err)
		}
		return 1
	}

	if err := coord.Run(ctx); err != nil {
		fmt.Fprintf(stdout, "[ERROR] %v\n", err)
		return 1
	}
	return 0
}
