package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type procConfig struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	build := []procConfig{
		{
			Name: "build-ui-wasm",
			Args: []string{"go", "build", "-o", "ui/main.wasm", "./cmd/ui-wasm"},
			Env:  []string{"GOOS=js", "GOARCH=wasm"},
		},
		{
			Name: "copy-wasm-exec",
			Args: []string{"sh", "-c", `cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" ui/wasm_exec.js`},
		},
	}
	serve := []procConfig{
		{
			Name: "ui",
			Args: []string{
				"go", "run", "./cmd/ui-server",
				"-config", "config.yaml",
				"-assets", "ui",
				"-templates", "ui/templates",
			},
		},
	}

	if err := runAll(ctx, build); err != nil {
		fmt.Fprintf(os.Stderr, "plantdoc-ui build failed: %v\n", err)
		os.Exit(1)
	}
	if err := runAll(ctx, serve); err != nil {
		fmt.Fprintf(os.Stderr, "plantdoc-ui exited with error: %v\n", err)
		os.Exit(1)
	}
}

// runAll starts every process and waits for them. The first failure cancels
// the rest; exits caused by ctx cancellation are not errors.
func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return errors.New("no processes configured")
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, cfg := range procs {
		cfg := cfg
		g.Go(func() error {
			cmd := exec.CommandContext(gctx, cfg.Args[0], cfg.Args[1:]...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if cfg.Dir != "" {
				cmd.Dir = cfg.Dir
			}
			if len(cfg.Env) > 0 {
				cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
			}
			if err := cmd.Start(); err != nil {
				return fmt.Errorf("%s start: %w", cfg.Name, err)
			}
			if err := cmd.Wait(); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%s exited: %w", cfg.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
