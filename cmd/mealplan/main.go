package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"meal-planner/internal/cli"
	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.New(newPlanner, os.Stdin, os.Stdout)
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		common.Sync()
		os.Exit(1)
	}
	common.Sync()
}

func newPlanner(_ context.Context, logLevel string) (cli.Planner, func() error, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := common.InitLogger(logLevel); err != nil {
		return nil, nil, err
	}

	llm, err := service.NewProvider(cfg)
	if err != nil {
		return nil, nil, err
	}
	p, err := planner.FromConfig(cfg, llm)
	if err != nil {
		llm.Close()
		return nil, nil, err
	}

	closeFn := func() error {
		return errors.Join(p.Close(), llm.Close())
	}
	return p, closeFn, nil
}
