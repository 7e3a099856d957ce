package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qza7849467chensh5/reflective-bind/internal/trace"
)

// resolveLogLevel returns the --log level when set, otherwise configured.
func resolveLogLevel(cmd *cobra.Command, configured trace.Level) (trace.Level, error) {
	levelStr, err := cmd.Root().PersistentFlags().GetString("log")
	if err != nil {
		return 0, fmt.Errorf("failed to get log flag: %w", err)
	}
	if levelStr == "" {
		return configured, nil
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// setupLogging attaches a transform logger at level to ctx.
// The returned cleanup flushes and closes it.
func setupLogging(ctx context.Context, cmd *cobra.Command, level trace.Level) (context.Context, func(), error) {
	root := cmd.Root()

	formatStr, err := root.PersistentFlags().GetString("log-format")
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to get log-format flag: %w", err)
	}
	output, err := root.PersistentFlags().GetString("log-output")
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to get log-output flag: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return ctx, nil, err
	}

	if level == trace.LevelOff {
		return trace.WithLogger(ctx, trace.Nop), func() {}, nil
	}

	logger, err := trace.New(trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: output,
	})
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cleanup := func() {
		if err := logger.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log: flush error: %v\n", err)
		}
		if err := logger.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log: close error: %v\n", err)
		}
	}
	return trace.WithLogger(ctx, logger), cleanup, nil
}
