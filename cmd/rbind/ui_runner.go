package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qza7849467chensh5/reflective-bind/internal/driver"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/ui"
)

type runOutcome struct {
	results []driver.FileResult
	err     error
}

// runWithUI runs the pipeline while a progress model renders its events.
func runWithUI(ctx context.Context, title string, fs *source.FileSet, files []string, opts driver.Options) ([]driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Sink = driver.ChannelSink{Ch: events}
		results, err := driver.TransformFiles(ctx, fs, files, runOpts)
		outcomeCh <- runOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// модель могла выйти раньше пайплайна (Ctrl+C): отменяем и дочитываем события
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
