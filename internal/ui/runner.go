package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"narratr/internal/buildpipeline"
)

type buildOutcome struct {
	result buildpipeline.Result
	err    error
}

// RunBuild runs req while rendering progress to out.
func RunBuild(ctx context.Context, title string, out io.Writer, req buildpipeline.Request) (buildpipeline.Result, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		req.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Build(ctx, &req)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	model := NewProgressModel(title, req.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the UI may quit early; keep the producer from blocking
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
