package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/svglens/svglens/internal/config"
	"github.com/svglens/svglens/internal/document"
	"github.com/svglens/svglens/internal/preview"
	"github.com/svglens/svglens/internal/raster"
	"github.com/svglens/svglens/internal/ui"
	"github.com/svglens/svglens/internal/workspace"
)

func main() {
	opts := parseFlags()
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(opts.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ws := workspace.New()
	for i, path := range opts.Paths {
		buf, err := document.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		ws.Add(&workspace.Editor{Buf: buf}, i == 0)
	}

	renderer := raster.NewSVG()
	newSession := func(mode preview.Mode, doc document.Document) *preview.Session {
		return preview.NewSession(mode, doc, preview.NewPipeline(renderer, logger), float32(opts.Scale), logger)
	}
	commands := workspace.PreviewCommands(newSession)

	if opts.Follow {
		openFollowingAtStartup(ws, commands)
	}

	program := tea.NewProgram(
		ui.New(ws, commands, logger, ui.Config{Fit: opts.Fit}),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, runErr := program.Run()
	ws.CloseAll()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "ui error: %v\n", runErr)
		os.Exit(1)
	}
}

// openFollowingAtStartup activates the first eligible editor and opens a
// following preview for it. Without an eligible document this is a no-op
// and the workspace opens plain.
func openFollowingAtStartup(ws *workspace.Workspace, commands []workspace.Command) {
	for i, item := range ws.Items() {
		ed, ok := item.(*workspace.Editor)
		if !ok || !preview.Eligible(ed.Buf) {
			continue
		}
		ws.Activate(i)
		break
	}
	for _, c := range commands {
		if c.ID == "preview.open-following" && c.Eligible(ws) {
			c.Run(ws)
			return
		}
	}
}

func parseFlags() config.Options {
	var opts config.Options
	flag.BoolVar(&opts.Follow, "follow", false, "open a following preview at startup")
	flag.Float64Var(&opts.Scale, "scale", 1.0, "initial preview scale factor")
	flag.StringVar(&opts.LogFile, "log", "", "write structured logs to this file")
	flag.BoolVar(&opts.Fit, "fit", false, "start the preview pane in fit-to-pane mode")
	flag.Usage = usage
	flag.Parse()
	opts.Paths = flag.Args()
	return opts
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: svglens [flags] file.svg [file...]\n\n")
	flag.PrintDefaults()
}

// newLogger opens the structured log sink. The TUI owns the terminal, so
// logs go to a file or nowhere.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { f.Close() }, nil
}
