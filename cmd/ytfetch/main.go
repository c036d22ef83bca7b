package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/ytget/ytfetch/internal/cli"
	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/info"
	"github.com/ytget/ytfetch/internal/media"
	"github.com/ytget/ytfetch/internal/platform"
)

// version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	engine := download.NewYTDLPEngine()
	mediaSvc := media.NewService()

	app := &cli.App{
		Printer:    cli.NewStdoutPrinter(os.Getenv("NO_COLOR") != ""),
		In:         os.Stdin,
		LogOutput:  colorable.NewColorableStderr(),
		IsTerminal: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		Downloader: download.NewService(engine, mediaSvc),
		Metadata:   info.NewLister(engine, platform.NewPlaylistParserService()),
		Inspector:  mediaSvc,
		Install:    download.EnsureInstalled,
		Version:    version,
	}

	err := cli.NewRootCommand(app).ExecuteContext(ctx)
	if err != nil {
		app.Printer.Error("%v", err)
	}
	return cli.ExitCode(err)
}
