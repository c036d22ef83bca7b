package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/info"
	"github.com/ytget/ytfetch/internal/media"
	"github.com/ytget/ytfetch/internal/platform"
	"github.com/ytget/ytfetch/internal/ui"
)

// version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytfetch"
	AppName = "ytfetch"
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	engine := download.NewYTDLPEngine()
	downloadSvc := download.NewService(engine, media.NewService())
	lister := info.NewLister(engine, platform.NewPlaylistParserService())

	ui.NewRootUI(myWindow, myApp, downloadSvc, lister)

	myWindow.ShowAndRun()
}
