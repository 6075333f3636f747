package main

import (
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/danielhkuo/polycanvas/cliparse"
	"github.com/danielhkuo/polycanvas/client"
	"github.com/danielhkuo/polycanvas/editor"
)

func main() {
	cfg, err := cliparse.ParseEditorFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	cliparse.SetupLogging(cfg.LogLevel)

	api, err := client.New(cfg.APIURL, nil)
	if err != nil {
		slog.Error("invalid API URL", "error", err)
		os.Exit(1)
	}

	toasts := &toastQueue{}
	session := editor.NewSession(api, toasts)
	defer session.Close()

	game := newGame(session, toasts)
	defer game.Close()

	game.loadBackground(cfg.BackgroundImage)
	session.Load()

	w, h := windowSize(cfg.WindowScale)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("polyedit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	slog.Info("Editor started", "api", cfg.APIURL, "scale", cfg.WindowScale)
	if err := ebiten.RunGame(game); err != nil {
		slog.Error("editor stopped", "error", err)
		os.Exit(1)
	}
}
