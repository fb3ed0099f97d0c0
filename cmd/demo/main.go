package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thorstone137/frankentui-sub012/tui"
)

var (
	flagAltScreen    bool
	flagInline       bool
	flagInlineHeight int
	flagFPS          int
	flagConfigPath   string
)

func main() {
	root := &cobra.Command{
		Use:   "demo",
		Short: "frankentui demo terminal application",
		RunE:  runDemo,
	}
	root.Flags().BoolVar(&flagAltScreen, "alt-screen", false, "use the alternate screen buffer")
	root.Flags().BoolVar(&flagInline, "inline", false, "render inline in the normal scrollback")
	root.Flags().IntVar(&flagInlineHeight, "inline-height", 0, "fixed height for --inline (0 = keep the config file's inline_height)")
	root.Flags().IntVar(&flagFPS, "fps", 0, "override the config file's frame rate")
	root.Flags().StringVar(&flagConfigPath, "config", "", "path to a YAML config file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(flagConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagFPS != 0 {
		cfg.FPS = flagFPS
	}
	if flagInlineHeight != 0 {
		cfg.InlineHeight = flagInlineHeight
	}
	mode := modeFromConfig(cfg)
	if flagAltScreen {
		mode = tui.AltScreen
	}
	if flagInline {
		mode = tui.Inline
	}

	fd := int(os.Stdin.Fd())
	width, height, err := term.GetSize(fd)
	if err != nil {
		width, height = 80, 24
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	caps := tui.DetectCapabilities()
	if cfg.TrueColor != nil {
		caps.TrueColor = *cfg.TrueColor
	}

	model := newCounterModel()
	rt := tui.NewRuntime(model, os.Stdout, width, height, tui.RuntimeOptions{
		Mode:       mode,
		MaxHeight:  cfg.InlineHeight,
		Caps:       caps,
		Scrollback: cfg.Scrollback,
	})

	stdin := tui.NewStdinSource(os.Stdin)
	resize := tui.NewSignalResizeSource(fd)
	events := tui.MergeSources(stdin, resize)
	defer events.Close()

	return rt.Run(events)
}

func modeFromConfig(cfg Config) tui.ScreenMode {
	switch cfg.Mode {
	case "inline":
		return tui.Inline
	case "inline-auto":
		return tui.InlineAuto
	default:
		return tui.AltScreen
	}
}
