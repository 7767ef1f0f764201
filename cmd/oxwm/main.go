// Command oxwm is a dwm-inspired tiling X11 window manager: flag
// parsing, config resolution/fallback and the WM's Init/Run/Close
// lifecycle live here.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/xsoder/oxwm/internal/config"
	"github.com/xsoder/oxwm/internal/wm"
)

const (
	exitOK             = 0
	exitStartupFailure = 1
	exitConfigError    = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		initFlag   = flag.Bool("init", false, "write a default config to the config path and exit")
		configPath = flag.String("config", "", "path to config.toml (default: $XDG_CONFIG_HOME/oxwm/config.toml)")
	)
	flag.Parse()

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}

	if *initFlag {
		if err := config.WriteTemplate(path); err != nil {
			fmt.Fprintln(os.Stderr, "oxwm --init:", err)
			return exitConfigError
		}
		fmt.Println("wrote", path)
		return exitOK
	}

	if os.Getenv("DISPLAY") == "" {
		fmt.Fprintln(os.Stderr, "oxwm: $DISPLAY is not set")
		return exitStartupFailure
	}

	cfg, err := loadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "oxwm: config:", err)
		return exitConfigError
	}

	manager, err := wm.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "oxwm:", err)
		return exitStartupFailure
	}
	if err := manager.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "oxwm:", err)
		return exitStartupFailure
	}

	runErr := manager.Run()
	manager.Close()
	if runErr != nil {
		log.Println("oxwm: event loop exited:", runErr)
		return exitStartupFailure
	}

	if manager.ShouldRestart() {
		return reexec()
	}
	return exitOK
}

// loadConfig parses path, falling back to the built-in default config
// (marked Degraded so the bar shows the badge) on any parse failure
// rather than refusing to start.
func loadConfig(path string) (*config.Settled, error) {
	exists, err := config.Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return config.Default(""), nil
	}
	settled, err := config.Load(path)
	if err != nil {
		log.Println("oxwm: falling back to defaults:", err)
		return config.Default(err.Error()), nil
	}
	return settled, nil
}

// reexec replaces the current process image with itself using the
// original argv; nothing survives the restart except what the X server
// itself preserves. On success it never returns.
func reexec() int {
	exe, err := os.Executable()
	if err != nil {
		fmt.Fprintln(os.Stderr, "oxwm: restart: could not resolve executable:", err)
		return exitStartupFailure
	}
	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		fmt.Fprintln(os.Stderr, "oxwm: restart: exec failed:", err)
		return exitStartupFailure
	}
	return exitOK
}
