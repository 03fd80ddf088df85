// Package main is the entry point for the Kestrel editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/client"
	"github.com/kestreledit/kestrel/internal/config"
	"github.com/kestreledit/kestrel/internal/diag"
	"github.com/kestreledit/kestrel/internal/editor"
	"github.com/kestreledit/kestrel/internal/hook"
	"github.com/kestreledit/kestrel/internal/option"
	"github.com/kestreledit/kestrel/internal/ui"
	"github.com/kestreledit/kestrel/internal/window"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	hooksPath  string
	logPath    string
	logLevel   string
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log, logCleanup, err := openLog(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logCleanup()

	store := option.NewStore()
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := cfg.Apply(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	hooks := hook.NewRegistry()
	if opts.hooksPath != "" {
		luaHooks, err := hook.LoadLuaFile(opts.hooksPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer luaHooks.Close()
		hooks.AddCatchAll(luaHooks)
	}

	buf, err := openBuffer(opts.files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	term, err := ui.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Close()

	// The terminal reports input availability from its event goroutine;
	// everything below runs on this goroutine only.
	inputCh := make(chan ui.EventMode, 16)
	reloadCh := make(chan struct{}, 1)

	registry := client.NewRegistry()
	w, h := term.Dimensions()
	cli, err := client.New(client.Config{
		Name:     "client0",
		UI:       term,
		Engine:   editor.NewBasic(buf, ui.DefaultPalette().Get(ui.FaceStatusLine)),
		Window:   window.New(buf, w, h),
		Registry: registry,
		Options:  store,
		Hooks:    hooks,
		Log:      log,
		Env:      processEnv(),
		OnInput:  func(mode ui.EventMode) { inputCh <- mode },
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	watcher, err := buffer.NewWatcher(
		func(string) {
			select {
			case reloadCh <- struct{}{}:
			default:
			}
		},
		func(err error) { log.Warnf("watcher: %v", err) },
	)
	if err != nil {
		log.Warnf("file watching disabled: %v", err)
	} else {
		defer watcher.Close()
		if err := watcher.Watch(buf); err != nil {
			log.Warnf("watching %s: %v", buf.Name(), err)
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	cli.RedrawIfNeeded()

	for {
		select {
		case mode := <-inputCh:
			out := cli.HandleAvailableInput(mode)
			if out.Removed {
				if out.Graceful {
					return 0
				}
				return 1
			}
			cli.CheckBufferReload()
			cli.RedrawIfNeeded()

		case <-reloadCh:
			cli.CheckBufferReload()
			cli.RedrawIfNeeded()

		case <-signals:
			registry.Remove(cli)
			return 0
		}
	}
}

func openBuffer(files []string) (*buffer.Buffer, error) {
	if len(files) == 0 {
		return buffer.NewScratch("*scratch*"), nil
	}
	return buffer.OpenFile(files[0])
}

func openLog(opts options) (*diag.Logger, func(), error) {
	if opts.logPath == "" {
		return diag.Discard(), func() {}, nil
	}

	f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	level := diag.LevelInfo
	switch opts.logLevel {
	case "debug":
		level = diag.LevelDebug
	case "warn":
		level = diag.LevelWarn
	case "error":
		level = diag.LevelError
	}
	return diag.New(level, f, ""), func() { f.Close() }, nil
}

func processEnv() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				env[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return env
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.yaml or .toml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.hooksPath, "hooks", "", "Path to a Lua hook script")
	flag.StringVar(&opts.logPath, "log", "", "Path to the diagnostics log file")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Kestrel - modal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: kestrel [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Kestrel %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
		os.Exit(1)
	}

	opts.files = flag.Args()
	return opts
}
