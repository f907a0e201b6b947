// wheeltoggle - imwheel mouse/touchpad scroll toggle
// A tray indicator that switches imwheel between mouse and touchpad wheel settings
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"wheeltoggle/internal/autostart"
	"wheeltoggle/internal/config"
	"wheeltoggle/internal/hotkey"
	"wheeltoggle/internal/imwheel"
	"wheeltoggle/internal/mode"
	"wheeltoggle/internal/osutils"
	"wheeltoggle/internal/switcher"
	"wheeltoggle/internal/tray"
)

var (
	version    = "0.1.0"
	configPath = flag.String("config", "", "Path to the settings file")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	showVer    = flag.Bool("version", false, "Show version")
	showStatus = flag.Bool("status", false, "Print the current mode and exit")
	toggleOnce = flag.Bool("toggle", false, "Toggle the mode once and exit")
	applyOnce  = flag.Bool("apply", false, "Apply the persisted mode and exit")
	autoStart  = flag.String("autostart", "", "Start on login: enable or disable")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("wheeltoggle version %s\n", version)
		return
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Initialize settings
	cfgMgr, err := config.NewManager(*configPath)
	if err != nil {
		log.Fatalf("Failed to initialize settings: %v", err)
	}
	if err := cfgMgr.Load(); err != nil {
		log.Warnf("Failed to load settings: %v", err)
	}
	setupLogging(cfgMgr)

	// Handle --autostart flag
	if *autoStart != "" {
		handleAutostart(*autoStart)
		return
	}

	svc, err := newService(cfgMgr)
	if err != nil {
		log.Fatalf("Failed to initialize imwheel: %v", err)
	}

	ctx := context.Background()

	switch {
	case *showStatus:
		printStatus(ctx, cfgMgr, svc)
	case *toggleOnce:
		runToggle(ctx, cfgMgr, svc)
	case *applyOnce:
		runApply(ctx, cfgMgr, svc)
	default:
		runService(ctx, cfgMgr, svc)
	}
}

func setupLogging(cfgMgr *config.Manager) {
	level := cfgMgr.String(config.KeyLogLevel)
	if *logLevel != "" {
		level = *logLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func newService(cfgMgr *config.Manager) (*imwheel.Service, error) {
	writer, err := imwheel.NewWriter(cfgMgr.String(config.KeyRCPath))
	if err != nil {
		return nil, err
	}
	return imwheel.NewService(writer, imwheel.ExecRunner{}, cfgMgr.Commands()), nil
}

func handleAutostart(action string) {
	var err error
	switch action {
	case "enable":
		err = autostart.Enable()
	case "disable":
		err = autostart.Disable()
	default:
		log.Fatalf("Unknown autostart action %q (use enable or disable)", action)
	}
	if err != nil {
		log.Fatalf("Failed to %s autostart: %v", action, err)
	}
	fmt.Printf("Autostart %sd\n", action)
}

func printStatus(ctx context.Context, cfgMgr *config.Manager, svc *imwheel.Service) {
	sw := switcher.New(ctx, cfgMgr, svc)
	m := sw.Mode()

	fmt.Printf("Mode:      %s\n", m)
	fmt.Printf("Installed: %v\n", sw.Installed())
	if sw.Installed() {
		fmt.Printf("Value:     %d\n", m.Value(cfgMgr))
	}
	fmt.Printf("Settings:  %s\n", cfgMgr.Path())
}

func lockPath(cfgMgr *config.Manager) string {
	return filepath.Join(filepath.Dir(cfgMgr.Path()), "wheeltoggle.lock")
}

func runToggle(ctx context.Context, cfgMgr *config.Manager, svc *imwheel.Service) {
	lock, err := osutils.AcquireLock(lockPath(cfgMgr))
	if errors.Is(err, osutils.ErrAlreadyRunning) {
		// The running indicator picks the change up from the settings file.
		m, err := switcher.Advance(cfgMgr)
		if err != nil {
			log.Fatalf("Toggle failed: %v", err)
		}
		fmt.Printf("Switched to %s (applied by the running indicator)\n", m)
		return
	}
	if err != nil {
		log.Fatalf("Failed to acquire instance lock: %v", err)
	}
	defer lock.Release()

	sw := switcher.New(ctx, cfgMgr, svc)
	m, err := sw.Activate()
	if err != nil {
		log.Fatalf("Toggle failed: %v", err)
	}
	fmt.Printf("Switched to %s\n", m)
}

func runApply(ctx context.Context, cfgMgr *config.Manager, svc *imwheel.Service) {
	sw := switcher.New(ctx, cfgMgr, svc)
	if !sw.Installed() {
		log.Fatalf("Apply failed: %v", switcher.ErrNotInstalled)
	}
	if err := sw.ApplyCurrent(); err != nil {
		log.Fatalf("Apply failed: %v", err)
	}
	fmt.Printf("Applied %s\n", sw.Mode())
}

func toggleTitle(m mode.Mode) string {
	return fmt.Sprintf("Switch to %s", m.Toggle())
}

func runService(ctx context.Context, cfgMgr *config.Manager, svc *imwheel.Service) {
	log.Info("wheeltoggle starting...")

	lock, err := osutils.AcquireLock(lockPath(cfgMgr))
	if errors.Is(err, osutils.ErrAlreadyRunning) {
		log.Fatal("wheeltoggle is already running")
	}
	if err != nil {
		log.Fatalf("Failed to acquire instance lock: %v", err)
	}
	defer lock.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notify := func(text string) {
		if !cfgMgr.Bool(config.KeyNotifications) {
			return
		}
		if err := osutils.Notify("wheeltoggle", text, true); err != nil {
			log.Debugf("Notification failed: %v", err)
		}
	}

	sw := switcher.New(ctx, cfgMgr, svc)

	// Tray instance
	t := tray.New("", "Toggle imwheel settings")
	t.SetIcon(sw.Icon())

	sw.SetOnIconChange(t.SetIcon)
	sw.SetOnError(func(err error) {
		notify(fmt.Sprintf("Could not apply scroll settings: %v", err))
	})

	toggleID := t.AddMenuItem(toggleTitle(sw.Mode()), nil)

	// Debouncer for activation sources
	var lastToggle time.Time
	var toggleMux sync.Mutex
	debounce := func() bool {
		toggleMux.Lock()
		defer toggleMux.Unlock()
		if time.Since(lastToggle) < 300*time.Millisecond {
			return false
		}
		lastToggle = time.Now()
		return true
	}

	activate := func() {
		if !debounce() {
			return
		}
		m, err := sw.Activate()
		if err != nil && !errors.Is(err, switcher.ErrNotInstalled) {
			log.Warnf("Toggle error: %v", err)
		}
		t.SetItemTitle(toggleID, toggleTitle(m))
	}

	if sw.Installed() {
		t.SetItemCallback(toggleID, activate)
	} else {
		t.SetItemTitle(toggleID, "imwheel not installed")
		t.SetItemDisabled(toggleID, true)
		notify("imwheel was not found. Install it and restart wheeltoggle.")
	}

	t.AddSeparator()

	var autostartID int
	autostartID = t.AddMenuItem("Start on login", func() {
		enabled := autostart.IsEnabled()
		var err error
		if enabled {
			err = autostart.Disable()
		} else {
			err = autostart.Enable()
		}
		if err != nil {
			log.Warnf("Autostart error: %v", err)
			return
		}
		t.SetItemChecked(autostartID, !enabled)
	})
	t.SetItemChecked(autostartID, autostart.IsEnabled())

	t.AddSeparator()

	t.AddMenuItem("Quit", func() {
		t.Stop()
	})

	// Hotkey manager
	hkMgr := hotkey.NewManager()
	if binding := cfgMgr.String(config.KeyHotkey); binding != "" && sw.Installed() {
		if err := hkMgr.Register(binding, activate); err != nil {
			log.Warnf("Failed to register hotkey: %v", err)
		} else {
			log.Infof("Registered toggle hotkey: %s", binding)
		}
	}
	t.SetOnExit(hkMgr.Clear)

	// Apply persisted mode on startup
	if err := sw.ApplyCurrent(); err != nil {
		log.Warnf("Initial apply failed: %v", err)
	}

	// Reapply when the settings file is edited externally
	if err := cfgMgr.Watch(ctx, func() {
		if err := sw.Reload(); err != nil {
			log.Warnf("Reload failed: %v", err)
		}
		t.SetItemTitle(toggleID, toggleTitle(sw.Mode()))
	}); err != nil {
		log.Warnf("Settings watch disabled: %v", err)
	}

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("Shutting down...")
		t.Stop()
	}()

	log.WithField("mode", sw.Mode()).Info("wheeltoggle running. Press Ctrl+C to stop.")
	t.Run()
}
