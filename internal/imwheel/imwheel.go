// Package imwheel drives the external imwheel utility: it renders and writes
// ~/.imwheelrc and launches imwheel to pick up the new rules.
package imwheel

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Default command lines
const (
	DefaultProbeCommand  = "which imwheel"
	DefaultRebindCommand = `imwheel --kill -b "4 5"`
	DefaultQuitCommand   = "imwheel --kill --quit"
)

// Commands are the command line templates used to control imwheel
type Commands struct {
	Probe  string
	Rebind string
	Quit   string
}

// DefaultCommands returns the canonical command lines
func DefaultCommands() Commands {
	return Commands{
		Probe:  DefaultProbeCommand,
		Rebind: DefaultRebindCommand,
		Quit:   DefaultQuitCommand,
	}
}

// Service applies wheel factors by rewriting the configuration and
// relaunching imwheel
type Service struct {
	writer   *Writer
	runner   Runner
	commands Commands
}

// NewService creates a Service
func NewService(writer *Writer, runner Runner, commands Commands) *Service {
	return &Service{
		writer:   writer,
		runner:   runner,
		commands: commands,
	}
}

// IsInstalled runs the probe command and reports whether it printed anything.
// This blocks until the probe exits.
func (s *Service) IsInstalled(ctx context.Context) bool {
	argv, err := ParseCommand(s.commands.Probe)
	if err != nil {
		log.Warnf("imwheel: invalid probe command: %v", err)
		return false
	}

	res, err := s.runner.Run(ctx, argv)
	if err != nil {
		log.Warnf("imwheel: probe failed: %v", err)
		return false
	}
	log.WithFields(log.Fields{
		"stdout": res.Stdout,
		"exit":   res.ExitStatus,
	}).Debug("imwheel: probe finished")

	return len(res.Stdout) > 0
}

// Apply writes the configuration for value and then launches imwheel.
// A value of 0 quits imwheel instead of rebinding. Nothing is launched when
// the write fails. The launched process is not observed.
func (s *Service) Apply(value int) error {
	if err := s.writer.Write(value); err != nil {
		return err
	}

	line := s.commands.Rebind
	if value == 0 {
		line = s.commands.Quit
	}
	s.launch(line)
	return nil
}

func (s *Service) launch(line string) {
	argv, err := ParseCommand(line)
	if err != nil {
		log.Debugf("imwheel: %v", err)
		return
	}
	if err := s.runner.Start(argv); err != nil {
		log.Debugf("imwheel: failed to launch %q: %v", line, err)
	}
}
