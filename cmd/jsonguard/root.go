package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/jsonguard"
	"github.com/reoring/jsonguard/formats"
	"github.com/reoring/jsonguard/internal/config"
	"github.com/reoring/jsonguard/internal/logging"
)

// errRejected marks a run where at least one input failed. It maps to exit
// status 1; every other error is a usage or configuration problem (2).
var errRejected = errors.New("one or more inputs were rejected")

type app struct {
	configPath string
	lang       string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "jsonguard",
		Short:         "Validate JSON documents against JSON Schema with custom error messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVar(&a.lang, "lang", "", "language of default messages (en, ja)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "", "log format (console, json)")

	root.AddCommand(newValidateCmd(a), newCheckCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Lang = a.lang
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
	return nil
}

// compiler returns a Compiler carrying every built-in format.
func (a *app) compiler() (*jsonguard.Compiler, error) {
	c := jsonguard.NewCompiler(a.cfg.CompilerOptions()...)
	if err := formats.RegisterAll(c); err != nil {
		return nil, fmt.Errorf("register formats: %w", err)
	}
	a.log.Debug().Strs("formats", c.Formats()).Msg("compiler ready")
	return c, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
