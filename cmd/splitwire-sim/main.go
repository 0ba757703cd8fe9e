// Command splitwire-sim runs a peripheral and a central against a simulated
// line and prints the position events the central decodes. It exists to
// exercise the protocol end to end on a development host, without hardware.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/careyk007/splitwire"
	"github.com/careyk007/splitwire/protocol"
)

const defaultScript = "press:5,release:5,press:12,press:13,release:12,release:13"

const exampleUsage = `  splitwire-sim
  splitwire-sim --script "press:0,press:41,release:0,release:41"
  splitwire-sim --config sim.toml --verbose`

// fileConfig mirrors the TOML config file. Flags override file values.
type fileConfig struct {
	Capacity  int    `toml:"capacity"`
	Positions int    `toml:"positions"`
	Script    string `toml:"script"`
}

func main() {
	var (
		cfgPath   string
		capacity  int
		positions int
		script    string
		verbose   bool
	)

	root := &cobra.Command{
		Use:     "splitwire-sim",
		Short:   "Replay a key script through the one-wire split transport on a simulated line",
		Example: exampleUsage,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				fc, err := loadFileConfig(cfgPath)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("capacity") && fc.Capacity != 0 {
					capacity = fc.Capacity
				}
				if !cmd.Flags().Changed("positions") && fc.Positions != 0 {
					positions = fc.Positions
				}
				if !cmd.Flags().Changed("script") && fc.Script != "" {
					script = fc.Script
				}
			}

			logger := newLogger(verbose)
			return run(logger, capacity, positions, script)
		},
	}

	root.Flags().StringVarP(&cfgPath, "config", "c", "", "path to a TOML config file")
	root.Flags().IntVar(&capacity, "capacity", protocol.DefaultSnapshotSize, "snapshot capacity in bytes")
	root.Flags().IntVar(&positions, "positions", 0, "number of logical positions (0 = 8*capacity)")
	root.Flags().StringVar(&script, "script", defaultScript, "comma-separated press:N / release:N steps")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable protocol-level debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func run(logger zerolog.Logger, capacity, positions int, script string) error {
	steps, err := parseScript(script)
	if err != nil {
		return err
	}

	cfg := splitwire.DefaultConfig()
	cfg.Capacity = capacity
	cfg.NumPositions = positions
	cfg.Logger = logger

	tx, rx, line, err := splitwire.NewLoopbackWithConfig(cfg)
	if err != nil {
		return err
	}

	rx.SetEventCallback(func(ev protocol.PositionEvent) {
		logger.Info().
			Int("position", ev.Position).
			Bool("pressed", ev.Pressed).
			Msg("position changed")
	})

	if err := tx.Initialise(); err != nil {
		return fmt.Errorf("initialise peripheral: %w", err)
	}
	if err := rx.Initialise(); err != nil {
		return fmt.Errorf("initialise central: %w", err)
	}

	for _, s := range steps {
		if s.pressed {
			err = tx.PositionPressed(s.position)
		} else {
			err = tx.PositionReleased(s.position)
		}
		if err != nil {
			return fmt.Errorf("step %s:%d: %w", s.verb(), s.position, err)
		}
		line.Deliver()
	}

	logger.Info().
		Hex("peripheral", tx.Snapshot()).
		Hex("central", rx.Snapshot()).
		Msg("final snapshots")
	return nil
}

type step struct {
	position int
	pressed  bool
}

func (s step) verb() string {
	if s.pressed {
		return "press"
	}
	return "release"
}

func parseScript(script string) ([]step, error) {
	var steps []step
	for _, part := range strings.Split(script, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		verb, num, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("malformed script step %q (want press:N or release:N)", part)
		}
		position, err := strconv.Atoi(num)
		if err != nil {
			return nil, fmt.Errorf("malformed position in script step %q", part)
		}

		switch verb {
		case "press":
			steps = append(steps, step{position: position, pressed: true})
		case "release":
			steps = append(steps, step{position: position, pressed: false})
		default:
			return nil, fmt.Errorf("unknown script verb %q", verb)
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("script is empty")
	}
	return steps, nil
}
