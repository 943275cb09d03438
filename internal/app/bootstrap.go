package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-holidaylights/internal/config"
	diag "github.com/coreman2200/funtimes-holidaylights/internal/diagnostics"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/led"
	"github.com/coreman2200/funtimes-holidaylights/internal/program"
)

type Core struct {
	Strip     *led.Strip
	Runner    *program.Runner
	Conductor *Conductor
	Variants  map[string]program.Variant
}

// InitCore wires the live strip, the runner and the conductor for cfg. Every
// frame is written to out.
func InitCore(cfg *config.Config, reg *effect.Registry, out led.Driver) (*Core, error) {
	sched, variants, err := Programs(cfg, reg)
	if err != nil {
		return nil, err
	}
	strip := led.NewStrip(out, led.Options{
		Layout:     cfg.StripLayout(),
		Brightness: cfg.Brightness,
		Power:      cfg.Power,
	})
	r := program.NewRunner(strip)
	return &Core{
		Strip:     strip,
		Runner:    r,
		Conductor: NewConductor(r, sched, cfg.FPS),
		Variants:  variants,
	}, nil
}

// Programs assembles the schedule and every named variant from cfg.
// Configured programs with a date range are consulted first, then the xmas
// and halloween slots, which a configured program of the same name replaces.
func Programs(cfg *config.Config, reg *effect.Registry) (program.Schedule, map[string]program.Variant, error) {
	begin, end, err := cfg.Clocks()
	if err != nil {
		return program.Schedule{}, nil, err
	}
	variants := program.Builtins(cfg.Crossfade.Options())
	var entries []program.Entry
	for _, p := range cfg.Programs {
		v, err := program.Compose(p.Spec(cfg.Crossfade), reg, cfg.Count)
		if err != nil {
			return program.Schedule{}, nil, err
		}
		variants[v.Name] = v
		r, dated, err := p.Dates()
		if err != nil {
			return program.Schedule{}, nil, fmt.Errorf("program %s: %w", p.Name, err)
		}
		if dated {
			entries = append(entries, program.Entry{Variant: v, When: r.Contains})
		}
	}
	entries = append(entries,
		program.Entry{Variant: variants[program.NameXMas], When: program.XMasDays.Contains},
		program.Entry{Variant: variants[program.NameHalloween], When: program.HalloweenDays.Contains},
	)

	name := cfg.DefaultProgram
	if name == "" {
		name = program.NameDefault
	}
	def, ok := variants[name]
	if !ok {
		return program.Schedule{}, nil, fmt.Errorf("default_program %q: %w", name, config.ErrInvalid)
	}
	return program.Schedule{Begin: begin, End: end, Entries: entries, Default: &def}, variants, nil
}

// OpenDriver opens the configured output. A hardware driver that fails to
// open falls back to the simulator; the returned name is what actually runs.
func OpenDriver(cfg *config.Config, sink diag.Sink) (led.Driver, string) {
	var (
		d   led.Driver
		err error
	)
	switch cfg.Driver {
	case "spi":
		d, err = led.OpenNRZ(cfg.SPI.Dev, cfg.Count, cfg.SPI.SpeedHz)
	case "term":
		d, err = led.NewTerm(cfg.Count)
	case "console":
		return led.NewConsole(cfg.Count), "console"
	case "sim":
		return led.NewSim(), "sim"
	default:
		err = fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if err != nil {
		log.Warn().Err(err).Str("driver", cfg.Driver).Str("dev", cfg.SPI.Dev).Int("speed_hz", cfg.SPI.SpeedHz).
			Msg("driver init failed; falling back to SIM")
		sink.Push(diag.New(diag.Warn, diag.DriverFallback, "driver init failed; using sim").
			With("driver", cfg.Driver).With("error", err.Error()))
		return led.NewSim(), "sim"
	}
	return d, cfg.Driver
}
