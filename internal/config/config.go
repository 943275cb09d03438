package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/layout"
	"github.com/coreman2200/funtimes-holidaylights/internal/led"
	"github.com/coreman2200/funtimes-holidaylights/internal/program"
	"github.com/coreman2200/funtimes-holidaylights/internal/sequence"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

var ErrInvalid = errors.New("invalid config")

// Drivers lists the accepted values of Config.Driver.
var Drivers = []string{"sim", "spi", "console", "term"}

var eases = []string{"", "linear", "smooth", "smoother", "cubic", "scurve", "fade"}

type SPI struct {
	Dev     string `yaml:"dev"`      // "" picks the first bus, e.g. /dev/spidev0.0
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2500000
}

type Layout struct {
	Segments []layout.Segment `yaml:"segments,omitempty"`
}

type Schedule struct {
	Begin string `yaml:"begin"` // "HH:MM"
	End   string `yaml:"end"`
}

// Crossfade holds the player settings. Nil fields are unset, so an explicit
// dwell_s: 0 or strict: false is kept apart from a missing key.
type Crossfade struct {
	DwellS *float64 `yaml:"dwell_s,omitempty"`
	FadeS  *float64 `yaml:"fade_s,omitempty"`
	Ease   string   `yaml:"ease,omitempty"`
	Strict *bool    `yaml:"strict,omitempty"`
}

// Options converts to player options. Unset fields take
// sequence.DefaultOptions; a negative fade is a hard cut.
func (c Crossfade) Options() sequence.Options {
	o := sequence.DefaultOptions
	if c.DwellS != nil {
		o.Dwell = *c.DwellS
	}
	if c.FadeS != nil {
		o.Fade = *c.FadeS
	}
	if c.Ease != "" {
		o.Ease = model.EaseByName(c.Ease)
	}
	if c.Strict != nil && *c.Strict {
		o.Policy = sequence.WaitForHint
	}
	return o
}

// Or fills the unset fields of c from def.
func (c Crossfade) Or(def Crossfade) Crossfade {
	if c.DwellS == nil {
		c.DwellS = def.DwellS
	}
	if c.FadeS == nil {
		c.FadeS = def.FadeS
	}
	if c.Ease == "" {
		c.Ease = def.Ease
	}
	if c.Strict == nil {
		c.Strict = def.Strict
	}
	return c
}

func ptr[T any](v T) *T { return &v }

type Effect struct {
	Name   string        `yaml:"name"`
	Params effect.Params `yaml:"params,omitempty"`
}

// Program is a user-defined program. From and To ("MM-DD") restrict it to a
// date range; without them it is only reachable as default_program or by name.
type Program struct {
	Name      string   `yaml:"name"`
	From      string   `yaml:"from,omitempty"`
	To        string   `yaml:"to,omitempty"`
	Crossfade `yaml:",inline"`
	Effects   []Effect `yaml:"effects"`
}

// Spec describes the program for program.Compose. Crossfade fields it leaves
// unset come from def.
func (p Program) Spec(def Crossfade) program.Spec {
	s := program.Spec{Name: p.Name, Options: p.Crossfade.Or(def).Options()}
	for _, e := range p.Effects {
		s.Effects = append(s.Effects, program.EffectSpec{Name: e.Name, Params: e.Params})
	}
	return s
}

// Dates reports the program's date range, if it has one.
func (p Program) Dates() (program.DateRange, bool, error) {
	if p.From == "" && p.To == "" {
		return program.DateRange{}, false, nil
	}
	from, err := program.ParseMonthDay(p.From)
	if err != nil {
		return program.DateRange{}, false, err
	}
	to, err := program.ParseMonthDay(p.To)
	if err != nil {
		return program.DateRange{}, false, err
	}
	return program.DateRange{From: from, To: to}, true, nil
}

type Config struct {
	Driver     string  `yaml:"driver"`
	Count      int     `yaml:"count"`
	Brightness float64 `yaml:"brightness"`
	FPS        int     `yaml:"fps"`
	Addr       string  `yaml:"addr"`

	SPI    SPI       `yaml:"spi,omitempty"`
	Layout Layout    `yaml:"layout,omitempty"`
	Power  led.Power `yaml:"power"`

	Schedule       Schedule  `yaml:"schedule"`
	Crossfade      Crossfade `yaml:"crossfade"`
	Programs       []Program `yaml:"programs,omitempty"`
	DefaultProgram string    `yaml:"default_program,omitempty"`
}

func Default() *Config {
	return &Config{
		Driver:     "sim",
		Count:      50,
		Brightness: 1,
		FPS:        30,
		Addr:       ":8080",
		Power:      led.Power{ChanMA: 20},
		Schedule:   Schedule{Begin: "16:30", End: "01:00"},
		Crossfade:  Crossfade{DwellS: ptr(20.0), FadeS: ptr(2.0), Ease: "cubic"},
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if err := Read(path, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Read decodes path into c. Keys missing from the file keep their value in c.
func Read(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// overrides are the HOLIDAYLIGHTS_* variables. Zero values are ignored.
type overrides struct {
	Driver         string  `env:"HOLIDAYLIGHTS_DRIVER"`
	Count          int     `env:"HOLIDAYLIGHTS_COUNT"`
	Brightness     float64 `env:"HOLIDAYLIGHTS_BRIGHTNESS"`
	FPS            int     `env:"HOLIDAYLIGHTS_FPS"`
	Addr           string  `env:"HOLIDAYLIGHTS_ADDR"`
	SPIDev         string  `env:"HOLIDAYLIGHTS_SPI_DEV"`
	SPISpeedHz     int     `env:"HOLIDAYLIGHTS_SPI_SPEED_HZ"`
	BudgetMA       float64 `env:"HOLIDAYLIGHTS_BUDGET_MA"`
	Begin          string  `env:"HOLIDAYLIGHTS_BEGIN"`
	End            string  `env:"HOLIDAYLIGHTS_END"`
	DefaultProgram string  `env:"HOLIDAYLIGHTS_DEFAULT_PROGRAM"`
}

// ApplyEnv loads the given .env files (missing ones are skipped) and then
// applies HOLIDAYLIGHTS_* variables to c. Variables already set in the
// process environment win over .env entries.
func ApplyEnv(c *Config, dotenv ...string) error {
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	var o overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	setString(&c.Driver, o.Driver)
	setString(&c.Addr, o.Addr)
	setString(&c.SPI.Dev, o.SPIDev)
	setString(&c.Schedule.Begin, o.Begin)
	setString(&c.Schedule.End, o.End)
	setString(&c.DefaultProgram, o.DefaultProgram)
	if o.Count != 0 {
		c.Count = o.Count
	}
	if o.FPS != 0 {
		c.FPS = o.FPS
	}
	if o.SPISpeedHz != 0 {
		c.SPI.SpeedHz = o.SPISpeedHz
	}
	if o.Brightness != 0 {
		c.Brightness = o.Brightness
	}
	if o.BudgetMA != 0 {
		c.Power.BudgetMA = o.BudgetMA
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// StripLayout is the configured segments, or a single forward run of Count.
func (c *Config) StripLayout() layout.Layout {
	if len(c.Layout.Segments) == 0 {
		return layout.Linear(c.Count)
	}
	return layout.Layout{Segments: c.Layout.Segments}
}

// Clocks parses the daily window.
func (c *Config) Clocks() (begin, end program.Clock, err error) {
	if begin, err = program.ParseClock(c.Schedule.Begin); err != nil {
		return
	}
	end, err = program.ParseClock(c.Schedule.End)
	return
}

// Validate reports every problem found, each wrapping ErrInvalid.
func Validate(c *Config) error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if !slices.Contains(Drivers, c.Driver) {
		bad("unknown driver %q", c.Driver)
	}
	if c.Count <= 0 {
		bad("count must be positive, got %d", c.Count)
	}
	if c.Brightness < 0 || c.Brightness > 1 {
		bad("brightness %g outside [0,1]", c.Brightness)
	}
	if c.FPS <= 0 {
		bad("fps must be positive, got %d", c.FPS)
	}
	if len(c.Layout.Segments) > 0 {
		l := c.StripLayout()
		if err := l.Validate(); err != nil {
			bad("layout: %v", err)
		} else if l.Count() != c.Count {
			bad("layout covers %d LEDs, count is %d", l.Count(), c.Count)
		}
	}
	if _, _, err := c.Clocks(); err != nil {
		bad("schedule: %v", err)
	}
	if !slices.Contains(eases, c.Crossfade.Ease) {
		bad("crossfade: unknown ease %q", c.Crossfade.Ease)
	}
	if d := c.Crossfade.DwellS; d != nil && *d < 0 {
		bad("crossfade: negative dwell_s %g", *d)
	}

	seen := map[string]bool{}
	for i, p := range c.Programs {
		if p.Name == "" {
			bad("programs[%d]: missing name", i)
		} else if seen[p.Name] {
			bad("programs[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		if _, _, err := p.Dates(); err != nil {
			bad("program %s: %v", p.Name, err)
		}
		if len(p.Effects) == 0 {
			bad("program %s: no effects", p.Name)
		}
		if !slices.Contains(eases, p.Ease) {
			bad("program %s: unknown ease %q", p.Name, p.Ease)
		}
		if d := p.DwellS; d != nil && *d < 0 {
			bad("program %s: negative dwell_s %g", p.Name, *d)
		}
	}
	return errors.Join(errs...)
}
