package led

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sim keeps the last frame and logs a compact summary of every frame at trace
// level. Useful for headless runs and tests.
type Sim struct {
	mu    sync.Mutex
	count int
	last  []byte
	log   zerolog.Logger
}

func NewSim() *Sim {
	return &Sim{log: log.With().Str("component", "sim").Logger()}
}

func (d *Sim) Write(rgb []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.count++
	d.last = append(d.last[:0], rgb...)
	if e := d.log.Trace(); e.Enabled() {
		var r, g, b float64
		for i := 0; i+2 < len(rgb); i += 3 {
			r += float64(rgb[i])
			g += float64(rgb[i+1])
			b += float64(rgb[i+2])
		}
		n := float64(max(len(rgb)/3, 1))
		e.Int("frame", d.count).
			Floats64("avg", []float64{r / n, g / n, b / n}).
			Bytes("first", rgb[:min(3, len(rgb))]).
			Msg("frame")
	}
	return nil
}

// Frames reports how many frames were written.
func (d *Sim) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Last returns a copy of the most recent frame.
func (d *Sim) Last() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), d.last...)
}

func (d *Sim) Close() error { return nil }
