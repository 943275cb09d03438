package led

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// DefaultSPIFreq suits WS2812 strips refreshed at 800 kHz.
const DefaultSPIFreq = 2500 * physic.KiloHertz

// NRZ drives a WS2812-style strip by NRZ-encoding frames onto an SPI bus.
type NRZ struct {
	mu    sync.Mutex
	dev   *nrzled.Dev
	port  spi.PortCloser
	count int
}

// OpenNRZ opens the SPI port named dev ("" picks the first registered bus).
// speedHz <= 0 uses DefaultSPIFreq.
func OpenNRZ(dev string, count int, speedHz int) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", dev, err)
	}
	freq := DefaultSPIFreq
	if speedHz > 0 {
		freq = physic.Frequency(speedHz) * physic.Hertz
	}
	d, err := newNRZ(p, count, freq)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	d.port = p
	log.Info().Str("component", "led").Str("port", p.String()).Int("count", count).Stringer("freq", freq).Msg("nrz strip ready")
	return d, nil
}

func newNRZ(p spi.Port, count int, freq physic.Frequency) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: count, Channels: 3, Freq: freq})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{dev: d, count: count}, nil
}

func (n *NRZ) Write(rgb []byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dev == nil {
		return fmt.Errorf("nrz: closed")
	}
	if err := checkLen(rgb, n.count); err != nil {
		return err
	}
	if _, err := n.dev.Write(rgb); err != nil {
		return fmt.Errorf("nrz write: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the port.
func (n *NRZ) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dev == nil {
		return nil
	}
	err := n.dev.Halt()
	n.dev = nil
	if n.port != nil {
		if cerr := n.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
