package led

import (
	"errors"
	"fmt"
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes an RGB frame to hardware. len(rgb) must be 3*N.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}

var ErrFrameSize = errors.New("rgb length does not match LED count")

func checkLen(rgb []byte, count int) error {
	if len(rgb) != count*3 {
		return fmt.Errorf("%w: got %d bytes for %d LEDs", ErrFrameSize, len(rgb), count)
	}
	return nil
}

// Fanout writes every frame to each driver in turn. All drivers see the frame
// even when an earlier one fails.
type Fanout []Driver

func (f Fanout) Write(rgb []byte) error {
	var errs []error
	for _, d := range f {
		if err := d.Write(rgb); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) Close() error {
	var errs []error
	for _, d := range f {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
