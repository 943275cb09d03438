package led

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Term draws the strip as full-block cells in the terminal, wrapping at the
// screen width. Esc, q or Ctrl-C close Done.
type Term struct {
	mu     sync.Mutex
	s      tcell.Screen
	count  int
	done   chan struct{}
	closed bool
}

func NewTerm(count int) (*Term, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	return newTerm(s, count)
}

func newTerm(s tcell.Screen, count int) (*Term, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("term init: %w", err)
	}
	s.HideCursor()
	s.Clear()
	t := &Term{s: s, count: count, done: make(chan struct{})}
	go t.poll()
	return t, nil
}

func (t *Term) poll() {
	for {
		switch ev := t.s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				close(t.done)
				return
			}
		case *tcell.EventResize:
			t.s.Sync()
		}
	}
}

// Done is closed when the user asks to quit.
func (t *Term) Done() <-chan struct{} { return t.done }

func (t *Term) Write(rgb []byte) error {
	if err := checkLen(rgb, t.count); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return fmt.Errorf("term: closed")
	}
	w, _ := t.s.Size()
	w = max(w, 1)
	for i := 0; i < t.count; i++ {
		fg := tcell.NewRGBColor(int32(rgb[i*3]), int32(rgb[i*3+1]), int32(rgb[i*3+2]))
		t.s.SetContent(i%w, i/w, '█', nil, tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack))
	}
	t.s.Show()
	return nil
}

func (t *Term) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		t.s.Fini()
	}
	return nil
}
