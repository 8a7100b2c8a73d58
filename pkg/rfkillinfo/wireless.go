package rfkillinfo

import "context"

// Radio states as reported by Wireless.State.
const (
	Off = 0
	On  = 1
)

// Reader reports the soft block state of a radio class. Rfkill is the
// production implementation.
type Reader interface {
	SoftUnblocked(ctx context.Context, name string) (bool, error)
}

// Wireless tracks one radio class by rfkill name.
type Wireless struct {
	Name   string
	Reader Reader
}

func NewWireless(name string, r Reader) *Wireless {
	if r == nil {
		r = Rfkill{}
	}
	return &Wireless{Name: name, Reader: r}
}

// State returns On when the radio is not soft blocked, Off otherwise.
func (w *Wireless) State(ctx context.Context) (int, error) {
	up, err := w.Reader.SoftUnblocked(ctx, w.Name)
	if err != nil {
		return Off, err
	}
	if up {
		return On, nil
	}
	return Off, nil
}

// WasToggled reports whether the current state differs from prev.
func (w *Wireless) WasToggled(ctx context.Context, prev int) (bool, error) {
	cur, err := w.State(ctx)
	if err != nil {
		return false, err
	}
	return cur != prev, nil
}
