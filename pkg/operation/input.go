package operation

import (
	"context"
	"fmt"
	"time"

	"github.com/bendahl/uinput"
)

// Key codes accepted by Keyboard.Tap.
const (
	KeyVolumeDown = uinput.KeyVolumedown
	KeyVolumeUp   = uinput.KeyVolumeup
	KeyMute       = uinput.KeyMute
)

// Keyboard synthesizes key events through a temporary uinput device.
type Keyboard struct {
	Path string
	Name string
	// Warmup is how long a fresh device is left alone so the input stack
	// can pick it up before the first event.
	Warmup time.Duration
	// Hold is how long the modifier stays down before the chord key.
	Hold time.Duration
}

func NewKeyboard(path string) *Keyboard {
	if path == "" {
		path = "/dev/uinput"
	}
	return &Keyboard{
		Path:   path,
		Name:   "hkcheck virtual keyboard",
		Warmup: 300 * time.Millisecond,
		Hold:   time.Second,
	}
}

func (k *Keyboard) open(ctx context.Context) (uinput.Keyboard, error) {
	kb, err := uinput.CreateKeyboard(k.Path, []byte(k.Name))
	if err != nil {
		return nil, fmt.Errorf("create uinput keyboard on %s: %w", k.Path, err)
	}
	if err := Pause(ctx, k.Warmup); err != nil {
		kb.Close()
		return nil, err
	}
	return kb, nil
}

// DisplaySwitch sends the Super+P display-switch chord with P tapped twice.
func (k *Keyboard) DisplaySwitch(ctx context.Context) error {
	kb, err := k.open(ctx)
	if err != nil {
		return err
	}
	defer kb.Close()

	if err := kb.KeyDown(uinput.KeyLeftmeta); err != nil {
		return fmt.Errorf("press super: %w", err)
	}
	defer kb.KeyUp(uinput.KeyLeftmeta)

	if err := Pause(ctx, k.Hold); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if err := kb.KeyPress(uinput.KeyP); err != nil {
			return fmt.Errorf("tap p: %w", err)
		}
	}
	return nil
}

// Tap presses and releases a single key.
func (k *Keyboard) Tap(ctx context.Context, key int) error {
	kb, err := k.open(ctx)
	if err != nil {
		return err
	}
	defer kb.Close()

	if err := kb.KeyPress(key); err != nil {
		return fmt.Errorf("tap key %d: %w", key, err)
	}
	return nil
}
