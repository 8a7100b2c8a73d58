package backlightinfo

// Control is a readable and writable brightness node.
type Control interface {
	Brightness() (int, error)
	MaxBrightness() (int, error)
	SetBrightness(int) error
}

// Brightness wraps a Control and remembers the level it had when opened.
type Brightness struct {
	Control
	Original int
}

func NewBrightness(c Control) (*Brightness, error) {
	level, err := c.Brightness()
	if err != nil {
		return nil, err
	}
	return &Brightness{Control: c, Original: level}, nil
}

func (b *Brightness) Restore() error {
	return b.SetBrightness(b.Original)
}

// WasApplied reports whether the current level equals bl. It does not prove
// the level changed.
func (b *Brightness) WasApplied(bl int) (bool, error) {
	cur, err := b.Brightness()
	if err != nil {
		return false, err
	}
	return cur == bl, nil
}

func (b *Brightness) WasUp(bl int) (bool, error) {
	cur, err := b.Brightness()
	if err != nil {
		return false, err
	}
	return cur > bl, nil
}

func (b *Brightness) WasDown(bl int) (bool, error) {
	cur, err := b.Brightness()
	if err != nil {
		return false, err
	}
	return cur < bl, nil
}
