package subscribe

// UEvent is one kernel object event.
type UEvent struct {
	Action    string
	DevPath   string
	Subsystem string
	Env       map[string]string
}

// LEDChange is a brightness transition of a polled LED.
type LEDChange struct {
	Name string
	Old  int
	New  int
}

// RadioEvent is a radio property change seen on the system bus.
type RadioEvent struct {
	Service  string
	Property string
	Value    any
}
