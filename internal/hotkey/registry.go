package hotkey

import "fmt"

var registry = []Test{
	{
		Name:        "airplane_mode",
		Description: "ACPI radio button toggles wlan and bluetooth soft block",
		Run:         AirplaneMode,
	},
	{
		Name:        "brightness",
		Description: "ACPI brightness up/down changes the panel backlight",
		Run:         BrightnessKeys,
	},
	{
		Name:        "display_switch",
		Description: "Super+P switches the active monitors and back (needs an external monitor)",
		Run:         DisplaySwitch,
	},
	{
		Name:        "keyboard_backlight",
		Description: "every keyboard backlight level can be applied",
		Run:         KeyboardBacklight,
	},
	{
		Name:        "suspend_button",
		Description: "ACPI sleep button suspends and the RTC alarm resumes",
		Run:         SuspendButton,
	},
	{
		Name:        "volume",
		Description: "volume and mute keys change the default audio sink",
		Run:         VolumeKeys,
	},
}

// Tests returns the registered checks in run order.
func Tests() []Test {
	return append([]Test(nil), registry...)
}

func Lookup(name string) (Test, error) {
	for _, t := range registry {
		if t.Name == name {
			return t, nil
		}
	}
	return Test{}, fmt.Errorf("%w: %q", ErrUnknownTest, name)
}

// Select resolves names to checks. "all" expands to every check; duplicates
// are dropped.
func Select(names []string) ([]Test, error) {
	var out []Test
	seen := make(map[string]bool)

	add := func(t Test) {
		if !seen[t.Name] {
			seen[t.Name] = true
			out = append(out, t)
		}
	}

	for _, name := range names {
		if name == "all" {
			for _, t := range registry {
				add(t)
			}
			continue
		}
		t, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		add(t)
	}
	return out, nil
}
