package dsp

import "github.com/jochenvg/go-udev"

// DiscoverTracePort enumerates tty subsystem devices via udev and
// returns the device node of the first one whose parent subsystem is
// usb-serial or usb, a pure-Go analog of this codebase's own cgo libudev
// lookup for a CM108-style USB adapter, applied here to picking a
// default secondary trace port instead. Returns "" with no error when
// nothing matches; this is advisory only and never fatal (spec.md
// §9's capability pattern applies equally to discovery failures).
func DiscoverTracePort() (string, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()

	if err := e.AddMatchSubsystem("tty"); err != nil {
		return "", err
	}

	devices, err := e.Devices()
	if err != nil {
		return "", err
	}

	for _, d := range devices {
		parent := d.Parent()
		if parent == nil {
			continue
		}
		if parent.Subsystem() == "usb-serial" || parent.Subsystem() == "usb" {
			if node := d.Devnode(); node != "" {
				return node, nil
			}
		}
	}

	return "", nil
}
