package pcf8574

import (
	"time"

	"github.com/golang/glog"
	"github.com/kidoman/embd"
)

// Mode configures the direction of a single expander pin.
type Mode uint8

const (
	Input Mode = iota
	// InputPullup behaves exactly like Input. The chip has no software
	// pull-up control; the mode exists for circuits wired to external
	// pull-up resistors.
	InputPullup
	Output
)

// PinMode sets the direction of a pin. The change takes electrical effect
// immediately unless update is given as false, in which case it is applied
// by the next write. Pins outside 0..7 are ignored.
func (d *PCF8574) PinMode(pin uint8, mode Mode, update ...bool) {
	if pin > 7 {
		return
	}
	if mode == Output {
		d.dirMask |= 1 << pin
	} else {
		d.dirMask &^= 1 << pin
	}
	glog.V(1).Infof("pcf8574: pin %d direction changed, mask [%#02x]", pin, d.dirMask)
	if len(update) == 0 || update[0] {
		d.readGPIO()
		d.updateGPIO()
	}
}

// DigitalWrite latches an output pin to embd.High or embd.Low and pushes
// the latch to the chip.
func (d *PCF8574) DigitalWrite(pin uint8, value int) Status {
	if pin > 7 {
		return Success
	}
	if value == embd.Low {
		d.output &^= 1 << pin
	} else {
		d.output |= 1 << pin
	}
	return d.updateGPIO()
}

// DigitalRead reads the current state of a pin. The read is best effort: on
// a transport failure the bit of the last good snapshot is returned.
func (d *PCF8574) DigitalRead(pin uint8) int {
	if pin > 7 {
		return embd.Low
	}
	if st := d.readGPIO(); st != Success {
		glog.V(1).Infof("pcf8574: pin %d read kept stale snapshot: %v", pin, st)
	}
	if d.input&(1<<pin) != 0 {
		return embd.High
	}
	return embd.Low
}

// Toggle inverts the latched state of an output pin.
func (d *PCF8574) Toggle(pin uint8) Status {
	if pin > 7 {
		return Success
	}
	if d.output&(1<<pin) != 0 {
		return d.DigitalWrite(pin, embd.Low)
	}
	return d.DigitalWrite(pin, embd.High)
}

// PullUp marks a pin as pulled up.
//
// Deprecated: the chip has no pull resistor control. Retained for source
// compatibility, does nothing.
func (d *PCF8574) PullUp(pin uint8) {}

// PullDown marks a pin as pulled down.
//
// Deprecated: the chip has no pull resistor control. Retained for source
// compatibility, does nothing.
func (d *PCF8574) PullDown(pin uint8) {}

// Blink drives count ON/OFF couples on a pin, spread evenly over the given
// duration. It blocks the caller for the whole duration.
//
// Deprecated: not recommended for new code.
func (d *PCF8574) Blink(pin uint8, count uint16, duration time.Duration) {
	if count == 0 {
		return
	}
	half := duration / time.Duration(count) / 2
	for i := uint16(0); i < count; i++ {
		d.DigitalWrite(pin, embd.High)
		time.Sleep(half)
		d.DigitalWrite(pin, embd.Low)
		time.Sleep(half)
	}
}
