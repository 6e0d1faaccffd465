// Package pcf8574 interrupt subsystem.
//
// The chip shares one physical INT line between all 8 pins, so per-pin
// interrupts are emulated in software: every notification triggers a fresh
// read of all pins, the new snapshot is diffed against the previous one and
// the resulting transitions are matched against each pin's trigger mode.
package pcf8574

import (
	"github.com/golang/glog"
	"github.com/kidoman/embd"
	"github.com/pkg/errors"
)

// TriggerMode selects the transition a pin interrupt fires on.
type TriggerMode uint8

const (
	// TriggerNone disarms the slot.
	TriggerNone TriggerMode = iota
	// TriggerLow fires on every dispatch pass while the pin reads LOW,
	// not only on the transition to LOW.
	TriggerLow
	TriggerChange
	TriggerFalling
	TriggerRising
)

// AttachInterrupt arms a pin: callback runs during every dispatch pass
// whose snapshot diff matches mode. Re-attaching an armed pin replaces its
// mode and callback; the old callback is never invoked again. One callback
// per pin.
func (d *PCF8574) AttachInterrupt(pin uint8, callback func(), mode TriggerMode) {
	if pin > 7 || callback == nil {
		return
	}
	d.intMode[pin] = mode
	d.intCallback[pin] = callback
}

// DetachInterrupt disarms a pin, releasing its callback.
func (d *PCF8574) DetachInterrupt(pin uint8) {
	if pin > 7 {
		return
	}
	d.intMode[pin] = TriggerNone
	d.intCallback[pin] = nil
}

// EnableInterrupt wires the host pin connected to the chip's INT line to
// the dispatcher. INT is active low, so dispatch runs on each falling edge.
// Only one host pin per instance; if multiple expanders share the INT line,
// enable it on one of them and run CheckForInterrupt on the others from a
// callback.
func (d *PCF8574) EnableInterrupt(pin embd.DigitalPin) error {
	if d.interruptPin != nil {
		return errors.Errorf("pcf8574: interrupt pin has already been set to %v", d.interruptPin.N())
	}

	if err := pin.SetDirection(embd.In); err != nil {
		return err
	}

	err := pin.Watch(embd.EdgeFalling, func(embd.DigitalPin) {
		d.CheckForInterrupt()
	})
	if err != nil {
		return err
	}

	d.interruptPin = pin
	return nil
}

// DisableInterrupt releases the host pin. Armed pin slots keep their
// configuration and still fire on manual CheckForInterrupt calls.
func (d *PCF8574) DisableInterrupt() error {
	if d.interruptPin == nil {
		return nil
	}

	if err := d.interruptPin.Close(); err != nil {
		return err
	}

	d.interruptPin = nil
	return nil
}

// CheckForInterrupt runs one dispatch pass: refresh the input snapshot,
// diff it against the previous one and invoke the callback of every armed
// pin whose trigger mode matches, in ascending pin order. A notification
// arriving while a pass is in flight returns immediately; the in-flight
// pass reads the chip after the edge, so the dropped notification is
// coalesced into it rather than lost.
//
// Exported so platforms without an edge-capable host pin can poll.
func (d *PCF8574) CheckForInterrupt() {
	if !d.dispatching.CompareAndSwap(false, true) {
		return
	}
	defer d.dispatching.Store(false)

	if st := d.readGPIO(); st != Success {
		// No fresh snapshot to diff against; skip the pass rather
		// than fire callbacks off stale data. There is no caller to
		// report the failure to.
		glog.Warningf("pcf8574: interrupt dispatch skipped: %v", st)
		return
	}

	for pin := uint8(0); pin < 8; pin++ {
		callback := d.intCallback[pin]
		if callback == nil {
			continue
		}

		prev := d.prevInput&(1<<pin) != 0
		curr := d.input&(1<<pin) != 0

		fire := false
		switch d.intMode[pin] {
		case TriggerLow:
			fire = !curr
		case TriggerChange:
			fire = curr != prev
		case TriggerFalling:
			fire = prev && !curr
		case TriggerRising:
			fire = !prev && curr
		}
		if fire {
			callback()
		}
	}
}
