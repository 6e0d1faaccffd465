// Package pcf8574 allows interfacing with the PCF8574 8-bit I2C I/O
// expansion chip.
package pcf8574

import (
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/kidoman/embd"
)

// DefaultAddress is the chip address with A0..A2 tied low.
const DefaultAddress = 0x21

// PCF8574 8-bit I2C I/O expansion chip.
//
// The chip has no internal registers: a write sets the quasi-bidirectional
// latch of all 8 pins at once, a read returns the current level of all 8
// pins. Direction bookkeeping therefore lives entirely in the driver.
type PCF8574 struct {
	Bus  embd.I2CBus
	Addr byte

	// Cached chip states
	output    byte // desired level of output pins
	input     byte // last snapshot read from the chip
	prevInput byte // snapshot the input held before the last read
	dirMask   byte // bit set means the pin is an output

	// Per-pin interrupt emulation state
	intMode     [8]TriggerMode
	intCallback [8]func()
	dispatching atomic.Bool

	// reference to the host pin wired to the chip's INT line.
	interruptPin embd.DigitalPin
}

// New creates a new PCF8574 interface. An addr of 0 selects DefaultAddress.
func New(bus embd.I2CBus, addr byte) *PCF8574 {
	if addr == 0 {
		addr = DefaultAddress
	}
	return &PCF8574{
		Bus:  bus,
		Addr: addr,
	}
}

// readGPIO reads all 8 pin levels into the input snapshot. The prior
// snapshot is kept alongside it so interrupt dispatch can diff the two. On
// a transport failure both snapshots are left untouched.
func (d *PCF8574) readGPIO() Status {
	b, err := d.Bus.ReadByte(d.Addr)
	if err != nil {
		return statusFromError(err)
	}
	glog.V(1).Infof("pcf8574: reading [%#02x] from pins", b)
	d.prevInput = d.input
	d.input = b
	return Success
}

// updateGPIO transmits the output latch. Input pins carry over their level
// from the last snapshot so the write never drives them; readGPIO must have
// run at least once since the last direction change.
func (d *PCF8574) updateGPIO() Status {
	b := (d.input &^ d.dirMask) | (d.output & d.dirMask)
	glog.V(1).Infof("pcf8574: writing [%#02x] to pins", b)
	return statusFromError(d.Bus.WriteByte(d.Addr, b))
}

// Write sets the state of all 8 pins in one go, one bit per pin.
func (d *PCF8574) Write(value byte) Status {
	d.output = value
	return d.updateGPIO()
}

// Read returns the current state of all 8 pins in one go. The read is best
// effort: on a transport failure the last good snapshot is returned.
func (d *PCF8574) Read() byte {
	if st := d.readGPIO(); st != Success {
		glog.V(1).Infof("pcf8574: read kept stale snapshot: %v", st)
	}
	return d.input
}

// Clear sets all pins LOW. Exactly like Write(0x00).
func (d *PCF8574) Clear() Status {
	return d.Write(0x00)
}

// Set sets all pins HIGH. Exactly like Write(0xFF).
func (d *PCF8574) Set() Status {
	return d.Write(0xFF)
}

// Close disconnects from the interrupt pin, if one was enabled.
func (d *PCF8574) Close() error {
	return d.DisableInterrupt()
}
