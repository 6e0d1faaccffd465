package pcf8574

import (
	"time"

	"github.com/kidoman/embd"
	"github.com/pkg/errors"
)

var pins = embd.PinMap{
	&embd.PinDesc{ID: "P0", Aliases: []string{"0", "GPIO_0"}, Caps: embd.CapDigital, DigitalLogical: 0},
	&embd.PinDesc{ID: "P1", Aliases: []string{"1", "GPIO_1"}, Caps: embd.CapDigital, DigitalLogical: 1},
	&embd.PinDesc{ID: "P2", Aliases: []string{"2", "GPIO_2"}, Caps: embd.CapDigital, DigitalLogical: 2},
	&embd.PinDesc{ID: "P3", Aliases: []string{"3", "GPIO_3"}, Caps: embd.CapDigital, DigitalLogical: 3},
	&embd.PinDesc{ID: "P4", Aliases: []string{"4", "GPIO_4"}, Caps: embd.CapDigital, DigitalLogical: 4},
	&embd.PinDesc{ID: "P5", Aliases: []string{"5", "GPIO_5"}, Caps: embd.CapDigital, DigitalLogical: 5},
	&embd.PinDesc{ID: "P6", Aliases: []string{"6", "GPIO_6"}, Caps: embd.CapDigital, DigitalLogical: 6},
	&embd.PinDesc{ID: "P7", Aliases: []string{"7", "GPIO_7"}, Caps: embd.CapDigital, DigitalLogical: 7},
}

type digitalPin struct {
	device *PCF8574
	id     string
	n      int
}

// DigitalPin exposes a single expander pin through the embd.DigitalPin
// interface, so code written against host GPIOs can drive expander pins
// unchanged.
func (d *PCF8574) DigitalPin(key interface{}) (embd.DigitalPin, error) {
	pd, found := pins.Lookup(key, embd.CapDigital)
	if !found {
		return nil, errors.Errorf("gpio: could not find pin matching %v", key)
	}

	return &digitalPin{
		device: d,
		id:     pd.ID,
		n:      pd.DigitalLogical,
	}, nil
}

func (p *digitalPin) N() int {
	return p.n
}

func (p *digitalPin) SetDirection(dir embd.Direction) error {
	mode := Input
	if dir == embd.Out {
		mode = Output
	}
	p.device.PinMode(uint8(p.n), mode)
	return nil
}

func (p *digitalPin) Write(val int) error {
	return errors.Wrapf(p.device.DigitalWrite(uint8(p.n), val).Err(), "gpio: writing pin %v failed", p.id)
}

func (p *digitalPin) Read() (int, error) {
	if err := p.device.readGPIO().Err(); err != nil {
		return 0, errors.Wrapf(err, "gpio: reading pin %v failed", p.id)
	}
	if p.device.input&(1<<uint(p.n)) != 0 {
		return embd.High, nil
	}
	return embd.Low, nil
}

func (p *digitalPin) Watch(edge embd.Edge, handler func(embd.DigitalPin)) error {
	if err := p.SetDirection(embd.In); err != nil {
		return err
	}
	p.device.AttachInterrupt(uint8(p.n), func() { handler(p) }, triggerModeForEdge(edge))
	return nil
}

func triggerModeForEdge(edge embd.Edge) TriggerMode {
	switch edge {
	case embd.EdgeRising:
		return TriggerRising
	case embd.EdgeFalling:
		return TriggerFalling
	default:
		return TriggerChange
	}
}

func (p *digitalPin) StopWatching() error {
	p.device.DetachInterrupt(uint8(p.n))
	return nil
}

func (p *digitalPin) TimePulse(state int) (time.Duration, error) {
	aroundState := embd.Low
	if state == embd.Low {
		aroundState = embd.High
	}

	// Wait for any previous pulse to end
	if err := p.waitFor(aroundState); err != nil {
		return 0, err
	}

	// Wait for the pulse to start
	if err := p.waitFor(state); err != nil {
		return 0, err
	}
	start := time.Now()

	// Wait for the pulse to end
	if err := p.waitFor(aroundState); err != nil {
		return 0, err
	}

	return time.Since(start), nil
}

func (p *digitalPin) waitFor(state int) error {
	for {
		v, err := p.Read()
		if err != nil {
			return err
		}
		if v == state {
			return nil
		}
	}
}

func (p *digitalPin) ActiveLow(b bool) error {
	return errors.New("gpio: not supported")
}

func (p *digitalPin) PullUp() error {
	p.device.PullUp(uint8(p.n))
	return nil
}

func (p *digitalPin) PullDown() error {
	p.device.PullDown(uint8(p.n))
	return nil
}

func (p *digitalPin) Close() error {
	return p.StopWatching()
}
