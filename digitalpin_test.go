package pcf8574_test

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidoman/embd"
	"github.com/malkusch/pcf8574"
)

func TestDigitalPinLookup(t *testing.T) {
	d := pcf8574.New(busStub{}, 0x21)

	p, err := d.DigitalPin("P3")
	require.NoError(t, err)
	assert.Equal(t, 3, p.N())

	p, err = d.DigitalPin("GPIO_7")
	require.NoError(t, err)
	assert.Equal(t, 7, p.N())

	_, err = d.DigitalPin("P8")
	assert.Error(t, err)
}

func TestDigitalPinWriteRead(t *testing.T) {
	bus := &echoBus{}
	d := pcf8574.New(bus, 0x21)

	p, err := d.DigitalPin("P2")
	require.NoError(t, err)

	require.NoError(t, p.SetDirection(embd.Out))
	require.NoError(t, p.Write(embd.High))

	v, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, embd.High, v)

	require.NoError(t, p.Write(embd.Low))
	v, err = p.Read()
	require.NoError(t, err)
	assert.Equal(t, embd.Low, v)
}

// Unlike the device-level best-effort reads, the embd adapter has an error
// channel and surfaces transport failures with the status as the cause.
func TestDigitalPinErrors(t *testing.T) {
	bus := &flakyBus{fail: true, err: syscall.EREMOTEIO}
	d := pcf8574.New(bus, 0x21)

	p, err := d.DigitalPin("P0")
	require.NoError(t, err)

	err = p.Write(embd.High)
	require.Error(t, err)
	assert.ErrorIs(t, err, pcf8574.DataNack)

	_, err = p.Read()
	require.Error(t, err)
	assert.ErrorIs(t, err, pcf8574.DataNack)
}

func TestDigitalPinWatch(t *testing.T) {
	bus := &scriptBus{reads: []byte{0x10, 0x00, 0x10}}
	d := pcf8574.New(bus, 0x21)

	p, err := d.DigitalPin("P4")
	require.NoError(t, err)

	var events []embd.DigitalPin
	require.NoError(t, p.Watch(embd.EdgeNone, func(pin embd.DigitalPin) {
		events = append(events, pin)
	}))

	d.CheckForInterrupt()
	d.CheckForInterrupt()
	require.Len(t, events, 2)
	assert.Equal(t, p, events[0])

	require.NoError(t, p.StopWatching())
	d.CheckForInterrupt()
	assert.Len(t, events, 2)
}

func TestDigitalPinLegacyHelpers(t *testing.T) {
	// busStub panics on traffic, proving the legacy helpers touch nothing
	d := pcf8574.New(busStub{}, 0x21)

	p, err := d.DigitalPin("P1")
	require.NoError(t, err)

	assert.NoError(t, p.PullUp())
	assert.NoError(t, p.PullDown())
	assert.Error(t, p.ActiveLow(true))
}
