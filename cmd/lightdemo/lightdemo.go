package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/kidoman/embd"
	"github.com/malkusch/pcf8574"

	_ "github.com/kidoman/embd/host/all"
)

// INT connected to GPIO_17 of RPI
// P0, P1 = buttons with external pull-ups
// P2 .. P7 connected to LEDs

func main() {
	flag.Parse()

	embd.SetHost(embd.HostRPi, 2)

	if err := embd.InitI2C(); err != nil {
		panic(err)
	}
	defer embd.CloseI2C()

	if err := embd.InitGPIO(); err != nil {
		panic(err)
	}
	defer embd.CloseGPIO()

	bus := embd.NewI2CBus(1)
	fmt.Println("connected to bus")
	expander := pcf8574.New(bus, pcf8574.DefaultAddress)

	expander.PinMode(0, pcf8574.InputPullup)
	expander.PinMode(1, pcf8574.InputPullup)
	for pin := uint8(2); pin <= 7; pin++ {
		expander.PinMode(pin, pcf8574.Output)
	}

	presses := make(chan uint8, 8)
	expander.AttachInterrupt(0, func() { presses <- 0 }, pcf8574.TriggerFalling)
	expander.AttachInterrupt(1, func() { presses <- 1 }, pcf8574.TriggerFalling)

	irqPin, err := embd.NewDigitalPin("GPIO_17")
	if err != nil {
		panic(err)
	}

	if err := expander.EnableInterrupt(irqPin); err != nil {
		panic(err)
	}
	defer expander.Close()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	timer := time.Tick(2 * time.Second)

	led := uint8(2)
	for {
		select {
		case pin := <-presses:
			fmt.Printf("button %d pressed, pins [%#02x]\n", pin, expander.Read())
			expander.Blink(7, 2, 400*time.Millisecond)
		case <-timer:
			if st := expander.Toggle(led); st != pcf8574.Success {
				fmt.Printf("toggle of led %d failed: %v\n", led, st)
			}
			led++
			if led > 6 {
				led = 2
			}
		case <-c:
			return
		}
	}
}
