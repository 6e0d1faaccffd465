package pcf8574

import (
	"syscall"

	"github.com/pkg/errors"
)

// Status reports the outcome of an I2C transfer. The numeric values mirror
// the classic Wire endTransmission codes; callers branch on them, so they
// must not be renumbered.
type Status uint8

const (
	Success Status = iota
	BufferTooLong
	AddressNack
	DataNack
	OtherError
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case BufferTooLong:
		return "data too long for transmit buffer"
	case AddressNack:
		return "NACK received on address"
	case DataNack:
		return "NACK received on data"
	default:
		return "bus error"
	}
}

// Error makes a non-Success status usable as a plain error value.
func (s Status) Error() string {
	return "pcf8574: " + s.String()
}

// Err returns the status as an error, nil for Success.
func (s Status) Err() error {
	if s == Success {
		return nil
	}
	return s
}

// statusFromError maps a bus error onto the wire status codes. The generic
// i2c-dev driver surfaces ioctl errnos, which carry the NACK information.
func statusFromError(err error) Status {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, syscall.EMSGSIZE):
		return BufferTooLong
	case errors.Is(err, syscall.ENXIO), errors.Is(err, syscall.ENODEV):
		return AddressNack
	case errors.Is(err, syscall.EREMOTEIO), errors.Is(err, syscall.EIO):
		return DataNack
	default:
		return OtherError
	}
}
