package gxid

import "errors"

var (
	// ErrInvalidID indicates that the string is not a canonical 20 character xid
	ErrInvalidID = errors.New("gxid: invalid ID")

	// ErrInvalidLength indicates that the ID byte slice has incorrect length
	ErrInvalidLength = errors.New("gxid: invalid ID length (expected 12 bytes)")

	// ErrClockBeforeEpoch is returned when the clock reports a time before the Unix epoch
	ErrClockBeforeEpoch = errors.New("gxid: clock reports a time before the Unix epoch")

	// ErrEmptyProbe is returned by a MachineProbe that found nothing usable
	ErrEmptyProbe = errors.New("gxid: machine probe returned no identifier")
)
