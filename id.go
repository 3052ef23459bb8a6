package gxid

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"slices"
	"time"
)

// ID is a 12 byte globally unique identifier laid out as a Mongo ObjectId:
//
//	4 bytes  seconds since the Unix epoch (big-endian)
//	3 bytes  machine identifier
//	2 bytes  process id (big-endian)
//	3 bytes  counter (big-endian)
//
// Byte order equals creation order at second granularity, then counter order.
type ID [12]byte

// Nil is the zero ID
var Nil ID

// TimeBound returns the smallest ID that can carry t's timestamp. IDs created
// at or after t compare greater than or equal to it, which makes it a range
// bound for stores that index IDs in byte or text order.
func TimeBound(t time.Time) ID {
	var id ID
	binary.BigEndian.PutUint32(id[0:4], uint32(t.Unix()))
	return id
}

// Time returns the creation time of the ID with second precision
func (id ID) Time() time.Time {
	return time.Unix(id.Timestamp(), 0)
}

// Timestamp returns the seconds since the Unix epoch stored in the ID
func (id ID) Timestamp() int64 {
	return int64(binary.BigEndian.Uint32(id[0:4]))
}

// Machine returns the 3 byte machine identifier
func (id ID) Machine() []byte {
	return []byte{id[4], id[5], id[6]}
}

// Pid returns the process id part of the ID
func (id ID) Pid() uint16 {
	return binary.BigEndian.Uint16(id[7:9])
}

// Counter returns the 24 bit counter value
func (id ID) Counter() uint32 {
	return uint32(id[9])<<16 | uint32(id[10])<<8 | uint32(id[11])
}

// String returns the canonical 20 character representation of the ID
func (id ID) String() string {
	return id.Encode()
}

// GoString implements fmt.GoStringer
func (id ID) GoString() string {
	return fmt.Sprintf("gxid.ID(%q)", id.Encode())
}

// Bytes returns the ID as a byte slice
func (id ID) Bytes() []byte {
	return id[:]
}

// IsNil returns true if the ID is the nil ID (all zeros)
func (id ID) IsNil() bool {
	return id == Nil
}

// Compare returns an integer comparing two IDs byte-wise.
// The result will be 0 if id==other, -1 if id < other, and +1 if id > other.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// Equal returns true if id and other represent the same ID
func (id ID) Equal(other ID) bool {
	return id == other
}

// Sort sorts ids in ascending order, which is creation order for IDs
// produced by a single generator.
func Sort(ids []ID) {
	slices.SortFunc(ids, ID.Compare)
}

// MarshalText implements the encoding.TextMarshaler interface
func (id ID) MarshalText() ([]byte, error) {
	var buf [encodedLen]byte
	encode(buf[:], id)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (id *ID) UnmarshalText(data []byte) error {
	v, err := Decode(string(data))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (id ID) MarshalBinary() ([]byte, error) {
	return id[:], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (id *ID) UnmarshalBinary(data []byte) error {
	if len(data) != len(id) {
		return ErrInvalidLength
	}
	copy(id[:], data)
	return nil
}

// Scan implements the sql.Scanner interface. It accepts the canonical string
// form as well as raw 12 byte columns.
func (id *ID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		*id = Nil
		return nil
	case string:
		return id.UnmarshalText([]byte(src))
	case []byte:
		switch len(src) {
		case 0:
			*id = Nil
			return nil
		case len(id):
			copy(id[:], src)
			return nil
		}
		return id.UnmarshalText(src)
	default:
		return fmt.Errorf("gxid: cannot scan type %T into ID", src)
	}
}

// Value implements the driver.Valuer interface. The nil ID is stored as NULL.
func (id ID) Value() (driver.Value, error) {
	if id.IsNil() {
		return nil, nil
	}
	return id.String(), nil
}
