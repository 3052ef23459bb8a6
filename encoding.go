package gxid

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
)

const (
	encodedLen = 20

	// alphabet is base32hex in lower case. Its symbols are in ASCII order,
	// so encoded strings sort like the bytes they encode.
	alphabet = "0123456789abcdefghijklmnopqrstuv"
)

var (
	encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

	// dec maps a symbol to its 5 bit value, 0xff for bytes outside the alphabet
	dec [256]byte
)

func init() {
	for i := range dec {
		dec[i] = 0xff
	}
	for i := 0; i < len(alphabet); i++ {
		dec[alphabet[i]] = byte(i)
	}
}

// Encode returns the 20 character base32hex representation of the ID
func (id ID) Encode() string {
	var buf [encodedLen]byte
	encode(buf[:], id)
	return string(buf[:])
}

func encode(dst []byte, id ID) {
	encoding.Encode(dst, id[:])
}

// Decode parses the canonical 20 character representation of an ID.
// Upper case, whitespace and any symbol outside [0-9a-v] are rejected.
func Decode(s string) (ID, error) {
	var id ID
	if len(s) != encodedLen {
		return id, fmt.Errorf("%w: length %d, want %d", ErrInvalidID, len(s), encodedLen)
	}
	for i := 0; i < len(s); i++ {
		if dec[s[i]] == 0xff {
			return id, fmt.Errorf("%w: invalid character %q at offset %d", ErrInvalidID, s[i], i)
		}
	}
	// 20 symbols carry 100 bits; the low 4 bits of the last symbol must be zero
	if dec[s[encodedLen-1]]&0x0f != 0 {
		return id, fmt.Errorf("%w: non-canonical trailing character %q", ErrInvalidID, s[encodedLen-1])
	}
	n, err := encoding.Decode(id[:], []byte(s))
	if err != nil || n != len(id) {
		return Nil, ErrInvalidID
	}
	return id, nil
}

// MustDecode is like Decode but panics if the string cannot be decoded.
// It simplifies safe initialization of global variables.
func MustDecode(s string) ID {
	id, err := Decode(s)
	if err != nil {
		panic(fmt.Sprintf("gxid: Decode(%q): %v", s, err))
	}
	return id
}

// EncodeToHex encodes the ID as 24 hex characters, the text form of a Mongo ObjectId
func (id ID) EncodeToHex() string {
	return hex.EncodeToString(id[:])
}

// DecodeFromHex decodes a 24 character hexadecimal string to ID
func DecodeFromHex(s string) (ID, error) {
	var id ID
	if len(s) != hex.EncodedLen(len(id)) {
		return id, ErrInvalidID
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return Nil, ErrInvalidID
	}
	return id, nil
}

// FromBytes creates an ID from a byte slice
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != len(id) {
		return id, ErrInvalidLength
	}
	copy(id[:], b)
	return id, nil
}

// MustFromBytes is like FromBytes but panics on error
func MustFromBytes(b []byte) ID {
	id, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return id
}
