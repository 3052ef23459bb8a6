package gxid

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestID_Encode(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		want string
	}{
		{"known", testID, testIDString},
		{"nil", Nil, "00000000000000000000"},
		{"max", ID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, "vvvvvvvvvvvvvvvvvvvg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Encode(); got != tt.want {
				t.Errorf("Encode() = %v, want %v", got, tt.want)
			}
			if got := tt.id.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	got, err := Decode(testIDString)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != testID {
		t.Errorf("Decode() = %v, want %v", got, testID)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "9m4e2mr0ui3e8a215n4"},
		{"too long", "9m4e2mr0ui3e8a215n4gg"},
		{"upper case", "9M4E2MR0UI3E8A215N4G"},
		{"out of alphabet w", "9m4e2mr0ui3e8a215nwg"},
		{"out of alphabet z", "z m4e2mr0ui3e8a215n4"},
		{"leading space", " 9m4e2mr0ui3e8a215n4"},
		{"newline", "9m4e2mr0ui3e8a215n4\n"},
		{"padding", "9m4e2mr0ui3e8a215n4="},
		{"non-canonical tail", "9m4e2mr0ui3e8a215n4h"},
		{"hex form", "4d88e15b60f486e428412dc9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Decode(tt.input)
			if err == nil {
				t.Fatalf("Decode(%q) expected error, got %v", tt.input, id)
			}
			if !errors.Is(err, ErrInvalidID) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidID", tt.input, err)
			}
			if !id.IsNil() {
				t.Errorf("Decode(%q) returned non-nil ID on error", tt.input)
			}
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		var id ID
		r.Read(id[:])

		s := id.Encode()
		if len(s) != 20 {
			t.Fatalf("Encode() length = %d, want 20", len(s))
		}
		if strings.Trim(s, alphabet) != "" {
			t.Fatalf("Encode() = %q contains characters outside the alphabet", s)
		}

		decoded, err := Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", s, err)
		}
		if decoded != id {
			t.Fatalf("Round-trip failed: got %v, want %v", decoded, id)
		}
	}
}

func TestEncode_PreservesOrder(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	ids := make([]ID, 200)
	for i := range ids {
		r.Read(ids[i][:])
		// share prefixes so that later bytes decide the order
		if i > 0 && i%3 == 0 {
			copy(ids[i][:6], ids[i-1][:6])
		}
	}

	for i := range ids {
		for j := range ids {
			byteCmp := ids[i].Compare(ids[j])
			strCmp := strings.Compare(ids[i].Encode(), ids[j].Encode())
			if byteCmp != strCmp {
				t.Fatalf("order mismatch for %x and %x: bytes %d, text %d", ids[i], ids[j], byteCmp, strCmp)
			}
		}
	}
}

func TestMustDecode(t *testing.T) {
	if id := MustDecode(testIDString); id != testID {
		t.Errorf("MustDecode() = %v, want %v", id, testID)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustDecode() did not panic on invalid input")
		}
	}()
	MustDecode("invalid-id")
}

func TestID_EncodeToHex(t *testing.T) {
	want := "4d88e15b60f486e428412dc9"
	if got := testID.EncodeToHex(); got != want {
		t.Errorf("EncodeToHex() = %v, want %v", got, want)
	}

	decoded, err := DecodeFromHex(want)
	if err != nil {
		t.Fatalf("DecodeFromHex() error = %v", err)
	}
	if decoded != testID {
		t.Errorf("DecodeFromHex() = %v, want %v", decoded, testID)
	}
}

func TestDecodeFromHex_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too short", "4d88e15b60f486e4"},
		{"too long", "4d88e15b60f486e428412dc9ff"},
		{"invalid hex", "gd88e15b60f486e428412dc9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFromHex(tt.input); err == nil {
				t.Errorf("DecodeFromHex() expected error for input %q", tt.input)
			}
		})
	}
}

func TestFromBytes(t *testing.T) {
	id, err := FromBytes(testID[:])
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	if id != testID {
		t.Errorf("FromBytes() = %v, want %v", id, testID)
	}

	if _, err := FromBytes([]byte{1, 2, 3}); err != ErrInvalidLength {
		t.Errorf("FromBytes() error = %v, want %v", err, ErrInvalidLength)
	}
}

func TestMustFromBytes(t *testing.T) {
	if id := MustFromBytes(testID[:]); id != testID {
		t.Errorf("MustFromBytes() = %v, want %v", id, testID)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustFromBytes() did not panic on invalid input")
		}
	}()
	MustFromBytes(make([]byte, 16))
}
