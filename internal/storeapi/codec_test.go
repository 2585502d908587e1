package storeapi

import (
	"reflect"
	"testing"
)

func TestPackUnpackStrings(t *testing.T) {
	tests := []struct {
		name  string
		elems []string
	}{
		{"empty", []string{}},
		{"single", []string{"alpha"}},
		{"several", []string{"a", "", "long-value-with-dashes", "b"}},
		{"binary-ish", []string{"x\x00y", "\r\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := PackStrings(tt.elems)
			got, err := UnpackStrings(buf)
			if err != nil {
				t.Fatalf("UnpackStrings() error = %v", err)
			}
			if len(got) == 0 && len(tt.elems) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.elems) {
				t.Errorf("round trip = %q, want %q", got, tt.elems)
			}
		})
	}
}

func TestUnpackStrings_TooShort(t *testing.T) {
	if _, err := UnpackStrings([]byte{0, 0}); err == nil {
		t.Error("short buffer should fail")
	}
}

func TestUnpackStrings_TruncatedHeader(t *testing.T) {
	buf := PackStrings([]string{"abc", "def"})
	// Cut into the second element's length header.
	if _, err := UnpackStrings(buf[:4+4+3+2]); err == nil {
		t.Error("truncated element header should fail")
	}
}

func TestUnpackStrings_TruncatedBody(t *testing.T) {
	buf := PackStrings([]string{"abcdef"})
	if _, err := UnpackStrings(buf[:len(buf)-2]); err == nil {
		t.Error("truncated element body should fail")
	}
}

func TestUnpackStrings_TrailingBytes(t *testing.T) {
	buf := append(PackStrings([]string{"abc"}), 0xFF)
	if _, err := UnpackStrings(buf); err == nil {
		t.Error("trailing bytes should fail")
	}
}
