package types

import (
	"testing"
)

func TestPeerIDString(t *testing.T) {
	var id PeerID
	for i := 0; i < 32; i++ {
		id[i] = byte(i)
	}

	// String should return Base58
	s := id.String()
	if s == "" {
		t.Error("PeerID.String() returned empty string")
	}
}

func TestPeerIDShortString(t *testing.T) {
	var id PeerID
	for i := 0; i < 32; i++ {
		id[i] = byte(i)
	}

	short := id.ShortString()
	if len(short) > 8 {
		t.Errorf("PeerID.ShortString() = %q, expected at most 8 chars", short)
	}
}

func TestEmptyPeerIDString(t *testing.T) {
	var id PeerID // zero value
	s := id.String()
	if s != "" {
		t.Errorf("EmptyPeerID.String() = %q, want empty string", s)
	}
}

func TestParsePeerIDRoundtrip(t *testing.T) {
	var original PeerID
	for i := 0; i < 32; i++ {
		original[i] = byte(i + 1) // non-zero to avoid leading zeros
	}

	parsed, err := ParsePeerID(original.String())
	if err != nil {
		t.Fatalf("ParsePeerID(%q) error: %v", original.String(), err)
	}

	if !parsed.Equal(original) {
		t.Errorf("ParsePeerID(%q) = %v, want %v", original.String(), parsed, original)
	}
}

func TestParsePeerIDInvalid(t *testing.T) {
	cases := []string{"", "0OIl", "abc"}
	for _, s := range cases {
		if _, err := ParsePeerID(s); err == nil {
			t.Errorf("ParsePeerID(%q) expected error", s)
		}
	}
}

func TestPeerIDFromBytes(t *testing.T) {
	b := make([]byte, 32)
	b[0] = 0xff

	id, err := PeerIDFromBytes(b)
	if err != nil {
		t.Fatalf("PeerIDFromBytes error: %v", err)
	}
	if id[0] != 0xff {
		t.Errorf("PeerIDFromBytes did not copy bytes")
	}

	if _, err := PeerIDFromBytes(make([]byte, 16)); err == nil {
		t.Error("PeerIDFromBytes(16 bytes) expected error")
	}
}

func TestRandomPeerID(t *testing.T) {
	a := RandomPeerID()
	b := RandomPeerID()

	if a.IsEmpty() || b.IsEmpty() {
		t.Error("RandomPeerID returned empty ID")
	}
	if a.Equal(b) {
		t.Error("two RandomPeerID calls returned the same ID")
	}
}
