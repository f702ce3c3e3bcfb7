package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	// SHA256 of empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestIteratedSHA256(t *testing.T) {
	// 1 iteration should equal a single SHA256
	oneIter := IteratedSHA256("test", 1)
	single := SHA256Hex("test")
	if oneIter != single {
		t.Errorf("IteratedSHA256(\"test\", 1) = %s, want %s", oneIter, single)
	}

	// Multiple iterations should differ from single
	multiIter := IteratedSHA256("test", 5000)
	if multiIter == single {
		t.Error("5000 iterations should differ from single iteration")
	}

	// Same input should produce same output (deterministic)
	again := IteratedSHA256("test", 5000)
	if multiIter != again {
		t.Error("IteratedSHA256 should be deterministic")
	}
}

func TestEmailIdentityKey_Normalization(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"case insensitive", "Viewer@Example.com", "viewer@example.com"},
		{"whitespace trimmed", "  viewer@example.com  ", "viewer@example.com"},
		{"mixed", " VIEWER@example.COM", "viewer@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if EmailIdentityKey(tt.a) != EmailIdentityKey(tt.b) {
				t.Errorf("EmailIdentityKey(%q) != EmailIdentityKey(%q), want equal", tt.a, tt.b)
			}
		})
	}
}

func TestEmailIdentityKey_Shape(t *testing.T) {
	key := EmailIdentityKey("viewer@example.com")

	// Should be 64 hex chars (SHA256 output)
	if len(key) != 64 {
		t.Errorf("EmailIdentityKey length = %d, want 64", len(key))
	}

	// Different emails should produce different keys
	other := EmailIdentityKey("other@example.com")
	if key == other {
		t.Error("different emails should produce different keys")
	}
}

func TestDeviceIdentityKey_DisjointFromEmail(t *testing.T) {
	// A device token equal to an email string must still map to a
	// different key space.
	input := "viewer@example.com"
	if DeviceIdentityKey(input) == EmailIdentityKey(input) {
		t.Error("device and email key spaces should be disjoint")
	}

	if len(DeviceIdentityKey("FkZq7bX0aQ")) != 64 {
		t.Error("DeviceIdentityKey should be 64 hex chars")
	}
}

func TestHashIP(t *testing.T) {
	ip := "192.168.1.1"
	salt := "random-salt-value"
	hash := HashIP(ip, salt)

	// Should be 64 hex chars
	if len(hash) != 64 {
		t.Errorf("HashIP length = %d, want 64", len(hash))
	}

	// Different salt should produce different hash
	otherSalt := HashIP(ip, "different-salt")
	if hash == otherSalt {
		t.Error("different salts should produce different hashes")
	}

	// Different IP should produce different hash
	otherIP := HashIP("10.0.0.1", salt)
	if hash == otherIP {
		t.Error("different IPs should produce different hashes")
	}
}
