package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// identityIterations is the iteration count for identity key derivation.
// High enough to make recovering an email from its key expensive.
const identityIterations = 5000

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// IteratedSHA256 applies SHA256 iteratively n times to produce a derived hash.
// Used for identity key hashing and IP hashing.
func IteratedSHA256(input string, iterations int) string {
	data := []byte(input)
	for range iterations {
		h := sha256.Sum256(data)
		data = h[:]
	}
	return hex.EncodeToString(data)
}

// EmailIdentityKey derives the identity key for a verified email address.
// The email is normalized (trimmed, lowercased) first so the same address
// always maps to the same key. Raw emails never appear in verdict rows.
func EmailIdentityKey(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return IteratedSHA256("email:"+normalized, identityIterations)
}

// DeviceIdentityKey derives the identity key for an anonymous device token.
// The prefix keeps the email and device key spaces disjoint, so a device
// token can never collide with a verified email identity.
func DeviceIdentityKey(token string) string {
	return IteratedSHA256("device:"+token, identityIterations)
}

// HashIP hashes an IP address with a salt using iterated SHA256.
func HashIP(ip, salt string) string {
	return IteratedSHA256(salt+ip, identityIterations)
}
