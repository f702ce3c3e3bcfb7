package model

// IdentityKind distinguishes how an identity was established.
type IdentityKind string

const (
	// IdentityEmail is a verified email address (one-time-passcode exchange).
	IdentityEmail IdentityKind = "email"
	// IdentityDevice is an anonymous, locally persisted device token.
	IdentityDevice IdentityKind = "device"
)

// Identity is the actor casting a verdict. Key is the derived hash sent to
// the server; Email is only set for verified email identities and never
// leaves the client.
type Identity struct {
	Kind  IdentityKind `json:"kind"`
	Key   string       `json:"key"`
	Email string       `json:"email,omitempty"`
}

// Verified reports whether the identity is backed by a confirmed email.
func (i *Identity) Verified() bool {
	return i != nil && i.Kind == IdentityEmail
}

// BeginVerificationRequest is the API request to dispatch a passcode email.
type BeginVerificationRequest struct {
	Email string `json:"email"`
}

// ConfirmVerificationRequest is the API request to exchange a passcode for
// a session token.
type ConfirmVerificationRequest struct {
	Email    string `json:"email"`
	Passcode string `json:"passcode"`
}

// SessionResponse is the API response after a successful passcode exchange.
type SessionResponse struct {
	Token       string `json:"token"`
	IdentityKey string `json:"identityKey"`
}
