package judge

import (
	"context"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/prefs"
	"github.com/Hrhcoolshegs/verdict/pkg/hash"
)

const deviceTokenLen = 21

// Resolver decides which identity a verdict is cast under. An anonymous
// device token is minted lazily and persisted; a verified email identity
// takes precedence once its passcode exchange completes. Between begin and
// confirm the identity is unresolved and votes must be parked.
type Resolver struct {
	store  *prefs.Store
	remote Remote

	// onVerified fires after a successful passcode exchange, before
	// ConfirmVerification returns. The coordinator hooks replay here.
	onVerified func(ctx context.Context)
}

func NewResolver(store *prefs.Store, remote Remote) *Resolver {
	return &Resolver{store: store, remote: remote}
}

// OnVerified registers the callback invoked when an email identity
// becomes usable.
func (r *Resolver) OnVerified(fn func(ctx context.Context)) {
	r.onVerified = fn
}

// Current returns the identity to vote under, or nil while an email
// verification is in progress.
func (r *Resolver) Current() (*model.Identity, error) {
	email, err := r.store.Get(prefs.KeyUserEmail)
	if err != nil {
		return nil, err
	}
	if email != "" {
		token, err := r.store.Get(prefs.KeySessionToken)
		if err != nil {
			return nil, err
		}
		if token == "" {
			// Passcode sent but not yet confirmed.
			return nil, nil
		}
		return &model.Identity{
			Kind:  model.IdentityEmail,
			Key:   hash.EmailIdentityKey(email),
			Email: email,
		}, nil
	}

	token, err := r.deviceToken()
	if err != nil {
		return nil, err
	}
	return &model.Identity{
		Kind: model.IdentityDevice,
		Key:  hash.DeviceIdentityKey(token),
	}, nil
}

// deviceToken loads the persisted device token, minting one on first use.
func (r *Resolver) deviceToken() (string, error) {
	token, err := r.store.Get(prefs.KeyDeviceToken)
	if err != nil {
		return "", err
	}
	if token != "" {
		return token, nil
	}

	token, err = gonanoid.New(deviceTokenLen)
	if err != nil {
		return "", err
	}
	if err := r.store.Set(prefs.KeyDeviceToken, token); err != nil {
		return "", err
	}
	return token, nil
}

// BeginVerification asks the server to email a passcode and records the
// address locally. From here until ConfirmVerification succeeds, Current
// reports no usable identity.
func (r *Resolver) BeginVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "not a valid email address"}
	}

	if err := r.remote.BeginVerification(ctx, email); err != nil {
		return err
	}
	return r.store.Set(prefs.KeyUserEmail, email)
}

// ConfirmVerification exchanges the passcode for a session and switches
// the active identity to the verified email.
func (r *Resolver) ConfirmVerification(ctx context.Context, email, passcode string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	sess, err := r.remote.ConfirmVerification(ctx, email, passcode)
	if err != nil {
		return err
	}

	if err := r.store.Set(prefs.KeyUserEmail, email); err != nil {
		return err
	}
	if err := r.store.Set(prefs.KeySessionToken, sess.Token); err != nil {
		return err
	}

	if r.onVerified != nil {
		r.onVerified(ctx)
	}
	return nil
}

// SignOut invalidates the session and reverts to an anonymous device
// identity. The server call is best-effort; local state clears regardless.
func (r *Resolver) SignOut(ctx context.Context) error {
	token, err := r.store.Get(prefs.KeySessionToken)
	if err != nil {
		return err
	}
	if token != "" {
		if err := r.remote.SignOut(ctx, token); err != nil {
			return err
		}
	}

	if err := r.store.Clear(prefs.KeySessionToken); err != nil {
		return err
	}
	return r.store.Clear(prefs.KeyUserEmail)
}
