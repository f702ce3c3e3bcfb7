package service

import (
	"context"
	"testing"
)

// captureMailer records the last passcode instead of sending mail.
type captureMailer struct {
	email    string
	passcode string
}

func (m *captureMailer) SendPasscode(_ context.Context, email, passcode string) error {
	m.email = email
	m.passcode = passcode
	return nil
}

func newTestOTP() (*OTPService, *captureMailer) {
	mailer := &captureMailer{}
	// Empty CacheService → in-memory fallback store.
	return NewOTPService(&CacheService{}, mailer), mailer
}

func TestGeneratePasscode_Format(t *testing.T) {
	for range 50 {
		code, err := generatePasscode()
		if err != nil {
			t.Fatalf("generatePasscode error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("passcode %q length = %d, want 6", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("passcode %q contains non-digit", code)
			}
		}
	}
}

func TestOTP_BeginRejectsInvalidEmail(t *testing.T) {
	svc, _ := newTestOTP()

	for _, email := range []string{"", "not-an-email", "missing@tld", "a b@example.com"} {
		if err := svc.Begin(context.Background(), email); err != ErrInvalidEmail {
			t.Errorf("Begin(%q) = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestOTP_ConfirmExchange(t *testing.T) {
	svc, mailer := newTestOTP()
	ctx := context.Background()

	if err := svc.Begin(ctx, "viewer@example.com"); err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if mailer.passcode == "" {
		t.Fatal("mailer received no passcode")
	}

	sess, err := svc.Confirm(ctx, "viewer@example.com", mailer.passcode)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if sess.Token == "" || len(sess.IdentityKey) != 64 {
		t.Errorf("session = %+v, want token and 64-char identity key", sess)
	}

	// Session resolves back to the email
	email, err := svc.SessionEmail(ctx, sess.Token)
	if err != nil || email != "viewer@example.com" {
		t.Errorf("SessionEmail = %q, %v, want viewer@example.com", email, err)
	}

	// Passcode is consumed — a second confirm must fail
	if _, err := svc.Confirm(ctx, "viewer@example.com", mailer.passcode); err != ErrPasscodeMismatch {
		t.Errorf("replayed Confirm = %v, want ErrPasscodeMismatch", err)
	}
}

func TestOTP_ConfirmWrongCode(t *testing.T) {
	svc, mailer := newTestOTP()
	ctx := context.Background()

	if err := svc.Begin(ctx, "viewer@example.com"); err != nil {
		t.Fatalf("Begin error: %v", err)
	}

	wrong := "000000"
	if wrong == mailer.passcode {
		wrong = "000001"
	}

	if _, err := svc.Confirm(ctx, "viewer@example.com", wrong); err != ErrPasscodeMismatch {
		t.Errorf("Confirm with wrong code = %v, want ErrPasscodeMismatch", err)
	}

	// No session may exist after a failed confirm
	if _, err := svc.SessionEmail(ctx, "anything"); err != ErrSessionNotFound {
		t.Errorf("SessionEmail after failed confirm = %v, want ErrSessionNotFound", err)
	}
}

func TestOTP_SignOut(t *testing.T) {
	svc, mailer := newTestOTP()
	ctx := context.Background()

	if err := svc.Begin(ctx, "viewer@example.com"); err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	sess, err := svc.Confirm(ctx, "viewer@example.com", mailer.passcode)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}

	if err := svc.SignOut(ctx, sess.Token); err != nil {
		t.Fatalf("SignOut error: %v", err)
	}
	if _, err := svc.SessionEmail(ctx, sess.Token); err != ErrSessionNotFound {
		t.Errorf("SessionEmail after sign-out = %v, want ErrSessionNotFound", err)
	}

	// Idempotent
	if err := svc.SignOut(ctx, sess.Token); err != nil {
		t.Errorf("second SignOut = %v, want nil", err)
	}
}
