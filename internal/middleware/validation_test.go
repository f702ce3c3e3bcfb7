package middleware

import "testing"

func TestValidateMovieID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"trims whitespace", "  7  ", 7, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"non-numeric", "abc", 0, true},
		{"sql injection", "1; DROP--", 0, true},
		{"float", "1.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateMovieID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %d, want %d", got, tt.wantID)
			}
		})
	}
}

func TestValidateIdentityKey(t *testing.T) {
	valid := "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2"

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid sha256", valid, valid, false},
		{"uppercase normalized", "A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2", valid, false},
		{"empty", "", "", true},
		{"too short", "abcd1234", "", true},
		{"too long 65", valid + "a", "", true},
		{"non-hex chars", "xyz123xyz123xyz123xyz123xyz123xyz123xyz123xyz123xyz123xyz123xyz1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateIdentityKey(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateChoice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"cinema", "cinema", false},
		{"not cinema", "not-cinema", false},
		{"trims whitespace", " cinema ", false},
		{"empty", "", true},
		{"unknown", "maybe", true},
		{"case sensitive", "Cinema", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateChoice(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateSearchQuery(t *testing.T) {
	if _, errMsg := ValidateSearchQuery("   "); errMsg == "" {
		t.Error("blank query should be rejected")
	}
	if got, errMsg := ValidateSearchQuery("  Stalker  "); errMsg != "" || got != "Stalker" {
		t.Errorf("got %q, %q, want Stalker with no error", got, errMsg)
	}

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	if _, errMsg := ValidateSearchQuery(string(long)); errMsg == "" {
		t.Error("over-long query should be rejected")
	}
}

func TestValidateSessionToken(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid nanoid", "V1StGXR8_Z5jdHi6B-myT", false},
		{"empty", "", true},
		{"spaces", "abc def", true},
		{"too long", string(make([]byte, 80)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateSessionToken(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateUserAgent(t *testing.T) {
	if got := ValidateUserAgent("  Verdict/1.0  "); got != "Verdict/1.0" {
		t.Errorf("trim failed: got %q", got)
	}
	long := ""
	for i := 0; i < 200; i++ {
		long += "x"
	}
	if got := ValidateUserAgent(long); len(got) != MaxUserAgentLen {
		t.Errorf("truncation failed: got len %d, want %d", len(got), MaxUserAgentLen)
	}
}
