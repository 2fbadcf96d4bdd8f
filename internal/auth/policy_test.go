package auth

import "testing"

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{name: "valid mix", password: "abc123!@", wantOK: true},
		{name: "valid at max length", password: "abcdefg123456!@#", wantOK: true},
		{name: "no symbol", password: "abc12345", wantOK: false},
		{name: "too short", password: "short1!", wantOK: false},
		{name: "too long", password: "abcdefgh123456!@#", wantOK: false},
		{name: "no digit", password: "abcdefg!", wantOK: false},
		{name: "no letter", password: "1234567!", wantOK: false},
		{name: "disallowed character", password: "abc 123!", wantOK: false},
		{name: "empty", password: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPasswordPolicy(tt.password)
			if tt.wantOK && err != nil {
				t.Errorf("CheckPasswordPolicy(%q) = %v, want nil", tt.password, err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("CheckPasswordPolicy(%q) = nil, want error", tt.password)
			}
		})
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("abc123!@", 4)
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "abc123!@" {
		t.Fatal("hash equals plaintext")
	}

	if err := ComparePassword(hash, "abc123!@"); err != nil {
		t.Errorf("ComparePassword() with correct password: %v", err)
	}
	if err := ComparePassword(hash, "wrong123!@"); err == nil {
		t.Error("ComparePassword() accepted a wrong password")
	}
}
