package crypto

import (
	"strings"
	"testing"
)

func TestGeneratePassword(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr error
	}{
		{name: "default cli length", length: 20},
		{name: "minimum length", length: MinGeneratedLength},
		{name: "maximum length", length: MaxGeneratedLength},
		{name: "too short", length: 4, wantErr: ErrGeneratedLength},
		{name: "too long", length: 73, wantErr: ErrGeneratedLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GeneratePassword(tt.length)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("GeneratePassword() error = %v, want %v", err, tt.wantErr)
				}
				if result != "" {
					t.Error("GeneratePassword() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("GeneratePassword() unexpected error: %v", err)
			}
			if len(result) != tt.length {
				t.Errorf("GeneratePassword() length = %d, want %d", len(result), tt.length)
			}
		})
	}
}

func TestGeneratePasswordContainsEveryClass(t *testing.T) {
	for i := 0; i < 50; i++ {
		password, err := GeneratePassword(MinGeneratedLength)
		if err != nil {
			t.Fatalf("GeneratePassword() unexpected error: %v", err)
		}

		for _, charset := range charClasses {
			if !strings.ContainsAny(password, charset) {
				t.Errorf("password %q missing a character from %q", password, charset)
			}
		}
	}
}

func TestGeneratePasswordIsHashable(t *testing.T) {
	password, err := GeneratePassword(MaxGeneratedLength)
	if err != nil {
		t.Fatalf("GeneratePassword() unexpected error: %v", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if !VerifyPassword(password, hash) {
		t.Error("generated password does not verify against its own hash")
	}
}
