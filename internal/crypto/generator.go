package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// MinGeneratedLength leaves room for one character of every class.
	MinGeneratedLength = 8
	// MaxGeneratedLength stays under bcrypt's 72 byte input limit.
	MaxGeneratedLength = 72
)

var charClasses = []string{uppercaseChars, lowercaseChars, numberChars, symbolChars}

var ErrGeneratedLength = errors.New("generated password length must be between 8 and 72")

// GeneratePassword creates a random password of the given length containing
// at least one uppercase letter, lowercase letter, digit and symbol.
func GeneratePassword(length int) (string, error) {
	if length < MinGeneratedLength || length > MaxGeneratedLength {
		return "", ErrGeneratedLength
	}

	var pool string
	result := make([]byte, length)
	for i, charset := range charClasses {
		pool += charset
		ch, err := randChar(charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	for i := len(charClasses); i < length; i++ {
		ch, err := randChar(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	// Fisher-Yates so the guaranteed characters are not always first.
	for i := len(result) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}

func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
