package certificate

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const NumberPrefix = "CERT-"

var numberPattern = regexp.MustCompile(`^CERT-[0-9A-F]{16}$`)

// NewNumber returns a fresh "CERT-" id with 64 random bits.
func NewNumber() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate certificate number: %w", err)
	}
	return NumberPrefix + strings.ToUpper(hex.EncodeToString(b[:])), nil
}

func ValidNumber(s string) bool {
	return numberPattern.MatchString(s)
}
