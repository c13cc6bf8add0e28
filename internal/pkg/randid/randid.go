// Package randid generates the opaque identifiers and temporary credentials
// used for locally provisioned accounts.
package randid

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

var ErrEntropyUnavailable = errors.New("secure random source unavailable")

// UserIDBytes is the entropy of a generated user id; hex-encoding doubles it
// to a 30-character string.
const UserIDBytes = 15

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// NewUserID returns a hex-encoded random identifier with UserIDBytes of entropy.
func NewUserID() (string, error) {
	return Hex(UserIDBytes)
}

// Hex returns a hex-encoded random string sourced from crypto/rand.
func Hex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", ErrEntropyUnavailable
	}
	return hex.EncodeToString(buf), nil
}

// TempPassword returns a random password of length n drawn from a fixed
// alphabet, used for operator-provisioned accounts and resets.
func TempPassword(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", ErrEntropyUnavailable
	}
	out := make([]byte, n)
	for i := range buf {
		out[i] = passwordAlphabet[int(buf[i])%len(passwordAlphabet)]
	}
	return string(out), nil
}
