package id

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewSesCode returns a random 6-digit code used as the simple
// electronic-signature proof.
func NewSesCode() string {
	return sesCode(rand.Reader)
}

// sesCode draws one digit per accepted byte. Bytes 250..255 are discarded:
// 250 is the largest multiple of 10 within a byte, so v%10 over the kept
// range leaves every digit equally likely.
func sesCode(r io.Reader) string {
	code := make([]byte, 6)
	for i := 0; i < len(code); {
		var b [1]byte
		_, _ = io.ReadFull(r, b[:])
		if b[0] >= 250 {
			continue
		}
		code[i] = '0' + b[0]%10
		i++
	}
	return string(code)
}
