package utils

import "crypto/rand"

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomSuffix returns n random lowercase letters and digits, safe to
// use inside file names.
func RandomSuffix(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(buf), nil
}
