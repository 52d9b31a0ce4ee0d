package uniuri

import (
	"crypto/rand"
	"math"
)

const (
	// StdLen is a standard length of uniuri string to achieve ~95 bits of entropy.
	StdLen = 16
	// TokenLen is the length of cancel tokens, ~190 bits of entropy.
	TokenLen = 32
)

var (
	// StdChars is a set of standard characters allowed in uniuri string.
	StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

	// KeyChars are safe in object storage keys and file names on case-insensitive filesystems.
	KeyChars = []byte("abcdefghijklmnopqrstuvwxyz0123456789")
)

const (
	maxBufLen      = 2048
	minRegenBufLen = 16
	maxByteValue   = 255
	byteRange      = 256
)

// New returns a new random string of the standard length, consisting of
// standard characters.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// Token returns a random string suitable for links sent to users.
func Token() string {
	return NewLenChars(TokenLen, StdChars)
}

// Key returns a lower case random string for storage keys.
func Key() string {
	return NewLenChars(StdLen, KeyChars)
}

// estimatedBufLen returns the estimated number of random bytes to request
// given that byte values greater than maxByte will be rejected.
func estimatedBufLen(need, maxByte int) int {
	return int(math.Ceil(float64(need) * (maxByteValue / float64(maxByte))))
}

func clampBufLen(n int) int {
	if n > maxBufLen {
		return maxBufLen
	}

	return n
}

// NewLenChars returns a new random string of the provided length, consisting
// of the provided byte slice of allowed characters (maximum 256).
func NewLenChars(length int, chars []byte) string {
	if length == 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > byteRange {
		panic("uniuri: wrong charset length for NewLenChars")
	}

	maxRb := maxByteValue - (byteRange % clen)
	bufLen := clampBufLen(max(estimatedBufLen(length, maxRb), length))

	buf := make([]byte, bufLen)
	out := make([]byte, length)

	var i int

	for {
		if _, err := rand.Read(buf[:bufLen]); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf[:bufLen] {
			c := int(rb)
			if c > maxRb {
				// skip to avoid modulo bias
				continue
			}

			out[i] = chars[c%clen]
			i++

			if i == length {
				return string(out)
			}
		}

		bufLen = estimatedBufLen(length-i, maxRb)
		if bufLen < minRegenBufLen && minRegenBufLen < cap(buf) {
			bufLen = minRegenBufLen
		}

		bufLen = clampBufLen(bufLen)
	}
}
