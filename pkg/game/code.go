package game

import (
	"regexp"
	"strings"

	"baralho-server/internal/rng"
)

// CodeLength is the length of a room code
const CodeLength = 6

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// NewCode returns a random room code. Uniqueness among live rooms is the
// caller's responsibility.
func NewCode(gen rng.Generator) string {
	var sb strings.Builder
	for i := 0; i < CodeLength; i++ {
		sb.WriteByte(codeAlphabet[gen.Intn(len(codeAlphabet))])
	}

	return sb.String()
}

// NormalizeCode upper-cases a room code so lookups are case-insensitive
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode returns true if the code is a well-formed, normalized room code
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}
