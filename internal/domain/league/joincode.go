package league

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	JoinCodeLength   = 6
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	archivedTag      = "_ARCHIVED_"
)

// NormalizeJoinCode upper-cases and trims a user supplied code.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateJoinCode expects an already normalized code.
func ValidateJoinCode(code string) error {
	if len(code) != JoinCodeLength {
		return fmt.Errorf("join code must be exactly %d characters", JoinCodeLength)
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(joinCodeAlphabet, rune(code[i])) {
			return fmt.Errorf("join code must be alphanumeric")
		}
	}
	return nil
}

func GenerateJoinCode() (string, error) {
	// bytes at or above this bound are skipped to keep the draw uniform
	limit := 256 - 256%len(joinCodeAlphabet)

	out := make([]byte, 0, JoinCodeLength)
	buf := make([]byte, JoinCodeLength*2)
	for len(out) < JoinCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, joinCodeAlphabet[int(b)%len(joinCodeAlphabet)])
			if len(out) == JoinCodeLength {
				break
			}
		}
	}
	return string(out), nil
}

// ArchivedJoinCode rewrites code so the original value is free for reuse
// while staying traceable.
func ArchivedJoinCode(code string, at time.Time) string {
	if IsArchivedJoinCode(code) {
		return code
	}
	return code + archivedTag + strconv.FormatInt(at.Unix(), 10)
}

func IsArchivedJoinCode(code string) bool {
	return strings.Contains(code, archivedTag)
}
