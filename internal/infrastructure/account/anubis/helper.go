package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

// transient tags err so the usecase layer maps it to 503 and the breaker
// counts it.
func transient(err error) error {
	return fmt.Errorf("%w: %w: %w", usecase.ErrDependencyUnavailable, errAnubisTransient, err)
}

func isCircuitFailure(err error) bool {
	return errors.Is(err, errAnubisTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// buildURL joins path onto baseURL. An absolute path wins over the base.
func buildURL(baseURL, path string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return base
	case strings.Contains(path, "://"):
		return path
	default:
		return base + "/" + strings.TrimLeft(path, "/")
	}
}
