package helpers

import (
	"fmt"
	"strconv"

	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

// ResolveLimit applies the report size policy to a requested limit: 0 selects
// defaultLimit, values above maxLimit are capped and negatives are rejected.
func ResolveLimit(requested, defaultLimit, maxLimit int) (int, error) {
	switch {
	case requested < 0:
		return 0, apperrors.NewInvalidScopeError(fmt.Sprintf("invalid limit %d", requested))
	case requested == 0:
		requested = defaultLimit
	}
	if maxLimit > 0 && requested > maxLimit {
		requested = maxLimit
	}
	return requested, nil
}

// ParseID parses a positive path or query identifier
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidScopeError(fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}
