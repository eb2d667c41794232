package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NormalizeAccountID trims and lower-cases an account id into the canonical
// form the command validators accept.
func NormalizeAccountID(accountID string) string {
	return strings.ToLower(strings.TrimSpace(accountID))
}

// ParseAccountID parses a textual account identifier.
func ParseAccountID(accountID string) (uuid.UUID, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid account id %q: %w", accountID, err)
	}
	return id, nil
}

// MaskEmail hides the local part of an address for log output.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}
