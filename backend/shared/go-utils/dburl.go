package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// IsolatedRoleName is the per-run database role used when the isolated
// schema flag is on.
func IsolatedRoleName(runnerID, runNumber string) string {
	return strings.ToLower(runnerID + "-" + runNumber)
}

// WithIsolatedRole swaps the user in baseURL for the per-run role, keeping
// the password.
func WithIsolatedRole(baseURL, runnerID, runNumber string) (string, error) {
	if runnerID == "" || runNumber == "" {
		return "", fmt.Errorf("runnerID and runNumber must be non-empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DB URL: %w", err)
	}
	if u.User == nil {
		return "", fmt.Errorf("DB URL has no credentials to replace")
	}

	password, _ := u.User.Password()
	u.User = url.UserPassword(IsolatedRoleName(runnerID, runNumber), password)
	return u.String(), nil
}
