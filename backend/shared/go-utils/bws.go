package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sdk "github.com/bitwarden/sdk-go"
)

//--------------------------------------------------------------------
// Constants
//--------------------------------------------------------------------

const (
	bwsLoginMaxRetries     = 5
	bwsLoginInitialBackoff = 500 * time.Millisecond
)

//--------------------------------------------------------------------
// Client wrapper
//--------------------------------------------------------------------

// BWSSecretsClient wraps an authenticated Bitwarden Secrets Manager client
// bound to one organization.
type BWSSecretsClient struct {
	bw    sdk.BitwardenClientInterface
	orgID string
}

// BWSEnabled reports whether an access token is configured. Local runs
// without one read secrets from the environment instead.
func BWSEnabled() bool {
	return strings.TrimSpace(os.Getenv("BWS_ACCESS_TOKEN")) != ""
}

// NewBWSSecretsClient logs in with BWS_ACCESS_TOKEN for the organization in
// BWS_ORGANIZATION_ID. Rate-limited logins are retried with exponential
// backoff.
func NewBWSSecretsClient() (*BWSSecretsClient, error) {
	accessToken := strings.TrimSpace(os.Getenv("BWS_ACCESS_TOKEN"))
	if accessToken == "" {
		return nil, errors.New("BWS_ACCESS_TOKEN env var is missing or empty")
	}
	orgID := strings.TrimSpace(os.Getenv("BWS_ORGANIZATION_ID"))
	if orgID == "" {
		return nil, errors.New("BWS_ORGANIZATION_ID env var is missing or empty")
	}

	bw, err := sdk.NewBitwardenClient(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("initialising Bitwarden SDK client: %w", err)
	}

	backoff := bwsLoginInitialBackoff
	for attempt := 1; attempt <= bwsLoginMaxRetries; attempt++ {
		err = bw.AccessTokenLogin(accessToken, nil)
		if err == nil {
			return &BWSSecretsClient{bw: bw, orgID: orgID}, nil
		}

		// sdk-go has no typed status error; 429 is only visible in the text.
		if !strings.Contains(err.Error(), "429") &&
			!strings.Contains(err.Error(), "Too Many Requests") {
			bw.Close()
			return nil, fmt.Errorf("Bitwarden access-token login failed: %w", err)
		}
		if attempt == bwsLoginMaxRetries {
			break
		}
		Logger.WithError(err).Warnf("Bitwarden login rate limited, retrying in %v", backoff)
		time.Sleep(backoff)
		backoff *= 2
	}
	bw.Close()
	return nil, fmt.Errorf("Bitwarden access-token login failed after %d attempts: %w", bwsLoginMaxRetries, err)
}

// Close releases the underlying SDK client.
func (c *BWSSecretsClient) Close() {
	if c != nil && c.bw != nil {
		c.bw.Close()
	}
}

//--------------------------------------------------------------------
// Public helpers
//--------------------------------------------------------------------

// GetBWSSecrets returns the key/value secrets of the named project.
func (c *BWSSecretsClient) GetBWSSecrets(projectName string) (map[string]string, error) {
	if strings.TrimSpace(projectName) == "" {
		return nil, errors.New("projectName must not be empty")
	}

	projectsResp, err := c.bw.Projects().List(c.orgID)
	if err != nil {
		return nil, fmt.Errorf("listing Bitwarden projects: %w", err)
	}

	var projectID string
	for _, p := range projectsResp.Data {
		if strings.EqualFold(p.Name, projectName) {
			projectID = p.ID
			break
		}
	}
	if projectID == "" {
		return nil, fmt.Errorf("project %q not found in organisation %s", projectName, c.orgID)
	}

	syncResp, err := c.bw.Secrets().Sync(c.orgID, nil)
	if err != nil {
		return nil, fmt.Errorf("syncing Bitwarden secrets: %w", err)
	}

	out := make(map[string]string)
	for _, s := range syncResp.Secrets {
		if s.ProjectID != nil && *s.ProjectID == projectID {
			out[s.Key] = s.Value
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no secrets found for project %q", projectName)
	}
	return out, nil
}
