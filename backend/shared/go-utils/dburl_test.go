package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithIsolatedRole(t *testing.T) {
	out, err := WithIsolatedRole("postgres://app:secret@db:5432/apartments?sslmode=disable", "Runner-A", "42")
	require.NoError(t, err)
	assert.Equal(t, "postgres://runner-a-42:secret@db:5432/apartments?sslmode=disable", out)
}

func TestWithIsolatedRoleRejectsEmptyIDs(t *testing.T) {
	_, err := WithIsolatedRole("postgres://app:secret@db/apartments", "", "42")
	assert.Error(t, err)
}

func TestWithIsolatedRoleRequiresCredentials(t *testing.T) {
	_, err := WithIsolatedRole("postgres://db/apartments", "runner", "1")
	assert.Error(t, err)
}
