package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestComplaintStatusFromLegacy(t *testing.T) {
	cases := []struct {
		name string
		code *int
		want ComplaintStatusType
	}{
		{"null is open", nil, ComplaintStatusOpen},
		{"zero is in progress", intPtr(0), ComplaintStatusInProgress},
		{"one is resolved", intPtr(1), ComplaintStatusResolved},
		{"unknown code is open", intPtr(7), ComplaintStatusOpen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComplaintStatusFromLegacy(tc.code))
		})
	}
}

func TestComplaintStatusIsActive(t *testing.T) {
	assert.True(t, ComplaintStatusOpen.IsActive())
	assert.True(t, ComplaintStatusInProgress.IsActive())
	assert.False(t, ComplaintStatusResolved.IsActive())
	assert.False(t, ComplaintStatusRejected.IsActive())
	assert.False(t, ComplaintStatusClosed.IsActive())
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "Ayse Yilmaz", JoinName(" Ayse ", "Yilmaz"))
	assert.Equal(t, "Ayse", JoinName("Ayse", ""))
	assert.Equal(t, "", JoinName("", "  "))
}

func TestParseUserKind(t *testing.T) {
	k, err := ParseUserKind("tenant")
	assert.NoError(t, err)
	assert.Equal(t, UserKindTenant, k)

	_, err = ParseUserKind("janitor")
	assert.Error(t, err)
}
