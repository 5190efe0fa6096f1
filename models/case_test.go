package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusRank(CaseStatusNew))
	assert.Equal(t, 6, StatusRank(CaseStatusClosed))
	assert.Equal(t, -1, StatusRank("ARCHIVED"))
}

func TestCanTransitionTo(t *testing.T) {
	c := &Case{Status: CaseStatusDemandLetterSent}

	// Forward moves, including skips, are allowed.
	assert.True(t, c.CanTransitionTo(CaseStatusPetitionFiled))
	assert.True(t, c.CanTransitionTo(CaseStatusSaleProcess))
	assert.True(t, c.CanTransitionTo(CaseStatusClosed))

	// Standing still and moving backwards are not.
	assert.False(t, c.CanTransitionTo(CaseStatusDemandLetterSent))
	assert.False(t, c.CanTransitionTo(CaseStatusNew))

	// Unknown statuses are rejected.
	assert.False(t, c.CanTransitionTo("ARCHIVED"))

	closed := &Case{Status: CaseStatusClosed}
	assert.False(t, closed.CanTransitionTo(CaseStatusSaleProcess))
	assert.True(t, closed.IsClosed())
}

func TestStatusDisplayName(t *testing.T) {
	assert.Equal(t, "Order Nisi Granted", StatusDisplayName(CaseStatusOrderNisiGranted))
	assert.Equal(t, "Redemption Period", StatusDisplayName(CaseStatusRedemptionPeriod))
	// Unknown statuses fall through as-is.
	assert.Equal(t, "ARCHIVED", StatusDisplayName("ARCHIVED"))
}
