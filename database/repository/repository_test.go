package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventRepository(t *testing.T) {
	repo, err := NewEventRepository("memory", nil, "slotbook", "events")
	require.NoError(t, err)
	assert.NotNil(t, repo)

	_, err = NewEventRepository("mongo", nil, "slotbook", "events")
	assert.Error(t, err)

	_, err = NewEventRepository("sqlite", nil, "slotbook", "events")
	assert.Error(t, err)
}
