package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckHealth(t *testing.T) {
	status := CheckHealth(context.Background(), pingerFunc(func(context.Context) error { return nil }), nil)
	assert.True(t, status.Store)
	assert.Nil(t, status.Cache)
	assert.Equal(t, status, GetHealthStatus())

	status = CheckHealth(context.Background(), pingerFunc(func(context.Context) error { return errors.New("down") }), nil)
	assert.False(t, status.Store)
	assert.False(t, GetHealthStatus().Store)
}
