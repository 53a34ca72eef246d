package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeCountKey(t *testing.T) {
	assert.Equal(t, "like:cnt:post:42", LikeCountKey(42))
}

func TestNopLikeCounterAlwaysMisses(t *testing.T) {
	var c LikeCounter = NopLikeCounter{}
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, 1, 5))
	assert.NoError(t, c.Fill(ctx, 1, 5))
	_, ok, err := c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx, 1))
}
