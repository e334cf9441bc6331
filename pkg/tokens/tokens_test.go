package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	assert.Zero(t, Count(""))

	n := Count("hello world")
	assert.Positive(t, n)

	// Longer text must not shrink the count.
	assert.Greater(t, Count("hello world, hello again"), n)
}

func TestCountAll(t *testing.T) {
	a, b := "first part", "second part"
	assert.Equal(t, Count(a)+Count(b), CountAll(a, b))
	assert.Zero(t, CountAll())
}
