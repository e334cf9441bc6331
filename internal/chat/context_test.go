package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextStore_InsertionOrder(t *testing.T) {
	store := NewContextStore()
	store.Add("role", "Senior consultant")
	store.Add("expertise", "Infrastructure")
	store.Add("location", "Southeast Asia")

	assert.Equal(t, []string{"role", "expertise", "location"}, store.Names())
	assert.Equal(t, 3, store.Len())
}

func TestContextStore_ReAddKeepsPositionReplacesContent(t *testing.T) {
	store := NewContextStore()
	store.Add("a", "first")
	store.Add("b", "second")
	store.Add("a", "updated")

	assert.Equal(t, []string{"a", "b"}, store.Names())

	content, ok := store.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "updated", content)
}

func TestContextStore_GetUnknown(t *testing.T) {
	store := NewContextStore()

	content, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, content)
}

func TestContextStore_FormatAll(t *testing.T) {
	store := NewContextStore()
	assert.Equal(t, "", store.FormatAll())

	store.Add("a", "x")
	store.Add("b", "y")
	assert.Equal(t, "[a]\nx\n\n[b]\ny\n", store.FormatAll())
}

func TestContextStore_EmptyNameAndContentAccepted(t *testing.T) {
	store := NewContextStore()
	store.Add("", "")

	assert.Equal(t, []string{""}, store.Names())
	assert.Equal(t, "[]\n\n", store.FormatAll())
}
