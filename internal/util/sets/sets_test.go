package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("b", "a")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Add("c"))
	s.Delete("b")
	assert.False(t, s.Has("b"))
	assert.Equal(t, []string{"a", "c"}, Sorted(s))
	assert.Empty(t, Sorted(New[string]()))
}
