package registry

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := &registry[int]{}

	require.NoError(t, r.Register("NameCheap", 1))
	require.NoError(t, r.Register("callback", 2))
	require.NoError(t, r.Register("dyndns2", 3))

	err := r.Register("namecheap", 4)
	assert.True(t, errors.Is(err, ErrDup))
	assert.True(t, errors.Is(r.Register("  ", 5), ErrNoName))

	assert.True(t, r.IsRegistered("NAMECHEAP"))
	assert.Equal(t, 1, r.Get("namecheap"))
	assert.Equal(t, 0, r.Get("unknown"))
	assert.Equal(t, []string{"namecheap", "callback", "dyndns2"}, r.Names())

	r.Unregister("callback")
	assert.False(t, r.IsRegistered("callback"))
	assert.Equal(t, []string{"namecheap", "dyndns2"}, r.Names())
	assert.Equal(t, map[string]int{"namecheap": 1, "dyndns2": 3}, r.GetAll())

	r.Unregister("missing")
	assert.Len(t, r.Names(), 2)
}
