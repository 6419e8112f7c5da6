package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mssp/backend/internal/domain/customfield"
)

func newTestDefinition(t *testing.T, name string) *customfield.FieldDefinition {
	t.Helper()
	def, err := customfield.NewFieldDefinition(customfield.EntityTypeClient, name, name, customfield.FieldTypeText)
	require.NoError(t, err)
	def.ClearDomainEvents()
	return def
}

func TestInMemoryDefinitionCache_GetSet(t *testing.T) {
	c := NewInMemoryDefinitionCache()
	defer c.Close()

	t.Run("miss on empty cache", func(t *testing.T) {
		defs, ok := c.Get(customfield.EntityTypeClient)
		assert.False(t, ok)
		assert.Nil(t, defs)
	})

	t.Run("hit after set", func(t *testing.T) {
		stored := []*customfield.FieldDefinition{newTestDefinition(t, "region")}
		c.Set(customfield.EntityTypeClient, stored)

		defs, ok := c.Get(customfield.EntityTypeClient)
		assert.True(t, ok)
		require.Len(t, defs, 1)
		assert.Equal(t, "region", defs[0].Name)
	})

	t.Run("entity types are cached independently", func(t *testing.T) {
		_, ok := c.Get(customfield.EntityTypeContract)
		assert.False(t, ok)
	})
}

func TestInMemoryDefinitionCache_Invalidate(t *testing.T) {
	c := NewInMemoryDefinitionCache()
	defer c.Close()

	c.Set(customfield.EntityTypeClient, []*customfield.FieldDefinition{newTestDefinition(t, "region")})
	c.Invalidate(customfield.EntityTypeClient)

	_, ok := c.Get(customfield.EntityTypeClient)
	assert.False(t, ok)
}

func TestInMemoryDefinitionCache_TTLExpiry(t *testing.T) {
	c := NewInMemoryDefinitionCache(WithDefinitionTTL(10 * time.Millisecond))
	defer c.Close()

	c.Set(customfield.EntityTypeClient, []*customfield.FieldDefinition{newTestDefinition(t, "region")})
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(customfield.EntityTypeClient)
	assert.False(t, ok)

	_, misses := c.GetStats()
	assert.GreaterOrEqual(t, misses, int64(1))
}
