package http

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

func record(id string) *BuildRecord {
	return &BuildRecord{Result: &entities.BuildResult{ID: id}, Exports: map[string]string{}}
}

func TestBuildRegistry(t *testing.T) {
	t.Run("list is newest first", func(t *testing.T) {
		registry := NewBuildRegistry(10)
		for i := 1; i <= 3; i++ {
			registry.Add(record(fmt.Sprintf("b%d", i)))
		}

		list := registry.List()
		require.Len(t, list, 3)
		assert.Equal(t, "b3", list[0].Result.ID)
		assert.Equal(t, "b1", list[2].Result.ID)
	})

	t.Run("oldest builds are evicted", func(t *testing.T) {
		registry := NewBuildRegistry(2)
		registry.Add(record("b1"))
		registry.Add(record("b2"))
		registry.Add(record("b3"))

		assert.Equal(t, 2, registry.Len())
		_, ok := registry.Get("b1")
		assert.False(t, ok)
		_, ok = registry.Get("b3")
		assert.True(t, ok)
	})

	t.Run("re-adding replaces without duplicating", func(t *testing.T) {
		registry := NewBuildRegistry(2)
		registry.Add(record("b1"))
		updated := record("b1")
		updated.Exports["preview"] = "/tmp/sheet.png"
		registry.Add(updated)

		assert.Equal(t, 1, registry.Len())
		got, ok := registry.Get("b1")
		require.True(t, ok)
		assert.Equal(t, "/tmp/sheet.png", got.Exports["preview"])
	})

	t.Run("non-positive limit uses the default", func(t *testing.T) {
		assert.Equal(t, defaultRegistrySize, NewBuildRegistry(0).limit)
	})
}
