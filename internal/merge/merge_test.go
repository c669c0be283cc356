package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type kv struct {
	Key   string
	Value int
}

func kvKey(e kv) string { return e.Key }

func TestOptional(t *testing.T) {
	base := "base"
	self := "self"

	assert.Equal(t, &self, Optional(&self, &base))
	assert.Equal(t, &base, Optional[string](nil, &base))
	assert.Nil(t, Optional[string](nil, nil))
}

func TestNonEmpty(t *testing.T) {
	assert.Equal(t, "self", NonEmpty("self", "base"))
	assert.Equal(t, "base", NonEmpty("", "base"))
	assert.Equal(t, "", NonEmpty("", ""))
}

func TestNonEmptySlice(t *testing.T) {
	assert.Equal(t, []int{1}, NonEmptySlice([]int{1}, []int{2, 3}))
	assert.Equal(t, []int{2, 3}, NonEmptySlice(nil, []int{2, 3}))
	assert.Empty(t, NonEmptySlice[int](nil, nil))
}

func TestIdentitySet(t *testing.T) {
	t.Run("collision keeps base position with self content", func(t *testing.T) {
		base := []kv{{"a", 1}, {"b", 2}, {"c", 3}}
		self := []kv{{"b", 20}, {"d", 4}}

		merged := IdentitySet(self, base, kvKey)

		assert.Equal(t, []kv{{"a", 1}, {"b", 20}, {"c", 3}, {"d", 4}}, merged)
	})

	t.Run("no key from either side is dropped", func(t *testing.T) {
		base := []kv{{"x", 1}}
		self := []kv{{"y", 2}, {"z", 3}}

		merged := IdentitySet(self, base, kvKey)

		keys := make(map[string]bool)
		for _, e := range merged {
			keys[e.Key] = true
		}
		for _, want := range []string{"x", "y", "z"} {
			assert.True(t, keys[want], "key %s missing from merge result", want)
		}
	})

	t.Run("merge with self is identity", func(t *testing.T) {
		set := []kv{{"a", 1}, {"b", 2}}

		assert.Equal(t, set, IdentitySet(set, set, kvKey))
	})

	t.Run("empty base", func(t *testing.T) {
		self := []kv{{"a", 1}}

		assert.Equal(t, self, IdentitySet(self, nil, kvKey))
	})
}

func TestAppend(t *testing.T) {
	t.Run("self appends after base", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4}, Append([]int{3, 4}, []int{1, 2}))
	})

	t.Run("duplicates are preserved", func(t *testing.T) {
		assert.Equal(t, []int{1, 1}, Append([]int{1}, []int{1}))
	})
}
