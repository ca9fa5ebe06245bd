package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.Len(t, id, 26)
		assert.False(t, seen[id], "ids must be unique")
		seen[id] = true
	}
}

func TestNewID_SortsByCreationTime(t *testing.T) {
	first := NewID()
	time.Sleep(2 * time.Millisecond)
	second := NewID()

	assert.Less(t, first, second, "ids minted in later milliseconds sort after earlier ones")
}
