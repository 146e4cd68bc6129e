package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_AddAndSnapshot(t *testing.T) {
	h := NewHistory([]string{"old"}, 10)
	h.Add("ls")
	h.Add("ls") // consecutive duplicate dropped
	h.Add("pwd")
	h.Add("")

	assert.Equal(t, []string{"old", "ls", "pwd"}, h.Entries())
	assert.Equal(t, 3, h.Len())
}

func TestHistory_TrimsToMax(t *testing.T) {
	h := NewHistory(nil, 3)
	for i := 0; i < 5; i++ {
		h.Add(fmt.Sprintf("cmd-%d", i))
	}
	assert.Equal(t, []string{"cmd-2", "cmd-3", "cmd-4"}, h.Entries())
}

func TestHistory_SeedLargerThanMax(t *testing.T) {
	h := NewHistory([]string{"a", "b", "c", "d"}, 2)
	assert.Equal(t, []string{"c", "d"}, h.Entries())
}

func TestHistory_SnapshotIsACopy(t *testing.T) {
	h := NewHistory(nil, 10)
	h.Add("ls")
	snap := h.Entries()
	snap[0] = "mutated"
	assert.Equal(t, []string{"ls"}, h.Entries())
}
