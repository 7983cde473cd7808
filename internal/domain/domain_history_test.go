package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryList_ToMapToList(t *testing.T) {
	list := HistoryList{
		{ID: "a", Time: 100},
		{ID: "b", Time: 300},
		{ID: "c", Time: 200},
		nil,
		{ID: "a", Time: 400, Pinned: true},
	}

	m := list.ToMap()
	assert.Len(t, m, 3)
	assert.True(t, m["a"].Pinned)

	out := m.ToList()
	ids := make([]string, 0, len(out))
	for _, e := range out {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestHistoryList_ToListTieBreak(t *testing.T) {
	m := HistoryMap{
		"z": {ID: "z", Time: 1},
		"y": {ID: "y", Time: 1},
	}
	out := m.ToList()
	assert.Equal(t, "y", out[0].ID)
	assert.Equal(t, "z", out[1].ID)
}

func TestHistoryEntry_Clone(t *testing.T) {
	e := &HistoryEntry{ID: "a", Tags: []string{"x"}}
	c := e.Clone()
	c.Tags[0] = "y"
	assert.Equal(t, "x", e.Tags[0])

	empty := (&HistoryEntry{ID: "b", Tags: []string{}}).Clone()
	assert.NotNil(t, empty.Tags)
	assert.Nil(t, (&HistoryEntry{ID: "c"}).Clone().Tags)
}
