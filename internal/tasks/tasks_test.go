package tasks

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/taskman/internal/model"
)

type unknownAction struct{}

func (unknownAction) actionName() string { return "bogus" }

func TestAddToEmptyList(t *testing.T) {
	m := NewMachine(nil)

	got := m.Reduce(nil, Add{Title: "Buy milk"})

	require.Len(t, got, 1)
	assert.Equal(t, "Buy milk", got[0].Title)
	assert.False(t, got[0].Completed)
	assert.Equal(t, model.Stats{Total: 1, Completed: 0}, model.Summarize(got))
}

func TestAddAssignsDistinctIncreasingIDs(t *testing.T) {
	m := NewMachine(nil)
	var list []model.Task
	for i := 0; i < 100; i++ {
		list = m.Reduce(list, Add{Title: "same tick"})
	}
	seen := map[int64]bool{}
	for i, task := range list {
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
		if i > 0 {
			assert.Greater(t, task.ID, list[i-1].ID)
		}
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	m := NewMachine(nil)
	start := []model.Task{{ID: 1, Title: "A"}}

	for _, title := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, start, m.Reduce(start, Add{Title: title}), "title %q", title)
	}
}

func TestToggle(t *testing.T) {
	m := NewMachine(nil)
	start := []model.Task{{ID: 1, Title: "A"}}

	got := m.Reduce(start, Toggle{ID: 1})

	require.Len(t, got, 1)
	assert.True(t, got[0].Completed)
	assert.Equal(t, 1, model.Summarize(got).Completed)
	assert.False(t, start[0].Completed, "input must not be mutated")
}

func TestToggleTwiceRestores(t *testing.T) {
	m := NewMachine(nil)
	start := []model.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B", Completed: true}}

	for _, id := range []int64{1, 2} {
		got := m.Reduce(m.Reduce(start, Toggle{ID: id}), Toggle{ID: id})
		assert.Equal(t, start, got)
	}
}

func TestToggleOnlyTouchesMatch(t *testing.T) {
	m := NewMachine(nil)
	start := []model.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"}}

	got := m.Reduce(start, Toggle{ID: 2})

	assert.Equal(t, []model.Task{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B", Completed: true},
		{ID: 3, Title: "C"},
	}, got)
}

func TestToggleMissingIDReturnsNewEqualList(t *testing.T) {
	m := NewMachine(nil)
	start := []model.Task{{ID: 1, Title: "A"}}

	got := m.Reduce(start, Toggle{ID: 42})

	assert.Equal(t, start, got)
	got[0].Title = "changed"
	assert.Equal(t, "A", start[0].Title, "result must be a new slice")
}

func TestDelete(t *testing.T) {
	m := NewMachine(nil)
	start := []model.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}

	got := m.Reduce(start, Delete{ID: 1})

	assert.Equal(t, []model.Task{{ID: 2, Title: "B"}}, got)
	assert.Equal(t, 1, model.Summarize(got).Total)
	assert.Len(t, start, 2)
}

func TestDeletePreservesOrder(t *testing.T) {
	m := NewMachine(nil)
	start := []model.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"}, {ID: 4, Title: "D"}}

	got := m.Reduce(start, Delete{ID: 3})

	assert.Equal(t, []model.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 4, Title: "D"}}, got)
}

func TestDeleteMissingID(t *testing.T) {
	m := NewMachine(nil)
	start := []model.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}

	assert.Equal(t, start, m.Reduce(start, Delete{ID: 99}))
}

func TestUnknownActionIsIgnored(t *testing.T) {
	m := NewMachine(nil)
	start := []model.Task{{ID: 1, Title: "A"}}

	assert.Equal(t, start, m.Reduce(start, unknownAction{}))
	assert.Equal(t, start, m.Reduce(start, nil))
	assert.Equal(t, "unknown", Name(nil))
}

func TestRandomSequencesKeepCountsConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := NewMachine(nil)
	var list []model.Task
	adds, deletes := 0, 0

	for step := 0; step < 2000; step++ {
		switch rng.Intn(3) {
		case 0:
			list = m.Reduce(list, Add{Title: "task"})
			adds++
		case 1:
			id := int64(rng.Intn(adds + 2))
			before := len(list)
			list = m.Reduce(list, Toggle{ID: id})
			assert.Equal(t, before, len(list))
		case 2:
			id := int64(rng.Intn(adds + 2))
			before := len(list)
			list = m.Reduce(list, Delete{ID: id})
			if len(list) < before {
				deletes++
			}
		}

		require.Equal(t, adds-deletes, len(list))
		done := 0
		for _, task := range list {
			if task.Completed {
				done++
			}
		}
		st := model.Summarize(list)
		require.Equal(t, len(list), st.Total)
		require.Equal(t, done, st.Completed)
	}
}

func TestCounterSeededAboveExisting(t *testing.T) {
	c := NewCounter([]model.Task{{ID: 5}, {ID: 17}, {ID: 3}})

	assert.Equal(t, int64(18), c.Next())
	assert.Equal(t, int64(19), c.Next())
}

func TestValidTitle(t *testing.T) {
	assert.True(t, ValidTitle("x"))
	assert.True(t, ValidTitle("  padded  "))
	assert.False(t, ValidTitle(""))
	assert.False(t, ValidTitle(" \t "))
}
