package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Todo {
	return []Todo{
		{ID: 1, Name: "a", Completed: true},
		{ID: 2, Name: "b", Completed: false},
		{ID: 3, Name: "c", Completed: true},
	}
}

func TestVisible(t *testing.T) {
	todos := sample()

	completed := Visible(todos, FilterCompleted)
	assert.Equal(t, []Todo{todos[0], todos[2]}, completed)

	incomplete := Visible(todos, FilterIncomplete)
	assert.Equal(t, []Todo{todos[1]}, incomplete)

	all := Visible(todos, FilterAll)
	assert.Equal(t, todos, all)
}

func TestVisibleDoesNotMutate(t *testing.T) {
	todos := sample()
	out := Visible(todos, FilterAll)
	out[0].Name = "changed"
	assert.Equal(t, "a", todos[0].Name)
	assert.Equal(t, sample(), todos)
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
	}{
		{"", FilterAll},
		{"all", FilterAll},
		{"Completed", FilterCompleted},
		{"INCOMPLETE", FilterIncomplete},
		{"pending", FilterIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFilter("someday")
	assert.Error(t, err)
}

func TestFilterNextAndLabel(t *testing.T) {
	assert.Equal(t, FilterCompleted, FilterAll.Next())
	assert.Equal(t, FilterIncomplete, FilterCompleted.Next())
	assert.Equal(t, FilterAll, FilterIncomplete.Next())
	assert.Equal(t, "Incomplete", FilterIncomplete.Label())
	assert.Equal(t, "filter(7)", Filter(7).String())
}

func TestStats(t *testing.T) {
	done, pending := Stats(sample())
	assert.Equal(t, 2, done)
	assert.Equal(t, 1, pending)
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank(" \t\n"))
	assert.False(t, Blank("a"))
	assert.False(t, Blank("  padded  "))
}
