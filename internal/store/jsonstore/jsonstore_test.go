package jsonstore

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

func TestSaveThenLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "todos.json")
	todos := []model.Todo{{ID: 3, Name: "Buy milk"}, {ID: 1, Name: "Call mom", Completed: true}}

	require.NoError(t, Save(p, todos))
	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, todos, got)
}

func TestLoadMissing(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []model.Todo{{ID: 1, Name: "a"}}))
	assert.Equal(t, "[\n  {\n    \"id\": 1,\n    \"name\": \"a\",\n    \"completed\": false\n  }\n]\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestReadRejects(t *testing.T) {
	_, err := Read(strings.NewReader(`[{"id":1,"name":""}]`))
	assert.ErrorContains(t, err, "empty name")

	_, err = Read(strings.NewReader(`[{"id":1,"name":"  \t"}]`))
	assert.ErrorContains(t, err, "empty name")

	_, err = Read(strings.NewReader(`{not json`))
	assert.Error(t, err)
}
