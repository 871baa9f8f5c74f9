package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDocPath(t *testing.T) {
	key, inner, err := splitDocPath("/users/abc/leads/L1/")
	require.NoError(t, err)
	assert.Equal(t, "users/abc", key)
	assert.Equal(t, []string{"leads", "L1"}, inner)

	_, _, err = splitDocPath("users")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestSetInCreatesAndPrunes(t *testing.T) {
	var doc any
	doc = setIn(doc, []string{"leads", "L1", "name"}, "Priya")
	doc = setIn(doc, []string{"leads", "L2", "name"}, "Raj")
	assert.Equal(t, "Priya", getIn(doc, []string{"leads", "L1", "name"}))

	doc = setIn(doc, []string{"leads", "L1"}, nil)
	assert.Nil(t, getIn(doc, []string{"leads", "L1"}))
	assert.NotNil(t, getIn(doc, []string{"leads", "L2"}))

	// remover o último filho poda o nó pai
	doc = setIn(doc, []string{"leads", "L2"}, nil)
	assert.Nil(t, doc)
}

func TestGetInReadsListIndexes(t *testing.T) {
	doc := map[string]any{
		"leadStatuses": []any{
			map[string]any{"name": "New"},
			map[string]any{"name": "Junk"},
		},
	}
	assert.Equal(t, "Junk", getIn(doc, []string{"leadStatuses", "1", "name"}))
	assert.Nil(t, getIn(doc, []string{"leadStatuses", "9"}))
	assert.Nil(t, getIn(doc, []string{"leadStatuses", "x"}))
}

func TestNormalizeDropsEmptyMaps(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}
	v, err := normalize(map[string]any{"a": item{Name: "x"}, "b": map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"name": "x"}}, v)

	v, err = normalize(map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestValidSegment(t *testing.T) {
	assert.NoError(t, ValidSegment("01hx3k"))
	for _, s := range []string{"", " ", " L1", "L1 ", "a/b", "/"} {
		assert.ErrorIs(t, ValidSegment(s), ErrInvalidPath, "segmento %q", s)
	}
}
