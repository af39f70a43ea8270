package diff

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangesReplacedLine(t *testing.T) {
	got := NewEngine().Changes("a\nb\nc\n", "a\nB\nc\n")
	want := []Line{
		{OldNum: 2, Content: "b", Type: LineRemoved},
		{NewNum: 2, Content: "B", Type: LineAdded},
	}
	assert.ElementsMatch(t, want, got)
}

func TestLinesNumbering(t *testing.T) {
	got := NewEngine().Lines("one\ntwo\nthree\n", "one\nthree\nfour\n")
	want := []Line{
		{OldNum: 1, NewNum: 1, Content: "one", Type: LineContext},
		{OldNum: 2, Content: "two", Type: LineRemoved},
		{OldNum: 3, NewNum: 2, Content: "three", Type: LineContext},
		{NewNum: 3, Content: "four", Type: LineAdded},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", d)
	}
}

func TestIdenticalHasNoChanges(t *testing.T) {
	text := "x = 1\nx = 2\n"
	assert.Empty(t, Changes(text, text))
	assert.Len(t, Lines(text, text), 2)
}

func TestFromEmpty(t *testing.T) {
	got := Changes("", "x = 1\nNo solution\n")
	require.Len(t, got, 2)
	added, removed := Count(got)
	assert.Equal(t, 2, added)
	assert.Zero(t, removed)
	assert.Equal(t, "+ No solution", got[1].String())
}

func TestCacheReturnsCopies(t *testing.T) {
	e := NewEngine()
	first := e.Lines("a\n", "b\n")
	first[0].Content = "mutated"
	second := e.Lines("a\n", "b\n")
	assert.NotEqual(t, "mutated", second[0].Content)

	e.ClearCache()
	assert.Equal(t, second, e.Lines("a\n", "b\n"))
}

func TestCacheIsBounded(t *testing.T) {
	e := NewEngine()
	for i := 0; i < 3*MaxCacheEntries; i++ {
		e.Lines("base\n", strconv.Itoa(i)+"\n")
		require.LessOrEqual(t, e.CacheLen(), MaxCacheEntries)
	}
	assert.Positive(t, e.CacheLen())

	e.ClearCache()
	assert.Zero(t, e.CacheLen())
}
