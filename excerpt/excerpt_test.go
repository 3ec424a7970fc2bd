package excerpt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlain(t *testing.T) {
	got, err := Plain("<p>Hello world.</p><p>It&#x27;s   fine.</p>")
	require.NoError(t, err)
	assert.Equal(t, "Hello world. It's fine.", got)
}

func TestPlain_Empty(t *testing.T) {
	got, err := Plain("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSentences(t *testing.T) {
	got, err := Sentences("We shipped a thing. Nobody noticed. Then everyone did.")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "We shipped a thing.", got[0])
}

func TestSummarize_Short(t *testing.T) {
	got, err := Summarize("<p>What is your favourite editor?</p>", 2)
	require.NoError(t, err)
	assert.Equal(t, "What is your favourite editor?", got)
}

func TestSummarize_Long(t *testing.T) {
	html := "<p>I have been building a database engine for three years.</p>" +
		"<p>The database engine stores data in a log structured merge tree.</p>" +
		"<p>My cat sleeps on the keyboard most afternoons.</p>" +
		"<p>Writes to the database engine are batched into the merge tree.</p>" +
		"<p>I would love feedback on the database engine design.</p>"

	plain, err := Plain(html)
	require.NoError(t, err)

	got, err := Summarize(html, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.Less(t, len(got), len(plain))
	assert.False(t, strings.Contains(got, "<p>"))
}

func TestSummarize_Nothing(t *testing.T) {
	got, err := Summarize("", 2)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
