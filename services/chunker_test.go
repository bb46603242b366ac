package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		limit          int
		expectedChunks []string
	}{
		{
			name:           "empty input yields zero chunks",
			input:          "",
			limit:          10,
			expectedChunks: nil,
		},
		{
			name:           "short message - single chunk",
			input:          "hello",
			limit:          10,
			expectedChunks: []string{"hello"},
		},
		{
			name:           "input exactly at the limit yields exactly one chunk",
			input:          strings.Repeat("a", 10),
			limit:          10,
			expectedChunks: []string{strings.Repeat("a", 10)},
		},
		{
			name:           "hard cut when no line break in window",
			input:          strings.Repeat("a", 15),
			limit:          10,
			expectedChunks: []string{strings.Repeat("a", 10), strings.Repeat("a", 5)},
		},
		{
			name:           "line break inside window wins over hard cut",
			input:          "first line\nsecond",
			limit:          15,
			expectedChunks: []string{"first line\n", "second"},
		},
		{
			name:           "line break kept at end of chunk",
			input:          "ab\ncdefg",
			limit:          5,
			expectedChunks: []string{"ab\n", "cdefg"},
		},
		{
			name:           "last line break in window is chosen",
			input:          "a\nb\ncdefgh",
			limit:          6,
			expectedChunks: []string{"a\nb\n", "cdefgh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitMessage(tt.input, tt.limit)
			assert.Equal(t, tt.expectedChunks, chunks)
		})
	}
}

func TestSplitMessageProperties(t *testing.T) {
	inputs := []string{
		"",
		"short",
		strings.Repeat("a", 1999),
		strings.Repeat("a", 2000),
		strings.Repeat("a", 2001),
		strings.Repeat("word ", 1000),
		strings.Repeat("line one\nline two\n", 500),
		strings.Repeat("x", 5000) + "\n" + strings.Repeat("y", 5000),
	}

	for _, input := range inputs {
		chunks := SplitMessage(input, DiscordMessageLimit)

		// Every chunk stays within the limit
		for i, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), DiscordMessageLimit, "chunk %d exceeds limit", i)
		}

		// Concatenation reconstructs the input exactly, line breaks included
		assert.Equal(t, input, strings.Join(chunks, ""))
	}
}

func TestSplitMessagePrefersLineBreakBoundary(t *testing.T) {
	// A line break within the last portion of the window must become the
	// boundary instead of a mid-line hard cut.
	input := strings.Repeat("a", 1990) + "\n" + strings.Repeat("b", 100)
	chunks := SplitMessage(input, DiscordMessageLimit)

	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("a", 1990)+"\n", chunks[0])
	assert.Equal(t, strings.Repeat("b", 100), chunks[1])
}

func TestSplitMessageHardCutKeepsRunesIntact(t *testing.T) {
	input := strings.Repeat("é", 600) // 2 bytes per rune, no line breaks
	chunks := SplitMessage(input, 1001)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1000, len(chunks[0]), "cut should back off to a rune boundary")
	assert.Equal(t, input, strings.Join(chunks, ""))
}

func TestSplitMessagePanicsOnNonPositiveLimit(t *testing.T) {
	assert.Panics(t, func() {
		SplitMessage("text", 0)
	})
}

func TestTrimMessage(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedLength int
		expectTrimmed  bool
	}{
		{
			name:           "short message - no trimming needed",
			input:          "Hello, this is a short message",
			expectedLength: 30,
			expectTrimmed:  false,
		},
		{
			name:           "exactly 2000 characters - no trimming needed",
			input:          strings.Repeat("a", 2000),
			expectedLength: 2000,
			expectTrimmed:  false,
		},
		{
			name:           "2001 characters - trimmed with ellipsis",
			input:          strings.Repeat("a", 2001),
			expectedLength: 2000,
			expectTrimmed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TrimMessage(tt.input)

			assert.LessOrEqual(t, len(result), DiscordMessageLimit)
			assert.Equal(t, tt.expectedLength, len(result))

			if tt.expectTrimmed {
				assert.True(t, strings.HasSuffix(result, "..."))
			} else {
				assert.Equal(t, tt.input, result)
			}
		})
	}
}

func TestTrimMessageKeepsRunesIntact(t *testing.T) {
	input := strings.Repeat("é", 1200) // 2400 bytes, no rune starts at offset 1997

	result := TrimMessage(input)

	assert.LessOrEqual(t, len(result), DiscordMessageLimit)
	assert.True(t, strings.HasSuffix(result, "..."))
	assert.True(t, utf8.ValidString(result), "trimmed message must stay valid UTF-8")
}
