package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintDistinguishesKinds(t *testing.T) {
	text := TextContent("PNG")
	img := ImageContent([]byte("PNG"), "")

	assert.NotEqual(t, text.Fingerprint(), img.Fingerprint())
}

func TestFingerprintStable(t *testing.T) {
	a := TextContent("hello world")
	b := TextContent("hello world")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestPreviewFirstLineTruncated(t *testing.T) {
	tests := []struct {
		name     string
		content  Content
		max      int
		expected string
	}{
		{
			name:     "single line under limit",
			content:  TextContent("short"),
			max:      40,
			expected: "short",
		},
		{
			name:     "multi-line keeps first line",
			content:  TextContent("first\nsecond\nthird"),
			max:      40,
			expected: "first",
		},
		{
			name:     "long line truncated with ellipsis",
			content:  TextContent("abcdefghij"),
			max:      5,
			expected: "abcde...",
		},
		{
			name:     "image renders label",
			content:  ImageContent([]byte{1, 2, 3}, "image/png"),
			max:      40,
			expected: "[image: image/png (3 bytes)]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.content.Preview(tt.max))
		})
	}
}

func TestSearchTextNeverExposesImageBytes(t *testing.T) {
	img := ImageContent([]byte("secret-bytes"), "image/png")

	require.Equal(t, "[image image/png]", img.SearchText())
}

func TestValidRegisterName(t *testing.T) {
	assert.True(t, ValidRegisterName('a'))
	assert.True(t, ValidRegisterName('Z'))
	assert.False(t, ValidRegisterName('0'))
	assert.False(t, ValidRegisterName(' '))
	assert.False(t, ValidRegisterName(0))
}
