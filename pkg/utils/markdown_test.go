package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "end.", want: `end\.`},
		{in: "a_b*c", want: `a\_b\*c`},
		{in: "[x](y)", want: `\[x\]\(y\)`},
		{in: `back\slash`, want: `back\\slash`},
		{in: "1-2=3!", want: `1\-2\=3\!`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeMarkdownV2(tt.in), "input %q", tt.in)
	}
}

func TestMentionMarkdownV2(t *testing.T) {
	assert.Equal(t, `[John\_Doe](tg://user?id=42)`, MentionMarkdownV2(42, "John_Doe"))
}
