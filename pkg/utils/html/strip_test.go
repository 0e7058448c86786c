package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "  hello   world ", "hello world"},
		{"tags", "<p>Hello <b>Go</b></p>", "Hello Go"},
		{"entities", "Fish &amp; Chips &lt;3", "Fish & Chips <3"},
		{"script removed", "<div>a<script>alert(1)</script>b</div>", "ab"},
		{"style removed", "<style>p{color:red}</style><p>text</p>", "text"},
		{"block separation", "<p>one</p><p>two</p>", "one two"},
		{"line breaks", "line<br>next", "line next"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "电子...", Truncate("电子杂志", 2))
	assert.Equal(t, "unlimited", Truncate("unlimited", 0))
}
