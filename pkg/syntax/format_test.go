package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmf/pkg/syntax"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name: "scenario",
			src:  "view(class:card){\"hi\"}\nstyle card{padding:rect_all(8px) backgroundColor:rgb(10,20,30)}",
			expected: "view(class: card) {\n" +
				"    \"hi\"\n" +
				"}\n" +
				"\n" +
				"style card {\n" +
				"    padding: rect_all(8px)\n" +
				"    backgroundColor: rgb(10, 20, 30)\n" +
				"}\n",
		},
		{
			name:     "uses stay together",
			src:      "use a.b\nuse c\nview {}",
			expected: "use a.b\nuse c\n\nview {}\n",
		},
		{
			name:     "floats and arrays",
			src:      "view(class: [a,b], w: 1.50px, h: 2.) {}",
			expected: "view(class: [a, b], w: 1.5px, h: 2.0) {}\n",
		},
		{
			name:     "title text",
			src:      "view {\n: Hello there\n}",
			expected: "view {\n    : Hello there\n}\n",
		},
		{
			name:     "absorbed text stays verbatim",
			src:      "view {\n  ~hi\n}\n",
			expected: "view {\n    ~hi\n}\n",
		},
		{
			name:     "nested style blocks",
			src:      "style {\ncard { gap: 4px }\n}",
			expected: "style {\n    card {\n        gap: 4px\n    }\n}\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			statements, diags := parse(testCase.src)
			require.Empty(t, diags)

			formatted := syntax.Format(statements)
			assert.Equal(t, testCase.expected, formatted)

			again, diags := parse(formatted)
			require.Empty(t, diags)
			assert.Equal(t, formatted, syntax.Format(again), "formatting is idempotent")
		})
	}
}

func TestFormatWithIndent(t *testing.T) {
	t.Parallel()

	statements, _ := parse("a { b {} }")
	assert.Equal(t, "a {\n  b {}\n}\n", syntax.FormatWith(statements, syntax.FormatOptions{Indent: 2}))
}
