package onpage_test

import (
	"testing"

	"github.com/hricks/onpage"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses runs of whitespace", input: "  hello \t\n  world ", want: "hello world"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \n\t ", want: ""},
		{name: "already normalized", input: "hello world", want: "hello world"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, onpage.Normalize(tt.input))
		})
	}
}

func TestSignatureKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "what is included?", onpage.SignatureKey("  What  IS \n Included? "))
	assert.Equal(t, onpage.SignatureKey("Free Trial"), onpage.SignatureKey("free\ttrial"))
}
