package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "accented upper", input: "JOÃO", want: "joao"},
		{name: "accented mixed with spaces", input: "  João  ", want: "joao"},
		{name: "full name", input: "José da Conceição", want: "jose da conceicao"},
		{name: "cedilla and tilde", input: "Ação", want: "acao"},
		{name: "already canonical", input: "maria", want: "maria"},
		{name: "empty", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

// Variants of the same name must collapse to one grouping key.
func TestNormalizeGroupsVariants(t *testing.T) {
	variants := []string{"João Silva", "JOÃO SILVA", " joão silva ", "Joao Silva"}
	for _, v := range variants {
		assert.Equal(t, "joao silva", Normalize(v))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, input := range []string{"João", "maria clara", "JOSÉ"} {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}
