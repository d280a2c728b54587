package typehint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yamlcore/yamlcore/typehint"
)

func TestGuess(t *testing.T) {
	cases := map[string]typehint.Kind{
		"":            typehint.Null,
		"~":           typehint.Null,
		"null":        typehint.Null,
		"Null":        typehint.Null,
		"NULL":        typehint.Null,
		"true":        typehint.Bool,
		"False":       typehint.Bool,
		"yes":         typehint.Bool,
		"OFF":         typehint.Bool,
		"42":          typehint.Int,
		"-7":          typehint.Int,
		"+3":          typehint.Int,
		"0x1F":        typehint.Int,
		"0o17":        typehint.Int,
		"0b101":       typehint.Int,
		"3.14":        typehint.Float,
		"-1.5e10":     typehint.Float,
		".5":          typehint.Float,
		".inf":        typehint.Inf,
		"-.Inf":       typehint.Inf,
		".nan":        typehint.NaN,
		"hello world": typehint.Unknown,
		"1.2.3":       typehint.Unknown,
	}
	for in, want := range cases {
		assert.Equalf(t, want, typehint.Guess(in), "Guess(%q)", in)
	}
}

func TestGuessPurity(t *testing.T) {
	// depends only on s, regardless of how many times or in what order it's
	// called (spec §8 "type hint purity").
	assert.Equal(t, typehint.Guess("42"), typehint.Guess("42"))
	_ = typehint.Guess("unrelated")
	assert.Equal(t, typehint.Int, typehint.Guess("42"))
}
