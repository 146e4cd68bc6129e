package shell

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBraceExpand(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a{b,c}d", []string{"abd", "acd"}},
		{"{x,y}", []string{"x", "y"}},
		{"no-braces", []string{"no-braces"}},
		{"{single}", []string{"{single}"}},
		{"a{b,c}{1,2}", []string{"ab1", "ab2", "ac1", "ac2"}},
		{"a{b{1,2},c}d", []string{"ab1d", "ab2d", "acd"}},
		{"empty{,x}", []string{"empty", "emptyx"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BraceExpand(c.in), "BraceExpand(%q)", c.in)
	}
}

func TestExpandTokens_Variables(t *testing.T) {
	t.Setenv("DEN_TEST_VAR", "value")

	words := ExpandTokens([]Token{
		{Val: "echo"},
		{Val: "$DEN_TEST_VAR"},
		{Val: "${DEN_TEST_VAR}x"},
		{Val: "$DEN_TEST_VAR", Literal: true},
	})
	assert.Equal(t, []string{"echo", "value", "valuex", "$DEN_TEST_VAR"}, words)
}

func TestExpandTokens_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	words := ExpandTokens([]Token{{Val: "~"}, {Val: "~/x"}, {Val: "a~b"}})
	assert.Equal(t, []string{home, home + "/x", "a~b"}, words)
}

func TestExpandTokens_BracesBeforeVariables(t *testing.T) {
	t.Setenv("DEN_TEST_A", "1")
	t.Setenv("DEN_TEST_B", "2")

	words := ExpandTokens([]Token{{Val: "${DEN_TEST_A},{x,y}"}})
	assert.Equal(t, []string{"1,x", "1,y"}, words)
}
