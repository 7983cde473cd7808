package lzstring

import (
	"strings"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressToBase64_Known(t *testing.T) {
	tests := map[string]string{
		"":                                     "Q===",
		"hello":                                "BYUwNmD2Q===",
		"hello world":                          "BYUwNmD2AEDukCcwBMg=",
		"aaaaaaaaaaaaaaaa":                     "IY1/EA==",
		"中文测试 ünï":                             "rRynDTTStoq9EAQD8HYHug==",
		"3b241101-e2bb-4255-8caf-4136c566a962": "MwIwTALAjFAMUFoCmYQgRMBWLCAcAxgIYBmGUwAbAVpZUQJyVhA=",
	}
	for in, want := range tests {
		assert.Equal(t, want, CompressToBase64(in), in)

		got, err := DecompressFromBase64(want)
		require.NoError(t, err, want)
		assert.Equal(t, in, got)
	}
}

func TestDecompressFromBase64_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"####",
		"MwIwTALAjFAMUFoCmYQgRMBW",
		strings.Repeat("z", 50),
	} {
		_, err := DecompressFromBase64(in)
		assert.ErrorIs(t, err, ErrMalformed, in)
	}
}

func TestCompress_RoundTrip(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	roundTrip := func(s string) bool {
		out, err := DecompressFromBase64(CompressToBase64(s))
		return err == nil && out == s
	}

	properties.Property("ascii round trip", prop.ForAll(roundTrip, gen.AlphaString()))
	properties.Property("han round trip", prop.ForAll(roundTrip, gen.UnicodeString(unicode.Han)))
	properties.Property("greek round trip", prop.ForAll(roundTrip, gen.UnicodeString(unicode.Greek)))

	properties.TestingRun(t)
}
