package parser

import (
	"testing"

	"github.com/getlawrence/antiplag/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected float64
	}{
		{"sim percentage", "a1.cpp consists for 62 %_ of b2.cpp material", 0.62},
		{"no percent sign", "some console output", 0},
		{"empty output", "", 0},
		{"full match", "t1.java consists for 100 % of t2.java material", 1},
		{"single digit", "x consists for 7 % of y material", 0.07},
		{
			"multiline sim report",
			"File t1.cpp: 120 tokens, 20 lines\nFile t2.cpp: 118 tokens, 19 lines\nt1.cpp consists for 45 % of t2.cpp material\n",
			0.45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToolOutput(tt.output)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestParseToolOutput_MalformedPercentage(t *testing.T) {
	for _, output := range []string{
		"a1.cpp consists for 1a %_ of b2.cpp material",
		"a1.cpp consists for xx %_ of b2.cpp material",
		"%",
	} {
		t.Run(output, func(t *testing.T) {
			_, err := ParseToolOutput(output)
			require.Error(t, err)
			assert.Equal(t, domain.KindParsing, domain.KindOf(err))

			var de *domain.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, domain.MsgParsing, de.Message)
		})
	}
}

func TestParseLibraryOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected float64
	}{
		{"diff record", "35.42: ref __main__<1:0>, candidate __main__<1:0>", 0.3542},
		{"full match", "100.00: ref __main__<1:0>, candidate __main__<1:0>", 1},
		{"no match", "0.00: ref __main__<1:0>, candidate __main__<1:0>", 0},
		{"last token wins", "12.50 then 55.19: ref f<3:0>, candidate g<1:0>", 0.5519},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLibraryOutput(tt.output)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestParseLibraryOutput_NoToken(t *testing.T) {
	_, err := ParseLibraryOutput("ref __main__<1:0>, candidate __main__<1:0>")
	require.Error(t, err)

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindParsing, de.Kind)
	assert.Equal(t, "no numeric token found", de.Details)
}
