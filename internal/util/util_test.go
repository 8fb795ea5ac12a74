package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimQuotes(t *testing.T) {
	assert.Equal(t, "abc", TrimQuotes(`"abc"`))
	assert.Equal(t, "abc", TrimQuotes("abc"))
	assert.Equal(t, "", TrimQuotes(`""`))
}

func TestFixEscapeQuotes(t *testing.T) {
	assert.Equal(t, `{"a":"b"}`, FixEscapeQuotes(`{""a"":""b""}`))
}

func TestParseDegrees(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"integer", "45", 45, false},
		{"quoted", `"90"`, 90, false},
		{"float rounds down", "29.4", 29, false},
		{"float rounds up", "29.6", 30, false},
		{"degree sign", "180°", 180, false},
		{"negative", "-15", -15, false},
		{"garbage", "north", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDegrees(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDegrees(t *testing.T) {
	assert.Equal(t, "0°", FormatDegrees(0))
	assert.Equal(t, "359°", FormatDegrees(359))
}
