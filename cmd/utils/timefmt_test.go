package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHHMM(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "00:00", want: 0},
		{value: "09:30", want: 570},
		{value: "18:00", want: 1080},
		{value: "23:59", want: 1439},
		{value: "24:00", wantErr: true},
		{value: "12:60", wantErr: true},
		{value: "not a time", wantErr: true},
		{value: "", wantErr: true},
		// Unpadded values would break the string comparisons in the window
		// and ordering logic, so they must not get past the parser.
		{value: "9:00", wantErr: true},
		{value: "10:0", wantErr: true},
		{value: "9:0", wantErr: true},
		{value: "09:5x", wantErr: true},
		{value: "0900", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseHHMM(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatHHMM(t *testing.T) {
	assert.Equal(t, "00:00", FormatHHMM(0))
	assert.Equal(t, "09:05", FormatHHMM(545))
	assert.Equal(t, "18:00", FormatHHMM(1080))
	assert.Equal(t, "23:59", FormatHHMM(1439))
}
