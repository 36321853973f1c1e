package utils

import "fmt"

// ParseHHMM converts a zero-padded "HH:mm" string to minutes from midnight.
// Unpadded input like "9:00" is rejected: times are compared and ordered as
// strings throughout, which is only sound when every value is zero-padded.
func ParseHHMM(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", value)
	}
	for i, c := range value {
		if i != 2 && (c < '0' || c > '9') {
			return 0, fmt.Errorf("invalid time %q: expected HH:mm", value)
		}
	}
	hours := int(value[0]-'0')*10 + int(value[1]-'0')
	minutes := int(value[3]-'0')*10 + int(value[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", value)
	}
	return hours*60 + minutes, nil
}

// FormatHHMM renders minutes from midnight as a zero-padded "HH:mm" string.
func FormatHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
