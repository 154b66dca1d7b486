package models

// Active-flag values. The column is CHAR(1) text holding Y/N, not a
// boolean; the same convention covers the dictionary key/null flags.
const (
	FlagYes = "Y"
	FlagNo  = "N"
)

// Column widths applied before insert/update. Oversized input is stored
// clipped, never rejected.
const (
	MaxNameLen        = 255
	MaxTypeLen        = 50
	MaxDataTypeLen    = 100
	MaxDescriptionLen = 500
)

// FlagFromBool converts a boolean into the Y/N flag convention.
func FlagFromBool(b bool) string {
	if b {
		return FlagYes
	}
	return FlagNo
}

// DefaultFlag returns FlagYes for empty input, preserving an explicit
// Y or N otherwise.
func DefaultFlag(flag string) string {
	if flag == "" {
		return FlagYes
	}
	return flag
}

// Truncate clips s to max characters, counting runes so multibyte text
// is never split mid-character.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
