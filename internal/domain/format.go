package domain

import (
	"fmt"
	"math"
	"strings"
)

var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count in base-1024 units, rounded to two
// decimal places with trailing zeros trimmed down to one decimal
// (1024 -> "1.0 KB", 1536 -> "1.5 KB", 1572864+51200 -> "1.55 MB").
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	value := float64(bytes)
	exp := 0
	for value >= 1024 && exp < len(sizeUnits)-1 {
		value /= 1024
		exp++
	}
	rounded := math.Round(value*100) / 100

	s := fmt.Sprintf("%.2f", rounded)
	if strings.HasSuffix(s, "0") {
		s = s[:len(s)-1]
	}
	return s + " " + sizeUnits[exp]
}

// Reserved device names on Windows shares; a folder with one of these
// as its first dot-separated segment cannot be created on the NAS.
var reservedFolderNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// IsValidFolderName checks that a subfolder name is legal on the
// destination filesystem: non-empty, no control characters or
// <>:"/\|?* , not a reserved device name, no trailing dot or space.
func IsValidFolderName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(`<>:"/\|?*`, r) {
			return false
		}
	}
	stem, _, _ := strings.Cut(name, ".")
	if _, reserved := reservedFolderNames[strings.ToUpper(stem)]; reserved {
		return false
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return false
	}
	return true
}
