package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NumeroPrefix starts every intervention numero.
const NumeroPrefix = "INT-"

// NumeroFromSeq formats a sequence number as a numero, zero-padded to three
// digits ("INT-007"). Larger values widen naturally ("INT-1000").
func NumeroFromSeq(n int) string {
	return fmt.Sprintf("%s%03d", NumeroPrefix, n)
}

// NumeroSeq extracts the numeric suffix of an "INT-NNN" numero. ok is false
// for numeros that do not follow the pattern.
func NumeroSeq(numero string) (n int, ok bool) {
	suffix, found := strings.CutPrefix(strings.TrimSpace(numero), NumeroPrefix)
	if !found || suffix == "" {
		return 0, false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextNumero returns the numero following the highest "INT-NNN" among
// existing, or "INT-001" when none match.
func NextNumero(existing []string) string {
	highest := 0
	for _, num := range existing {
		if n, ok := NumeroSeq(num); ok && n > highest {
			highest = n
		}
	}
	return NumeroFromSeq(highest + 1)
}
