//go:build unix

package termtest

import (
	"regexp"
	"strings"
)

// Condition defines criteria for validating output relative to a Snapshot.
type Condition func(outputSinceSnapshot string) bool

// All creates a Condition that requires all given Conditions to be true.
func All(conds ...Condition) Condition {
	return func(s string) bool {
		for _, cond := range conds {
			if !cond(s) {
				return false
			}
		}
		return true
	}
}

// Not negates cond.
func Not(cond Condition) Condition {
	return func(s string) bool {
		return !cond(s)
	}
}

// Contains checks the output, with escape sequences and carriage returns
// stripped, for substr.
func Contains(substr string) Condition {
	return func(s string) bool {
		return strings.Contains(s, substr) || strings.Contains(StripSequences(s), substr)
	}
}

// ContainsRaw checks the raw output for substr. This is useful for checking
// for specific escape sequences.
func ContainsRaw(substr string) Condition {
	return func(s string) bool {
		return strings.Contains(s, substr)
	}
}

// CountRaw checks the raw output contains at least n occurrences of substr.
func CountRaw(substr string, n int) Condition {
	return func(s string) bool {
		return strings.Count(s, substr) >= n
	}
}

// Matches checks the output, with escape sequences stripped, against re.
func Matches(re *regexp.Regexp) Condition {
	return func(s string) bool {
		return re.MatchString(StripSequences(s))
	}
}

// StripSequences removes escape sequences and carriage returns from captured
// terminal output. An incomplete sequence at the end is dropped.
func StripSequences(s string) string {
	if !strings.ContainsAny(s, "\x1b\r") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\r' {
			continue
		}
		if c != 0x1b {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			break
		}

		switch s[i+1] {
		case '[':
			// CSI, up to and including the final byte
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
		case 'O':
			// SS3, one more byte
			i += 2
		default:
			// two byte sequences, e.g. ESC 7
			i++
		}
	}

	return b.String()
}
