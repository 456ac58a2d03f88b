package strings_test

import (
	"testing"

	"github.com/joeycumines/go-linedit/strings"
)

func TestGetWidth(t *testing.T) {
	tests := []struct {
		in   string
		want strings.Width
	}{
		{
			in:   "foo",
			want: 3,
		},
		{
			in:   "$ ",
			want: 2,
		},
		{
			in:   "日本語",
			want: 6,
		},
		{
			in:   "",
			want: 0,
		},
	}

	for _, tc := range tests {
		if got := strings.GetWidth(tc.in); got != tc.want {
			t.Errorf("Should be %#v, but got %#v, for %#v", tc.want, got, tc.in)
		}
	}
}

func TestGetRunesWidth(t *testing.T) {
	if got := strings.GetRunesWidth([]rune("abc")); got != 3 {
		t.Errorf("Should be 3, but got %#v", got)
	}
	if got := strings.GetRunesWidth([]rune("aé")); got != 2 {
		t.Errorf("Should be 2, but got %#v", got)
	}
	if got := strings.GetRunesWidth(nil); got != 0 {
		t.Errorf("Should be 0, but got %#v", got)
	}
}

func TestGetWidth_matchesRunes(t *testing.T) {
	for _, s := range []string{
		"foo",
		"日本語",
		"🇵🇱",
		"👩\u200d💻",
		"e\u0301",
		"ｱ😀",
	} {
		if got, want := strings.GetWidth(s), strings.GetRunesWidth([]rune(s)); got != want {
			t.Errorf("GetWidth(%q) = %d, GetRunesWidth = %d", s, got, want)
		}
	}
}

func TestCounts(t *testing.T) {
	if strings.RuneCountInString("πœ") != 2 {
		t.Fatalf("RuneCountInString mismatch")
	}
	if strings.GetRuneWidth('界') != 2 {
		t.Fatalf("GetRuneWidth should be 2 for a wide rune")
	}
}

func TestClamp(t *testing.T) {
	for _, tc := range []struct {
		v, lo, hi, want int
	}{
		{v: -1, lo: 0, hi: 3, want: 0},
		{v: 0, lo: 0, hi: 3, want: 0},
		{v: 2, lo: 0, hi: 3, want: 2},
		{v: 4, lo: 0, hi: 3, want: 3},
	} {
		if got := strings.Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}
