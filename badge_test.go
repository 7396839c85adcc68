package grimbound

import "testing"

func TestFormatReminderCount(t *testing.T) {
	cases := []struct {
		n     int
		style CountStyle
		want  string
	}{
		{3, CountArabic, "3"},
		{12, CountArabic, "12"},
		{3, CountRoman, "III"},
		{4, CountRoman, "IV"},
		{9, CountRoman, "IX"},
		{14, CountRoman, "XIV"},
		{40, CountRoman, "XL"},
		{3, CountCircled, "③"},
		{20, CountCircled, "⑳"},
		{21, CountCircled, "21"},
		{3, CountDots, ""},
		{8, CountDots, ""},
		{9, CountDots, "9"},
		{0, CountArabic, ""},
		{-2, CountRoman, ""},
	}
	for _, c := range cases {
		if got := FormatReminderCount(c.n, c.style); got != c.want {
			t.Errorf("FormatReminderCount(%d, %v) = %q, want %q", c.n, c.style, got, c.want)
		}
	}
}
