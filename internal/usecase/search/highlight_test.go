package search

import "testing"

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		terms []string
		want  string
	}{
		{
			name:  "single occurrence",
			text:  "sunset at Doi Suthep",
			terms: []string{"Doi Suthep"},
			want:  "sunset at <mark>Doi Suthep</mark>",
		},
		{
			name:  "case insensitive keeps original casing",
			text:  "Sunset in CHIANG MAI tonight",
			terms: []string{"chiang mai"},
			want:  "Sunset in <mark>CHIANG MAI</mark> tonight",
		},
		{
			name:  "every occurrence wrapped",
			text:  "cafe after cafe",
			terms: []string{"cafe"},
			want:  "<mark>cafe</mark> after <mark>cafe</mark>",
		},
		{
			name:  "overlapping terms merge into one span",
			text:  "visit Chiang Mai today",
			terms: []string{"Chiang Mai", "Chiang"},
			want:  "visit <mark>Chiang Mai</mark> today",
		},
		{
			name:  "adjacent spans merge",
			text:  "chiangmai",
			terms: []string{"chiang", "mai"},
			want:  "<mark>chiangmai</mark>",
		},
		{
			name:  "thai text",
			text:  "เที่ยวดอยสุเทพกับเพื่อน",
			terms: []string{"ดอยสุเทพ"},
			want:  "เที่ยว<mark>ดอยสุเทพ</mark>กับเพื่อน",
		},
		{
			name:  "no match returns text unchanged",
			text:  "a quiet beach",
			terms: []string{"mountain"},
			want:  "a quiet beach",
		},
		{
			name:  "no terms",
			text:  "a quiet beach",
			terms: nil,
			want:  "a quiet beach",
		},
		{
			name:  "empty text",
			text:  "",
			terms: []string{"beach"},
			want:  "",
		},
		{
			name:  "empty term ignored",
			text:  "beach",
			terms: []string{""},
			want:  "beach",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Highlight(tt.text, tt.terms); got != tt.want {
				t.Errorf("Highlight(%q, %v) = %q, want %q", tt.text, tt.terms, got, tt.want)
			}
		})
	}
}
