package monobank

import "testing"

func TestMatchCardMask(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		cardMask   string
		want       bool
	}{
		{
			name:       "matching mask",
			cardNumber: "4000123456789010",
			cardMask:   "400012******9010",
			want:       true,
		},
		{
			name:       "last digit differs",
			cardNumber: "4000123456789011",
			cardMask:   "400012******9010",
			want:       false,
		},
		{
			name:       "mask shorter than number",
			cardNumber: "4000123456789010",
			cardMask:   "400012****9010",
			want:       false,
		},
		{
			name:       "mask longer than number",
			cardNumber: "40001234",
			cardMask:   "400012******9010",
			want:       false,
		},
		{
			name:       "all wildcards",
			cardNumber: "4000123456789010",
			cardMask:   "****************",
			want:       true,
		},
		{
			name:       "no wildcards exact match",
			cardNumber: "4000123456789010",
			cardMask:   "4000123456789010",
			want:       true,
		},
		{
			name:       "empty strings",
			cardNumber: "",
			cardMask:   "",
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchCardMask(tt.cardNumber, tt.cardMask); got != tt.want {
				t.Errorf("MatchCardMask(%q, %q) = %v, want %v", tt.cardNumber, tt.cardMask, got, tt.want)
			}
		})
	}
}
