package service

import "testing"

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"13800000000", true},
		{"12345678901", true},
		{"1234567890", false},  // 10 digits
		{"123456789012", false}, // 12 digits
		{"1380000000a", false},
		{"138 0000000", false},
		{"", false},
		{"+8613800000", false},
	}

	for _, tt := range tests {
		if got := validPhone(tt.phone); got != tt.want {
			t.Errorf("validPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}
