package carton

import "testing"

func TestCBM(t *testing.T) {
	// 60×40×30cm 外箱 = 0.072m³
	if got := CBM(60, 40, 30); got != 0.072 {
		t.Fatalf("CBM(60,40,30) = %v, want 0.072", got)
	}
}

func TestFormatCBM(t *testing.T) {
	tests := []struct {
		l, w, h float64
		want    string
	}{
		{60, 40, 30, "0.0720"},
		{58, 38, 28, "0.0617"},
		{100, 100, 100, "1.0000"},
		{0, 40, 30, "0.0000"},
		{60, 0, 30, "0.0000"},
		{60, 40, 0, "0.0000"},
		{-1, 40, 30, "0.0000"},
	}
	for _, tt := range tests {
		if got := FormatCBM(tt.l, tt.w, tt.h); got != tt.want {
			t.Fatalf("FormatCBM(%v,%v,%v) = %q, want %q", tt.l, tt.w, tt.h, got, tt.want)
		}
	}
}
