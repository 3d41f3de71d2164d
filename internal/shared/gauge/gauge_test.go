package gauge

import "testing"

func TestToStorage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12,14", "12 GG,14 GG"},
		{"12", "12 GG"},
		{" 12 , 14 ", "12 GG,14 GG"},
		{"12,,14", "12 GG,14 GG"},
		{"", ""},
		{"3.5", "3.5 GG"},
	}
	for _, tt := range tests {
		if got := ToStorage(tt.in); got != tt.want {
			t.Fatalf("ToStorage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// 已带后缀的值再次入库不会叠加后缀
func TestToStorageIdempotent(t *testing.T) {
	once := ToStorage("12,14")
	twice := ToStorage(once)
	if once != twice {
		t.Fatalf("ToStorage not idempotent: %q → %q", once, twice)
	}
	if got := ToStorage("12 GG"); got != "12 GG" {
		t.Fatalf("ToStorage(\"12 GG\") = %q, want \"12 GG\"", got)
	}
	if got := ToStorage("12gg"); got != "12gg" {
		t.Fatalf("ToStorage(\"12gg\") = %q, want \"12gg\" (case-insensitive detection)", got)
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12 GG,14 GG", "12,14"},
		{"12 GG", "12"},
		{"12gg,14Gg", "12,14"},
		{"12,14", "12,14"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToDisplay(tt.in); got != tt.want {
			t.Fatalf("ToDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	if got := ToDisplay(ToStorage("12,14")); got != "12,14" {
		t.Fatalf("round trip = %q, want \"12,14\"", got)
	}
}
