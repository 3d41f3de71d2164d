package colorutil

import (
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		hex  string
		want RGB
		ok   bool
	}{
		{"#000000", RGB{0, 0, 0}, true},
		{"#FFFFFF", RGB{255, 255, 255}, true},
		{"#1A2b3C", RGB{26, 43, 60}, true},
		{"", RGB{}, false},
		{"FFFFFF", RGB{}, false},
		{"#FFF", RGB{}, false},
		{"#FFFFF", RGB{}, false},
		{"#FFFFFFF", RGB{}, false},
		{"#GGGGGG", RGB{}, false},
		{"#12345Z", RGB{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseHex(tt.hex)
		if ok != tt.ok {
			t.Fatalf("ParseHex(%q) ok = %v, want %v", tt.hex, ok, tt.ok)
		}
		if ok && got != tt.want {
			t.Fatalf("ParseHex(%q) = %+v, want %+v", tt.hex, got, tt.want)
		}
	}
}

func TestRGBToHSLAnchors(t *testing.T) {
	// 黑白红三个锚点的HSL必须精确
	black := RGBToHSL(RGB{0, 0, 0})
	if black.L != 0 {
		t.Fatalf("black lightness = %v, want 0", black.L)
	}

	white := RGBToHSL(RGB{255, 255, 255})
	if white.L != 100 {
		t.Fatalf("white lightness = %v, want 100", white.L)
	}

	red := RGBToHSL(RGB{255, 0, 0})
	if red.H != 0 {
		t.Fatalf("red hue = %v, want 0", red.H)
	}
	if math.Abs(red.S-100) > 1e-9 {
		t.Fatalf("red saturation = %v, want 100", red.S)
	}
}

func TestClassifyFamilies(t *testing.T) {
	tests := []struct {
		hex    string
		family string
	}{
		{"#000000", FamilyBlack},
		{"#FFFFFF", FamilyWhite},
		{"#808080", FamilyGrey},
		{"#FF0000", FamilyRed},
		{"#FFA500", FamilyOrange},
		{"#FFFF00", FamilyYellow},
		{"#008000", FamilyGreen},
		{"#00FFFF", FamilyTeal},
		{"#0000FF", FamilyBlue},
		{"#6A0DAD", FamilyPurple},
		{"#FF40D9", FamilyPink},
		// 低饱和高明度：色相分桶后被米色/奶油色覆盖
		{"#D8CCC0", FamilyBeige},
		{"#E8E4DC", FamilyCream},
	}

	for _, tt := range tests {
		got, ok := Classify(tt.hex)
		if !ok {
			t.Fatalf("Classify(%q) unexpectedly failed", tt.hex)
		}
		if got.Family != tt.family {
			t.Fatalf("Classify(%q) family = %s, want %s (hsl %+v)", tt.hex, got.Family, tt.family, got.HSL)
		}
	}
}

func TestClassifyValues(t *testing.T) {
	tests := []struct {
		hex   string
		value string
	}{
		{"#FFFFFF", ValueLight},
		{"#000000", ValueDark},
		{"#FF0000", ValueBright},
		{"#008000", ValueNeon},
		{"#808080", ValueDusty},
	}

	for _, tt := range tests {
		got, ok := Classify(tt.hex)
		if !ok {
			t.Fatalf("Classify(%q) unexpectedly failed", tt.hex)
		}
		if got.Value != tt.value {
			t.Fatalf("Classify(%q) value = %s, want %s (hsl %+v)", tt.hex, got.Value, tt.value, got.HSL)
		}
	}
}

// 阈值落点依赖判定顺序：饱和度恰为10走色相分桶，明度恰为75不算Light
func TestBoundaryOrdering(t *testing.T) {
	if got := ClassifyFamily(HSL{H: 0, S: 10, L: 50}); got != FamilyRed {
		t.Fatalf("family at S=10 = %s, want %s", got, FamilyRed)
	}
	if got := ClassifyFamily(HSL{H: 0, S: 9.99, L: 50}); got != FamilyGrey {
		t.Fatalf("family at S=9.99 = %s, want %s", got, FamilyGrey)
	}
	if got := ClassifyValue(HSL{H: 0, S: 50, L: 75}); got != ValueMedium {
		t.Fatalf("value at L=75 = %s, want %s", got, ValueMedium)
	}
	if got := ClassifyValue(HSL{H: 0, S: 50, L: 75.01}); got != ValueLight {
		t.Fatalf("value at L=75.01 = %s, want %s", got, ValueLight)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	hexes := []string{"#000000", "#FFFFFF", "#FF0000", "#D8CCC0", "#123456", "#ABCDEF"}
	for _, hex := range hexes {
		first, ok1 := Classify(hex)
		second, ok2 := Classify(hex)
		if ok1 != ok2 || first != second {
			t.Fatalf("Classify(%q) not deterministic: %+v vs %+v", hex, first, second)
		}
	}
}

func TestMalformedHexSkipsClassification(t *testing.T) {
	for _, hex := range []string{"", "red", "#12", "#1234567", "123456#"} {
		if _, ok := Classify(hex); ok {
			t.Fatalf("Classify(%q) should fail", hex)
		}
	}
}
