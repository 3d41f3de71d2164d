// Package colorutil 颜色工具：HEX解析、HSL转换与色系/色调自动归类。
package colorutil

import (
	"math"
	"strconv"
	"strings"
)

// 色系
const (
	FamilyBlack  = "Black"
	FamilyWhite  = "White"
	FamilyGrey   = "Grey"
	FamilyRed    = "Red"
	FamilyOrange = "Orange"
	FamilyYellow = "Yellow"
	FamilyGreen  = "Green"
	FamilyTeal   = "Teal"
	FamilyBlue   = "Blue"
	FamilyPurple = "Purple"
	FamilyPink   = "Pink"
	FamilyBeige  = "Beige"
	FamilyCream  = "Cream"
)

// 色调
const (
	ValueLight  = "Light"
	ValueDark   = "Dark"
	ValueBright = "Bright"
	ValueNeon   = "Neon"
	ValuePastel = "Pastel"
	ValueDusty  = "Dusty"
	ValueMedium = "Medium"
	ValueMuted  = "Muted"
)

// RGB 0-255三通道
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL 色相0-360度，饱和度/明度0-100百分比
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Classification HEX颜色的完整归类结果
type Classification struct {
	RGB    RGB    `json:"rgb"`
	HSL    HSL    `json:"hsl"`
	Family string `json:"family"`
	Value  string `json:"value"`
}

// ParseHex 解析 #RRGGBB 格式。格式不合法返回 ok=false，调用方按"跳过归类"处理。
func ParseHex(hex string) (RGB, bool) {
	if len(hex) != 7 || !strings.HasPrefix(hex, "#") {
		return RGB{}, false
	}
	r, err := strconv.ParseUint(hex[1:3], 16, 16)
	if err != nil {
		return RGB{}, false
	}
	g, err := strconv.ParseUint(hex[3:5], 16, 16)
	if err != nil {
		return RGB{}, false
	}
	b, err := strconv.ParseUint(hex[5:7], 16, 16)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: int(r), G: int(g), B: int(b)}, true
}

// RGBToHSL 归一化RGB转HSL
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	l := (maxC + minC) / 2

	var h, s float64
	if diff != 0 {
		if l < 0.5 {
			s = diff / (maxC + minC)
		} else {
			s = diff / (2 - maxC - minC)
		}

		switch maxC {
		case r:
			h = 60 * math.Mod((g-b)/diff, 6)
		case g:
			h = 60 * ((b-r)/diff + 2)
		default:
			h = 60 * ((r-g)/diff + 4)
		}
		if h < 0 {
			h += 360
		}
	}

	return HSL{H: h, S: s * 100, L: l * 100}
}

// ClassifyFamily 根据HSL猜测色系。
// 分支为手工调参的阈值序列，存在区间重叠，后面的检查按顺序覆盖前面的结果，
// 不能改写成等价的重排形式。
func ClassifyFamily(c HSL) string {
	// 低饱和度：按明度分黑白灰
	if c.S < 10 {
		if c.L < 15 {
			return FamilyBlack
		}
		if c.L > 90 {
			return FamilyWhite
		}
		return FamilyGrey
	}

	// 极端明度强制黑白
	if c.L > 90 {
		return FamilyWhite
	}
	if c.L < 10 {
		return FamilyBlack
	}

	// 色相分桶
	family := FamilyRed
	switch {
	case c.H < 15:
		family = FamilyRed
	case c.H < 45:
		family = FamilyOrange
	case c.H < 70:
		family = FamilyYellow
	case c.H < 160:
		family = FamilyGreen
	case c.H < 200:
		family = FamilyTeal
	case c.H < 250:
		family = FamilyBlue
	case c.H < 290:
		family = FamilyPurple
	case c.H < 330:
		family = FamilyPink
	default:
		family = FamilyRed
	}

	// 米色/奶油色在色相分桶之后判定，命中时覆盖色相结果
	if c.S < 30 && c.L > 70 && c.L < 90 {
		family = FamilyBeige
	}
	if c.S < 30 && c.L > 85 {
		family = FamilyCream
	}

	return family
}

// ClassifyValue 根据HSL猜测色调（明暗/饱和度档位）
func ClassifyValue(c HSL) string {
	if c.L > 75 {
		return ValueLight
	}
	if c.L < 25 {
		return ValueDark
	}

	switch {
	case c.S > 80 && c.L >= 40 && c.L <= 60:
		return ValueBright
	case c.S > 90:
		return ValueNeon
	case c.S < 45 && c.L > 60:
		return ValuePastel
	case c.S < 35:
		return ValueDusty
	case c.S >= 35 && c.S <= 70:
		return ValueMedium
	case c.S < 50:
		return ValueMuted
	}
	return ValueMedium
}

// Classify HEX一步到位：解析、转换、归类。纯函数，同一输入恒定同一输出。
func Classify(hex string) (Classification, bool) {
	rgb, ok := ParseHex(hex)
	if !ok {
		return Classification{}, false
	}
	hsl := RGBToHSL(rgb)
	return Classification{
		RGB:    rgb,
		HSL:    hsl,
		Family: ClassifyFamily(hsl),
		Value:  ClassifyValue(hsl),
	}, true
}
