// Package carton 装箱体积计算：厘米尺寸换算CBM（立方米）。
package carton

import "fmt"

// CBM 长宽高（厘米）换算立方米
func CBM(lengthCm, widthCm, heightCm float64) float64 {
	return lengthCm * widthCm * heightCm / 1_000_000
}

// FormatCBM 保留4位小数的CBM字符串。任一尺寸缺省或不为正数时返回 "0.0000"。
func FormatCBM(lengthCm, widthCm, heightCm float64) string {
	if lengthCm <= 0 || widthCm <= 0 || heightCm <= 0 {
		return "0.0000"
	}
	return fmt.Sprintf("%.4f", CBM(lengthCm, widthCm, heightCm))
}
