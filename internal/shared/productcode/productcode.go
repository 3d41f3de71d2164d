// Package productcode 物料编码生成：NAME_CAT_NNNN 格式的人工可读唯一编码。
package productcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const fallbackCategoryCode = "XXX"

var (
	nonAlnumRun    = regexp.MustCompile(`[^A-Z0-9]+`)
	trailingSerial = regexp.MustCompile(`_(\d{4})$`)
)

// NormalizeName 名称段规范化：大写，连续非字母数字折叠为单个下划线，去除首尾下划线。
// "T-Shirt #1!" → "T_SHIRT_1"
func NormalizeName(name string) string {
	upper := strings.ToUpper(name)
	collapsed := nonAlnumRun.ReplaceAllString(upper, "_")
	return strings.Trim(collapsed, "_")
}

// CategoryCode 类目段：类目名前3个字符大写，不足3个字符时退回 XXX。
func CategoryCode(category string) string {
	if utf8.RuneCountInString(category) < 3 {
		return fallbackCategoryCode
	}
	runes := []rune(category)
	return strings.ToUpper(string(runes[:3]))
}

// MaxSerial 扫描既有编码，取尾部 _NNNN（恰好4位数字）的全局最大流水号。
// 流水号全局递增，不按名称或类目分段；不带尾号的编码忽略。
func MaxSerial(ids []string) int {
	maxSerial := 0
	for _, id := range ids {
		m := trailingSerial.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxSerial {
			maxSerial = n
		}
	}
	return maxSerial
}

// Generate 生成下一个编码：{规范化名称}_{类目码}_{最大流水号+1，左补零到4位}。
// 仅依据传入的既有编码快照计算，本身不含唯一性仲裁。
func Generate(name, category string, existing []string) string {
	serial := MaxSerial(existing) + 1
	return fmt.Sprintf("%s_%s_%04d", NormalizeName(name), CategoryCode(category), serial)
}
