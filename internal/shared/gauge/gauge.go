// Package gauge 针型字符串的存储/展示互转。
// 存储形态每个逗号分段带 " GG" 后缀（"12 GG,14 GG"），展示形态去掉后缀（"12,14"）。
package gauge

import (
	"regexp"
	"strings"
)

var ggToken = regexp.MustCompile(`\s*[Gg][Gg]\s*`)

// ToStorage 规范化为存储形态。已带GG的分段保持原样（幂等），空分段丢弃。
func ToStorage(s string) string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(strings.ToUpper(p), "GG") {
			p += " GG"
		}
		out = append(out, p)
	}
	return strings.Join(out, ",")
}

// ToDisplay 去除所有GG标记及其前后空白
func ToDisplay(s string) string {
	return ggToken.ReplaceAllString(s, "")
}
