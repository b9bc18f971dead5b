package layout

import (
	"strings"
	"unicode"

	"golang.org/x/image/math/fixed"
)

// greedyWrap 贪心折行：优先在空白处断行，单个词超过宽度时在词内拆分。
// 断行处的空白被丢弃；段落至少产生一行（可能为空行）。
func greedyWrap(para string, limit fixed.Int26_6, measure func(string) fixed.Int26_6) []string {
	if para == "" || limit <= 0 {
		return []string{para}
	}

	var (
		lines   []string
		current strings.Builder
		broke   bool // 上一行因宽度不足而断开
	)
	emit := func() {
		lines = append(lines, strings.TrimRightFunc(current.String(), unicode.IsSpace))
		current.Reset()
		broke = true
	}

	for _, token := range tokenize(para) {
		space := isSpaceToken(token)
		if space && broke && current.Len() == 0 {
			continue
		}
		if current.Len() > 0 && !space {
			candidate := strings.TrimRightFunc(current.String()+token, unicode.IsSpace)
			if measure(candidate) > limit {
				if strings.TrimSpace(current.String()) == "" {
					current.Reset()
				} else {
					emit()
				}
			}
		}
		if space {
			current.WriteString(token)
			continue
		}
		if current.Len() == 0 && measure(token) > limit {
			chunks := splitByWidth(token, limit, measure)
			for _, chunk := range chunks[:len(chunks)-1] {
				current.WriteString(chunk)
				emit()
			}
			token = chunks[len(chunks)-1]
		}
		current.WriteString(token)
		broke = false
	}
	if current.Len() > 0 || len(lines) == 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// tokenize splits s into alternating runs of whitespace and non-whitespace.
func tokenize(s string) []string {
	var (
		tokens    []string
		builder   strings.Builder
		lastSpace bool
	)
	for _, r := range s {
		space := unicode.IsSpace(r)
		if builder.Len() > 0 && space != lastSpace {
			tokens = append(tokens, builder.String())
			builder.Reset()
		}
		lastSpace = space
		builder.WriteRune(r)
	}
	if builder.Len() > 0 {
		tokens = append(tokens, builder.String())
	}
	return tokens
}

func isSpaceToken(token string) bool {
	for _, r := range token {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return token != ""
}

// splitByWidth cuts a word into chunks no wider than limit. Every chunk holds
// at least one rune, so a single glyph wider than limit still makes progress.
func splitByWidth(token string, limit fixed.Int26_6, measure func(string) fixed.Int26_6) []string {
	var (
		parts []string
		chunk []rune
	)
	for _, r := range token {
		chunk = append(chunk, r)
		if len(chunk) > 1 && measure(string(chunk)) > limit {
			parts = append(parts, string(chunk[:len(chunk)-1]))
			chunk = chunk[len(chunk)-1:]
		}
	}
	if len(chunk) > 0 {
		parts = append(parts, string(chunk))
	}
	return parts
}
