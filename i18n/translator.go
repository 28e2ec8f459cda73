// Package i18n provides default messages for violations that carry no
// schema-declared errorMessage.
package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "property").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":   "must be {expected}",
		"required":       "must have required property '{property}'",
		"unknown_key":    "must NOT have additional properties",
		"too_small":      "must be {comparison} {limit}",
		"too_big":        "must be {comparison} {limit}",
		"too_short":      "must NOT have fewer than {limit} {unit}",
		"too_long":       "must NOT have more than {limit} {unit}",
		"pattern":        "must match pattern \"{pattern}\"",
		"invalid_format": "must match format \"{format}\"",
		"invalid_enum":   "must be equal to one of the allowed values",
		"duplicate_key":  "duplicate key",
		"parse_error":    "parse error",
		"truncated":      "truncated",
		"items":          "items",
		"characters":     "characters",
	},
	"ja": {
		"invalid_type":   "型が不正です（期待値: {expected}）",
		"required":       "必須プロパティ '{property}' が不足しています",
		"unknown_key":    "未知のキーです",
		"too_small":      "{comparison} {limit} である必要があります",
		"too_big":        "{comparison} {limit} である必要があります",
		"too_short":      "短すぎます（最小 {limit} {unit}）",
		"too_long":       "長すぎます（最大 {limit} {unit}）",
		"pattern":        "パターン \"{pattern}\" に一致しません",
		"invalid_format": "フォーマット \"{format}\" に一致しません",
		"invalid_enum":   "許可された値のいずれかである必要があります",
		"duplicate_key":  "キーが重複しています",
		"parse_error":    "解析エラー",
		"truncated":      "打ち切られました",
		"items":          "要素",
		"characters":     "文字",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict := dictionaries[t.lang]
	tmpl, ok := dict[code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		if k == "unit" {
			if u, ok := dict[v]; ok {
				v = u
			}
		}
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// New returns the built-in Translator for lang ("en"/"ja"). Unknown
// languages fall back to English.
func New(lang string) Translator {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

// Default returns the English Translator.
func Default() Translator { return dictTranslator{lang: "en"} }

// Languages lists the built-in dictionaries.
func Languages() []string { return []string{"en", "ja"} }
