package language

import (
	"sort"
	"strings"

	xlang "golang.org/x/text/language"
)

// Language pairs a dubbing-supported code with its display name. Codes are
// the ones the synthesis engine accepts, which is why Chinese carries a
// region subtag while the rest are bare ISO 639-1.
type Language struct {
	Code string
	Name string
}

var supported = []Language{
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"hi", "Hindi"},
	{"ta", "Tamil"},
	{"ar", "Arabic"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"zh-CN", "Chinese (Simplified)"},
	{"pt", "Portuguese"},
	{"it", "Italian"},
	{"ru", "Russian"},
	{"nl", "Dutch"},
	{"tr", "Turkish"},
	{"pl", "Polish"},
}

var (
	byCode map[string]Language
	byBase map[string]Language
)

func init() {
	byCode = make(map[string]Language, len(supported))
	byBase = make(map[string]Language, len(supported))
	for _, lang := range supported {
		byCode[strings.ToLower(lang.Code)] = lang
		if tag, err := xlang.Parse(lang.Code); err == nil {
			if base, conf := tag.Base(); conf != xlang.No {
				byBase[base.String()] = lang
			}
		}
	}
}

// Supported returns the dubbing languages ordered by display name.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Normalize maps arbitrary user input ("EN", "en-US", "zh") to the canonical
// supported code. The second return reports whether the language is supported.
func Normalize(code string) (string, bool) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", false
	}
	if lang, ok := byCode[strings.ToLower(trimmed)]; ok {
		return lang.Code, true
	}
	tag, err := xlang.Parse(trimmed)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == xlang.No {
		return "", false
	}
	if lang, ok := byBase[base.String()]; ok {
		return lang.Code, true
	}
	return "", false
}

// IsSupported reports whether the code maps to a dubbing language.
func IsSupported(code string) bool {
	_, ok := Normalize(code)
	return ok
}

// DisplayName returns a human-readable name for any recognized code, or the
// uppercased input when unknown.
func DisplayName(code string) string {
	if normalized, ok := Normalize(code); ok {
		return byCode[strings.ToLower(normalized)].Name
	}
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
