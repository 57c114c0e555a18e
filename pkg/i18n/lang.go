package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// DefaultLanguage is used when no language can be negotiated.
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps the header size we are willing to parse.
const maxAcceptLanguageLength = 4096

type weightedLang struct {
	lang string
	q    float64
}

// parseAcceptLanguageHeader returns the languages listed in an
// Accept-Language header ordered by quality, highest first. Entries with a
// malformed q value keep the default weight of 1.
func parseAcceptLanguageHeader(header string) []weightedLang {
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var languages []weightedLang
	for part := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || tag == "*" {
			continue
		}

		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
				q = parsed
			}
		}
		if q == 0 {
			continue
		}
		languages = append(languages, weightedLang{lang: tag, q: q})
	}

	slices.SortStableFunc(languages, func(a, b weightedLang) int {
		return cmp.Compare(b.q, a.q)
	})
	return languages
}

// ParseAcceptLanguage picks the best supported language for header.
// Exact tags are matched first (de-at), then base languages (de-at -> de).
// defaultLang is returned when nothing matches.
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	if header == "" || len(supportedLangs) == 0 {
		return defaultLang
	}

	supported := make([]string, len(supportedLangs))
	for i, lang := range supportedLangs {
		supported[i] = strings.ToLower(lang)
	}

	languages := parseAcceptLanguageHeader(header)
	for _, l := range languages {
		if slices.Contains(supported, l.lang) {
			return l.lang
		}
	}
	for _, l := range languages {
		if base, _, ok := strings.Cut(l.lang, "-"); ok && slices.Contains(supported, base) {
			return base
		}
	}
	return defaultLang
}
