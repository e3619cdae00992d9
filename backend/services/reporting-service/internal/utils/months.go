package utils

import (
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SupportedLanguages lists the report locales, default first.
var SupportedLanguages = []language.Tag{
	language.Turkish,
	language.English,
}

var languageMatcher = language.NewMatcher(SupportedLanguages)

var monthNames = map[language.Tag][12]string{
	language.Turkish: {
		"ocak", "şubat", "mart", "nisan", "mayıs", "haziran",
		"temmuz", "ağustos", "eylül", "ekim", "kasım", "aralık",
	},
	language.English: {
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	},
}

// ResolveLanguage picks the closest supported locale for an Accept-Language
// style list or a single tag. Unparseable input yields the default.
func ResolveLanguage(preferred string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(tags) == 0 {
		return SupportedLanguages[0]
	}
	_, idx, _ := languageMatcher.Match(tags...)
	return SupportedLanguages[idx]
}

// MonthName returns the title-cased month name in lang's closest supported
// locale.
func MonthName(lang language.Tag, m time.Month) string {
	_, idx, _ := languageMatcher.Match(lang)
	base := SupportedLanguages[idx]
	return cases.Title(base).String(monthNames[base][m-1])
}

// MonthLabel formats "<Month> <year>", for example "Şubat 2024".
func MonthLabel(lang language.Tag, year int, m time.Month) string {
	return MonthName(lang, m) + " " + strconv.Itoa(year)
}
