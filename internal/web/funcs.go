package web

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// templateFuncs are the helpers available in every template.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":    formatMoney,
		"date":     formatDate,
		"truncate": truncate,
		"title":    titleCase,
		"split":    splitTags,
		"iterate": func(count int) []int {
			result := make([]int, count)
			for i := range result {
				result[i] = i
			}

			return result
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}
}

// formatMoney renders amount with the narrow symbol of the ISO currency code.
func formatMoney(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2) + " " + strings.ToUpper(code)
	}

	return fmt.Sprint(currency.NarrowSymbol(unit)) + amount.StringFixed(2)
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	if layout == "" {
		layout = "January 2, 2006"
	}

	return t.Format(layout)
}

// titleCase creates a Caser per call, Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// truncate shortens s to n runes, cutting at the last space.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}

	cut := string([]rune(s)[:n])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}

	return strings.TrimRight(cut, " ,.;:") + "…"
}

// splitTags splits a comma separated tag list.
func splitTags(s string) []string {
	var tags []string

	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}
