package usecase

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const catalogHeader = "Список доступных статей:\n"

const catalogIndent = "    "

// sortTitles returns a collated copy of titles.
func sortTitles(titles []string, tag language.Tag) []string {
	sorted := make([]string, len(titles))
	copy(sorted, titles)
	collate.New(tag).SortStrings(sorted)
	return sorted
}

func formatCatalog(titles []string) string {
	var b strings.Builder
	b.WriteString(catalogHeader)
	for _, title := range titles {
		b.WriteString(catalogIndent)
		b.WriteString(title)
		b.WriteByte('\n')
	}
	return b.String()
}
