package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// cellText prefers the div the syllabus wraps most values in, falling back
// to the cell's own text.
func cellText(cell *goquery.Selection) string {
	if div := cell.Find("div").First(); div.Length() > 0 {
		return strings.TrimSpace(div.Text())
	}
	return strings.TrimSpace(cell.Text())
}
