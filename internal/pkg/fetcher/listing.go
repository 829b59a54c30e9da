package fetcher

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// latestDateFromListing parses the directory listing page and picks the
// newest MM-DD-YYYY.csv link. Links that are not report files are
// skipped.
func latestDateFromListing(r io.Reader) (time.Time, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return time.Time{}, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	var latest time.Time
	doc.Find(`a[href$=".csv"]`).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}

		name := strings.TrimSuffix(path.Base(href), ".csv")
		day, parseErr := time.Parse(reportDateLayout, name)
		if parseErr != nil {
			return
		}

		if day.After(latest) {
			latest = day
		}
	})

	if latest.IsZero() {
		return time.Time{}, fmt.Errorf("no report links found in listing")
	}

	return latest, nil
}
