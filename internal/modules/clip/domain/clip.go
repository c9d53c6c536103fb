package domain

import (
	"fmt"
	"strings"
)

// Clip is a titled reference to an external short video. SourceURL is its identity.
type Clip struct {
	Title     string `yaml:"title"`
	SourceURL string `yaml:"source_url"`
}

func (c Clip) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("clip title is required")
	}
	if strings.TrimSpace(c.SourceURL) == "" {
		return fmt.Errorf("clip %q: source url is required", c.Title)
	}
	return nil
}

// SeenSet holds the source URLs shown during one run.
type SeenSet map[string]struct{}

func NewSeenSet(urls ...string) SeenSet {
	s := make(SeenSet, len(urls))
	for _, u := range urls {
		s[u] = struct{}{}
	}
	return s
}

func (s SeenSet) Has(url string) bool {
	_, ok := s[url]
	return ok
}

// Duplicates returns the source URLs that appear more than once, in catalog order.
func Duplicates(catalog []Clip) []string {
	counts := make(map[string]int, len(catalog))
	var dups []string
	for _, c := range catalog {
		counts[c.SourceURL]++
		if counts[c.SourceURL] == 2 {
			dups = append(dups, c.SourceURL)
		}
	}
	return dups
}
