package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"filingtext/internal/domain"
)

// Category is a named, ordered group of keywords.
type Category struct {
	Name     string
	Keywords []string
}

// DefaultTaxonomy returns the ESG keyword taxonomy.
func DefaultTaxonomy() []Category {
	return []Category{
		{Name: "Environmental", Keywords: []string{
			"sustainability", "climate change", "ghg", "greenhouse gas",
			"emissions", "renewable", "carbon footprint",
		}},
		{Name: "Social", Keywords: []string{
			"diversity", "inclusion", "human rights", "employee well-being",
			"social responsibility", "community",
		}},
		{Name: "Governance", Keywords: []string{
			"board independence", "shareholder rights", "executive compensation",
			"corporate governance", "ethics",
		}},
	}
}

type pattern struct {
	keyword string
	lower   string
}

// count returns the whole-word occurrences of p in text, which must already
// be lowercased. Word characters are Unicode letters, digits and underscore,
// so "emissionsé" is not a mention of "emissions".
func (p pattern) count(text string) int {
	n := 0
	for pos := 0; pos < len(text); {
		i := strings.Index(text[pos:], p.lower)
		if i < 0 {
			break
		}
		start, end := pos+i, pos+i+len(p.lower)
		if atBoundary(text, start) && atBoundary(text, end) {
			n++
			pos = end
			continue
		}
		// A rejected candidate may overlap a valid one.
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return n
}

func atBoundary(text string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = isWordRune(r)
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

type compiledCategory struct {
	name     string
	patterns []pattern
}

// Counter counts case-insensitive whole-word keyword mentions.
// Count is safe for concurrent use.
type Counter struct {
	categories []compiledCategory
}

// NewCounter compiles a taxonomy. Blank keywords are skipped; an empty
// taxonomy selects DefaultTaxonomy.
func NewCounter(taxonomy []Category) *Counter {
	if len(taxonomy) == 0 {
		taxonomy = DefaultTaxonomy()
	}
	c := &Counter{}
	for _, cat := range taxonomy {
		cc := compiledCategory{name: cat.Name}
		for _, kw := range cat.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			cc.patterns = append(cc.patterns, pattern{keyword: kw, lower: strings.ToLower(kw)})
		}
		c.categories = append(c.categories, cc)
	}
	return c
}

// Count returns per-keyword mention counts in taxonomy order, keeping the
// keyword casing from the taxonomy.
func (c *Counter) Count(text string) domain.KeywordReport {
	lower := strings.ToLower(text)
	var report domain.KeywordReport
	for _, cat := range c.categories {
		cc := domain.CategoryCount{Category: cat.name, Keywords: make([]domain.KeywordCount, 0, len(cat.patterns))}
		for _, p := range cat.patterns {
			n := p.count(lower)
			cc.Keywords = append(cc.Keywords, domain.KeywordCount{Keyword: p.keyword, Count: n})
			report.Total += n
		}
		report.Categories = append(report.Categories, cc)
	}
	return report
}
