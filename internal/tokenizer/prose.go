package tokenizer

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoAbbreviations is returned when prose mode is set up without an
// abbreviation list.
var ErrNoAbbreviations = errors.New("tokenizer: abbreviation list is empty")

//go:embed abbreviations.txt
var defaultAbbreviations string

// Abbreviations is a set of lowercased abbreviations without their final period.
type Abbreviations map[string]struct{}

// Contains reports whether word (with or without its final period) is a known abbreviation.
func (a Abbreviations) Contains(word string) bool {
	_, ok := a[normalizeAbbreviation(word)]
	return ok
}

// LoadAbbreviations reads an abbreviation list, one entry per line, '#'
// starting a comment. An empty path loads the embedded default list.
// A missing or empty file is an error.
func LoadAbbreviations(path string) (Abbreviations, error) {
	src := defaultAbbreviations
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load abbreviations: %w", err)
		}
		src = string(data)
	}
	abbrevs := ParseAbbreviations(src)
	if len(abbrevs) == 0 {
		if path == "" {
			return nil, ErrNoAbbreviations
		}
		return nil, fmt.Errorf("%w: %s", ErrNoAbbreviations, path)
	}
	return abbrevs, nil
}

// ParseAbbreviations parses the abbreviation list format.
func ParseAbbreviations(src string) Abbreviations {
	abbrevs := make(Abbreviations)
	sc := bufio.NewScanner(strings.NewReader(src))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if w := normalizeAbbreviation(line); w != "" {
			abbrevs[w] = struct{}{}
		}
	}
	return abbrevs
}

func normalizeAbbreviation(word string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(word)), ".")
}

var (
	paragraphBreakRe = regexp.MustCompile(`\n[ \t\r]*\n`)
	// Terminator run, optional closing quotes or brackets, then whitespace or end of text.
	terminatorRe = regexp.MustCompile(`[.!?]+["'’”)\]]*(?:\s+|$)`)
)

func (t *Tokenizer) proseSentences(text string) []string {
	var out []string
	for _, para := range paragraphBreakRe.Split(text, -1) {
		start := 0
		for _, loc := range terminatorRe.FindAllStringIndex(para, -1) {
			if !t.isBoundary(para, loc[0], loc[1]) {
				continue
			}
			if s := strings.TrimSpace(para[start:loc[1]]); s != "" {
				out = append(out, s)
			}
			start = loc[1]
		}
		if s := strings.TrimSpace(para[start:]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// isBoundary decides whether the terminator match para[s:e] ends a sentence.
func (t *Tokenizer) isBoundary(para string, s, e int) bool {
	if e < len(para) {
		next, _ := utf8.DecodeRuneInString(para[e:])
		if unicode.IsLower(next) {
			return false
		}
	}
	if para[s] != '.' || (s+1 < len(para) && para[s+1] == '.') {
		return true
	}
	prev := para[strings.LastIndexFunc(para[:s], unicode.IsSpace)+1 : s]
	prev = strings.TrimLeft(prev, "\"'‘“([")
	if prev == "" {
		return true
	}
	if t.abbreviations.Contains(prev) {
		return false
	}
	// A lone capital letter is an initial, as in "J. Smith".
	r, size := utf8.DecodeRuneInString(prev)
	return !(size == len(prev) && unicode.IsUpper(r))
}
