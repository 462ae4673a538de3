package tokenizer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"filingtext/internal/domain"
)

// Mode selects the segmentation rules of a Tokenizer.
type Mode string

const (
	// ModeRegex splits sentences on runs of . ! ? and newlines and keeps
	// ASCII-only words. Readability scores are defined against this mode.
	ModeRegex Mode = "regex"
	// ModeProse honours abbreviations, initials and paragraph breaks and
	// accepts words in any alphabet.
	ModeProse Mode = "prose"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?\n]+`)
	// A word candidate is a maximal run of word characters; only runs made
	// entirely of letters survive, so "abc123" contributes nothing. Combining
	// marks end a run in regex mode ("cafe\u0301" yields "cafe") and belong to
	// the word in prose mode.
	wordRunRe      = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	proseWordRunRe = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)
)

// Tokenizer splits text into sentences and words.
// It holds no mutable state and is safe for concurrent use.
type Tokenizer struct {
	mode          Mode
	abbreviations Abbreviations
}

// New returns a Tokenizer in regex mode.
func New() *Tokenizer {
	return &Tokenizer{mode: ModeRegex}
}

// NewProse returns a Tokenizer in prose mode. The abbreviation set must be
// loaded beforehand with LoadAbbreviations.
func NewProse(abbreviations Abbreviations) (*Tokenizer, error) {
	if len(abbreviations) == 0 {
		return nil, ErrNoAbbreviations
	}
	return &Tokenizer{mode: ModeProse, abbreviations: abbreviations}, nil
}

// FromConfig builds a Tokenizer for the named mode. abbreviationsPath is only
// consulted in prose mode; an empty path selects the embedded list.
func FromConfig(mode, abbreviationsPath string) (*Tokenizer, error) {
	switch Mode(mode) {
	case ModeRegex, "":
		return New(), nil
	case ModeProse:
		abbrevs, err := LoadAbbreviations(abbreviationsPath)
		if err != nil {
			return nil, err
		}
		return NewProse(abbrevs)
	default:
		return nil, fmt.Errorf("unknown tokenizer mode: %s", mode)
	}
}

// Mode reports the segmentation mode.
func (t *Tokenizer) Mode() Mode { return t.mode }

// Segment splits text into sentences and lowercased words.
func (t *Tokenizer) Segment(text string) domain.Segmentation {
	return domain.Segmentation{
		Sentences: t.Sentences(text),
		Words:     t.Words(text),
	}
}

// Sentences returns the non-blank sentences of text in order.
func (t *Tokenizer) Sentences(text string) []string {
	if t.mode == ModeProse {
		return t.proseSentences(text)
	}
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Words returns the words of text, lowercased.
func (t *Tokenizer) Words(text string) []string {
	terms := t.Terms(text)
	for i := range terms {
		terms[i] = strings.ToLower(terms[i])
	}
	return terms
}

// Terms returns the words of text with their original casing.
func (t *Tokenizer) Terms(text string) []string {
	re := wordRunRe
	if t.mode == ModeProse {
		re = proseWordRunRe
	}
	var out []string
	for _, run := range re.FindAllString(text, -1) {
		if t.acceptWord(run) {
			out = append(out, run)
		}
	}
	return out
}

func (t *Tokenizer) acceptWord(run string) bool {
	for _, r := range run {
		if t.mode == ModeProse {
			if !unicode.IsLetter(r) && !unicode.Is(unicode.M, r) {
				return false
			}
			continue
		}
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

var defaultTokenizer = New()

// Segment splits text with the regex-mode tokenizer.
func Segment(text string) domain.Segmentation {
	return defaultTokenizer.Segment(text)
}
