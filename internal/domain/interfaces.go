package domain

import "time"

// Document represents a single text file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Segmentation is the result of splitting a text into sentences and words.
// Words are lowercased; an empty Segmentation means "no data".
type Segmentation struct {
	Sentences []string
	Words     []string
}

// FogReport holds the aggregate counts behind a Gunning Fog index.
type FogReport struct {
	Sentences         int     `json:"sentences"`
	Words             int     `json:"words"`
	ComplexWords      int     `json:"complex_words"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	PercentComplex    float64 `json:"percent_complex"`
	Index             float64 `json:"fog_index"`
}

// Hotspot is a sentence ranked by its own fog index.
type Hotspot struct {
	Index        int     `json:"index"`
	Sentence     string  `json:"sentence"`
	Words        int     `json:"words"`
	ComplexWords int     `json:"complex_words"`
	Fog          float64 `json:"fog_index"`
}

// KeywordCount is the number of whole-word mentions of one keyword.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// CategoryCount groups keyword counts under a taxonomy category.
type CategoryCount struct {
	Category string         `json:"category"`
	Keywords []KeywordCount `json:"keywords"`
}

// Total returns the number of mentions across all keywords of the category.
func (c CategoryCount) Total() int {
	n := 0
	for _, k := range c.Keywords {
		n += k.Count
	}
	return n
}

// KeywordReport is the outcome of counting a keyword taxonomy in a text.
type KeywordReport struct {
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
}

// Result is the analysis of one document. Err is set when the document
// could not be read; the reports are then zero.
type Result struct {
	DocumentID string        `json:"document_id"`
	Path       string        `json:"path"`
	Fog        FogReport     `json:"fog"`
	Keywords   KeywordReport `json:"keywords"`
	Hotspots   []Hotspot     `json:"hotspots,omitempty"`
	ScoredAt   time.Time     `json:"scored_at"`
	Err        error         `json:"-"`
	// Text is kept for interactive preview and is not persisted.
	Text string `json:"-"`
}

// Segmenter splits text into sentences and words.
type Segmenter interface {
	Segment(text string) Segmentation
}

// ReadabilityScorer produces a fog report for a text and ranks its sentences.
type ReadabilityScorer interface {
	Analyze(text string) FogReport
	Hotspots(text string, maxSentences int) []Hotspot
}

// KeywordCounter counts taxonomy keywords in a text.
type KeywordCounter interface {
	Count(text string) KeywordReport
}
