// Package crisis implements the tiered keyword scan that decides whether
// a user message signals a crisis situation. The detector is a pure
// function of its input: it owns no I/O, holds only immutable compiled
// tables, and is safe for concurrent use.
package crisis

import (
	"regexp"
	"strings"

	"github.com/quietharbor/quietharbor/internal/model"
)

// Tiers holds the raw keyword/phrase strings organized by severity.
type Tiers struct {
	Critical []string `yaml:"critical"`
	High     []string `yaml:"high"`
	Medium   []string `yaml:"medium"`
}

// compiledKeyword pairs a keyword with its word-boundary pattern.
// Patterns are anchored on \b so "die" never matches inside "diet".
type compiledKeyword struct {
	keyword string
	re      *regexp.Regexp
}

// Detector scans messages against compiled keyword tiers.
type Detector struct {
	critical []compiledKeyword
	high     []compiledKeyword
	medium   []compiledKeyword
}

// New creates a Detector from raw tiers, compiling one pattern per keyword.
func New(t Tiers) *Detector {
	return &Detector{
		critical: compileTier(t.Critical),
		high:     compileTier(t.High),
		medium:   compileTier(t.Medium),
	}
}

// NewDefault creates a Detector with the built-in keyword tiers.
func NewDefault() *Detector {
	return New(DefaultTiers)
}

func compileTier(keywords []string) []compiledKeyword {
	compiled := make([]compiledKeyword, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		compiled = append(compiled, compiledKeyword{
			keyword: kw,
			re:      regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`),
		})
	}
	return compiled
}

// Classify maps a message to a severity level, confidence score, and the
// set of matched keywords. Tier precedence is strict: any critical match
// decides the result without consulting lower tiers, then high, then
// medium. Within a tier all matches are collected, not just the first.
// Medium needs two or more distinct keywords; a single medium match
// classifies as none. Empty or whitespace-only input classifies as none.
func (d *Detector) Classify(message string) model.Classification {
	lower := strings.ToLower(message)

	if found := findKeywords(lower, d.critical); len(found) > 0 {
		return model.Classification{
			Detected:   true,
			Level:      model.SeverityCritical,
			Keywords:   found,
			Confidence: ConfidenceCritical,
		}
	}

	if found := findKeywords(lower, d.high); len(found) > 0 {
		return model.Classification{
			Detected:   true,
			Level:      model.SeverityHigh,
			Keywords:   found,
			Confidence: ConfidenceHigh,
		}
	}

	if found := findKeywords(lower, d.medium); len(found) >= mediumMinMatches {
		return model.Classification{
			Detected:   true,
			Level:      model.SeverityMedium,
			Keywords:   found,
			Confidence: ConfidenceMedium,
		}
	}

	return model.Classification{
		Detected:   false,
		Level:      model.SeverityNone,
		Keywords:   []string{},
		Confidence: 0.0,
	}
}

// findKeywords returns the keywords present in the lowercased message,
// in tier definition order so repeated calls yield identical results.
func findKeywords(lower string, tier []compiledKeyword) []string {
	var found []string
	for _, ck := range tier {
		if ck.re.MatchString(lower) {
			found = append(found, ck.keyword)
		}
	}
	return found
}
