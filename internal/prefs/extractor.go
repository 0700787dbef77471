package prefs

import (
	"strings"
	"time"
	"unicode"
)

// Extractor updates a Preferences record from the text of a new exchange.
// The keyword implementation below is the only one today; the interface
// exists so a proper classifier can replace it without touching the
// memory manager.
type Extractor interface {
	Update(p *Preferences, userText, assistantText string)
}

// destinationGazetteer lists the destination names recognized by exact
// substring match. "spain" inside another word still matches.
var destinationGazetteer = []string{
	"paris", "london", "tokyo", "new york", "rome", "barcelona", "amsterdam",
	"thailand", "japan", "italy", "spain", "france", "germany", "australia",
	"india", "china", "brazil", "mexico", "canada", "dubai", "singapore",
}

// Keyword sets checked in fixed priority order; the first matching rule wins
// and overwrites the stored value.
var (
	budgetRules = []struct {
		tier     string
		keywords []string
	}{
		{BudgetBudget, []string{"budget", "cheap", "affordable"}},
		{BudgetLuxury, []string{"luxury", "premium", "expensive"}},
		{BudgetMidRange, []string{"mid-range", "moderate"}},
	}

	styleRules = []struct {
		style    string
		keywords []string
	}{
		{StyleSolo, []string{"solo", "alone"}},
		{StyleFamily, []string{"family", "kids", "children"}},
		{StyleCouple, []string{"couple", "romantic"}},
		{StyleAdventure, []string{"adventure", "hiking", "trekking"}},
	}
)

// KeywordExtractor classifies preferences by scanning the lower-cased
// exchange text against fixed keyword tables.
type KeywordExtractor struct{}

// NewKeywordExtractor returns the keyword-table Extractor.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

// Update scans both texts and mutates p in place. Destinations accumulate
// (case-insensitive dedup, insertion order preserved); budget tier and travel
// style are overwritten by the first matching rule, if any.
func (e *KeywordExtractor) Update(p *Preferences, userText, assistantText string) {
	combined := strings.ToLower(userText + " " + assistantText)

	for _, dest := range destinationGazetteer {
		if !strings.Contains(combined, dest) {
			continue
		}
		formatted := titleCase(dest)
		if !containsFold(p.DestinationsInterested, formatted) {
			p.DestinationsInterested = append(p.DestinationsInterested, formatted)
		}
	}

	for _, rule := range budgetRules {
		if containsAny(combined, rule.keywords) {
			p.BudgetPreference = rule.tier
			break
		}
	}

	for _, rule := range styleRules {
		if containsAny(combined, rule.keywords) {
			p.TravelStyle = rule.style
			break
		}
	}

	p.LastUpdated = time.Now()
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// titleCase upper-cases the first letter of each word ("new york" -> "New York").
func titleCase(s string) string {
	out := []rune(s)
	upperNext := true
	for i, r := range out {
		if upperNext && unicode.IsLetter(r) {
			out[i] = unicode.ToUpper(r)
			upperNext = false
		} else if !unicode.IsLetter(r) {
			upperNext = true
		}
	}
	return string(out)
}
