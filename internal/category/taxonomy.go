package category

import (
	"strings"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Rule associates a category with the keywords that select it.
type Rule struct {
	Category model.Category
	Keywords []string // lower-case
}

// Taxonomy is an ordered set of category rules plus a catch-all.
// Rule order is the tie-break priority when text matches several categories.
type Taxonomy struct {
	rules    []Rule
	fallback model.Category
	known    map[model.Category]bool
}

// New builds a Taxonomy from rules, evaluated in the given order.
// Keywords are lower-cased and the rules slice is copied.
func New(rules []Rule, fallback model.Category) *Taxonomy {
	t := &Taxonomy{
		rules:    make([]Rule, len(rules)),
		fallback: fallback,
		known:    make(map[model.Category]bool, len(rules)+1),
	}
	for i, r := range rules {
		kw := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			kw[j] = strings.ToLower(k)
		}
		t.rules[i] = Rule{Category: r.Category, Keywords: kw}
		t.known[r.Category] = true
	}
	t.known[fallback] = true
	return t
}

// Classify returns the first category whose keywords occur in text, or the
// fallback category when none do.
func (t *Taxonomy) Classify(text string) model.Category {
	lower := strings.ToLower(text)
	for _, r := range t.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return t.fallback
}

// Fallback returns the catch-all category.
func (t *Taxonomy) Fallback() model.Category {
	return t.fallback
}

// Names returns every category in priority order, fallback last.
func (t *Taxonomy) Names() []model.Category {
	names := make([]model.Category, 0, len(t.rules)+1)
	for _, r := range t.rules {
		names = append(names, r.Category)
	}
	return append(names, t.fallback)
}

// Rules returns a copy of the ordered rules.
func (t *Taxonomy) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Exists reports whether c is part of the taxonomy.
func (t *Taxonomy) Exists(c model.Category) bool {
	return t.known[c]
}
