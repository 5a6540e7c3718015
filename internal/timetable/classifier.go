package timetable

import "strings"

// Category is the presentation colour bucket for a subject.
type Category string

const (
	CategoryBlue   Category = "BLUE"
	CategoryGreen  Category = "GREEN"
	CategoryOrange Category = "ORANGE"
	CategoryPink   Category = "PINK"
	CategoryPurple Category = "PURPLE"
)

// ClassifierRule maps a keyword group to a category. Rules are evaluated
// in order and the first keyword hit wins, so rule order is part of the
// classification contract.
type ClassifierRule struct {
	Keywords []string
	Category Category
}

// Classifier assigns subjects to categories by case-insensitive substring
// matching against an ordered rule table.
type Classifier struct {
	rules []ClassifierRule
}

// NewClassifier builds a classifier over the given rule table. A nil
// table falls back to DefaultRules.
func NewClassifier(rules []ClassifierRule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// DefaultRules returns the built-in subject rule table.
func DefaultRules() []ClassifierRule {
	return []ClassifierRule{
		{Keywords: []string{"programming", "language"}, Category: CategoryBlue},
		{Keywords: []string{"math", "database"}, Category: CategoryOrange},
		{Keywords: []string{"economics", "metrology"}, Category: CategoryGreen},
		{Keywords: []string{"physical education"}, Category: CategoryPink},
		{Keywords: []string{"technology", "network"}, Category: CategoryPurple},
	}
}

// Classify returns the category for a subject, CategoryBlue by default.
func (c *Classifier) Classify(subject string) Category {
	s := strings.ToLower(subject)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(s, kw) {
				return rule.Category
			}
		}
	}
	return CategoryBlue
}
