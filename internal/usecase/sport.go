package usecase

import (
	"fmt"
	"strings"
)

type Sport string

const (
	SportSoccer     Sport = "soccer"
	SportBasketball Sport = "basketball"
	SportFormula1   Sport = "f1"
)

// AllSports is the default run order.
var AllSports = []Sport{SportSoccer, SportBasketball, SportFormula1}

// ParseSport accepts the canonical names plus a few aliases.
func ParseSport(raw string) (Sport, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "soccer", "football":
		return SportSoccer, nil
	case "basketball":
		return SportBasketball, nil
	case "f1", "formula1", "formula-1":
		return SportFormula1, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSport, raw)
	}
}

func ParseSports(raw []string) ([]Sport, error) {
	out := make([]Sport, 0, len(raw))
	seen := make(map[Sport]struct{}, len(raw))
	for _, item := range raw {
		if strings.TrimSpace(item) == "" {
			continue
		}
		sport, err := ParseSport(item)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[sport]; ok {
			continue
		}
		seen[sport] = struct{}{}
		out = append(out, sport)
	}
	return out, nil
}

type collectionRule struct {
	prefixes []string
	contains []string
	exact    []string
	fallback string
}

var collectionRules = map[Sport]collectionRule{
	SportSoccer: {
		prefixes: []string{"soccer"},
		contains: []string{"fixtures", "matches"},
		fallback: "soccer",
	},
	SportBasketball: {
		prefixes: []string{"basketball"},
		contains: []string{"games"},
		exact:    []string{"basketball"},
		fallback: "basketball",
	},
	SportFormula1: {
		prefixes: []string{"f1", "formula"},
		contains: []string{"results", "races"},
		exact:    []string{"f1"},
		fallback: "f1",
	},
}

// SelectCollections picks the staging collections holding fact-level
// documents for sport, keeping the listing order.
func SelectCollections(sport Sport, names []string) []string {
	rule, ok := collectionRules[sport]
	if !ok {
		return nil
	}

	prefixed := make([]string, 0, len(names))
	for _, name := range names {
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(name, prefix) {
				prefixed = append(prefixed, name)
				break
			}
		}
	}

	out := make([]string, 0, len(prefixed))
	hasFallback := false
	for _, name := range prefixed {
		if name == rule.fallback {
			hasFallback = true
		}
		if rule.matches(name) {
			out = append(out, name)
		}
	}
	if len(out) == 0 && hasFallback {
		out = append(out, rule.fallback)
	}
	return out
}

func (r collectionRule) matches(name string) bool {
	for _, exact := range r.exact {
		if name == exact {
			return true
		}
	}
	for _, part := range r.contains {
		if strings.Contains(name, part) {
			return true
		}
	}
	return false
}
