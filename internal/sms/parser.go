package sms

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parser runs an ordered, first-match-wins rule list over raw messages.
type Parser struct {
	rules []Rule
}

// NewParser builds a parser over the given rules. Pass DefaultRules for the
// stock configuration; the slice order is preserved exactly.
func NewParser(rules []Rule) *Parser {
	return &Parser{rules: rules}
}

func (p *Parser) Parse(msg string) (*ParsedSMS, error) {
	msg = strings.TrimSpace(msg)

	for _, rule := range p.rules {
		m := rule.Pattern.FindStringSubmatch(msg)
		if m == nil {
			continue
		}

		parsed, err := extract(rule, m)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
		}

		return parsed, nil
	}

	return nil, ErrNoRuleMatched
}

func extract(rule Rule, match []string) (*ParsedSMS, error) {
	parsed := &ParsedSMS{Type: rule.Type, Source: rule.Source, Currency: rule.Currency}

	for i, name := range rule.Pattern.SubexpNames() {
		if i == 0 || i >= len(match) {
			continue
		}

		value := strings.TrimSpace(match[i])

		switch name {
		case "amount":
			amount, err := parseAmount(value)
			if err != nil {
				return nil, err
			}

			parsed.Amount = amount
		case "person":
			parsed.Person = value
		case "currency":
			if value != "" {
				parsed.Currency = value
			}
		}
	}

	if parsed.Amount <= 0 {
		return nil, fmt.Errorf("non-positive amount")
	}

	return parsed, nil
}

const arabicZero = '٠'

// parseAmount converts a captured amount string to minor units. Messages mix
// Western and Arabic-Indic digits and use commas as thousands separators.
func parseAmount(s string) (int64, error) {
	var b strings.Builder

	for _, r := range s {
		switch {
		case r >= arabicZero && r <= arabicZero+9:
			b.WriteRune('0' + (r - arabicZero))
		case r == ',':
			// thousands separator
		default:
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
