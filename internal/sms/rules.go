package sms

import "regexp"

const amountGroup = `(?P<amount>[0-9٠-٩][0-9٠-٩.,]*)`

// DefaultRules is the ordered rule list the parser runs. Order is
// configuration, not style: rules are tried first-match-wins and more
// specific patterns must precede the general forms they overlap with
// (the plain "استلمت ... من" rule would swallow the dollar variant).
var DefaultRules = []Rule{
	{
		Name:     "wallet-received-usdt",
		Pattern:  regexp.MustCompile(`(?i)^received\s+` + amountGroup + `\s+USDT\s+from\s+(?P<person>.+)$`),
		Type:     TypeCredit,
		Source:   SourceWallet,
		Currency: "USDT",
	},
	{
		Name:     "wallet-sent-usdt",
		Pattern:  regexp.MustCompile(`(?i)^sent\s+` + amountGroup + `\s+USDT\s+to\s+(?P<person>.+)$`),
		Type:     TypeDebit,
		Source:   SourceWallet,
		Currency: "USDT",
	},
	{
		Name:     "cash-received-usd",
		Pattern:  regexp.MustCompile(`^استلمت\s+` + amountGroup + `\s+دولار\s+من\s+(?P<person>.+)$`),
		Type:     TypeCredit,
		Source:   SourceCash,
		Currency: "USD",
	},
	{
		Name:     "cash-received",
		Pattern:  regexp.MustCompile(`^استلمت\s+` + amountGroup + `\s+من\s+(?P<person>.+)$`),
		Type:     TypeCredit,
		Source:   SourceCash,
		Currency: "YER",
	},
	{
		Name:     "cash-sent",
		Pattern:  regexp.MustCompile(`^أرسلت\s+` + amountGroup + `\s+إلى\s+(?P<person>.+)$`),
		Type:     TypeDebit,
		Source:   SourceCash,
		Currency: "YER",
	},
	{
		Name:     "bank-deposit",
		Pattern:  regexp.MustCompile(`^تم إيداع مبلغ\s+` + amountGroup + `(?:\s+من\s+(?P<person>.+))?$`),
		Type:     TypeCredit,
		Source:   SourceBank,
		Currency: "YER",
	},
	{
		Name:     "bank-withdrawal",
		Pattern:  regexp.MustCompile(`^تم سحب مبلغ\s+` + amountGroup + `(?:\s+بواسطة\s+(?P<person>.+))?$`),
		Type:     TypeDebit,
		Source:   SourceBank,
		Currency: "YER",
	},
}
