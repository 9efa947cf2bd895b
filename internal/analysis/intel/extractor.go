package intel

import (
	"fmt"
	"regexp"
	"strings"

	model "github.com/yash6810/Plutus/internal/model/intel"
)

// Extractor scans raw message text for candidate intelligence items. It is
// pure and stateless: identical input always yields identical candidates.
//
// Matching is independent per kind, so one token may produce overlapping
// candidates of different kinds (a digit run can look like both a phone
// number and a bank account); disambiguation belongs to the Validator.
type Extractor struct {
	bankAccount *regexp.Regexp
	upiID       *regexp.Regexp
	phone       *regexp.Regexp
	url         *regexp.Regexp
	keywords    []string
}

// NewExtractor builds an extractor over the default lists.
func NewExtractor() *Extractor {
	return NewExtractorWithLists(DefaultLists())
}

// NewExtractorWithLists builds an extractor over custom matching data.
func NewExtractorWithLists(lists Lists) *Extractor {
	providers := make([]string, len(lists.UPIProviders))
	for i, p := range lists.UPIProviders {
		providers[i] = regexp.QuoteMeta(p)
	}
	shorteners := make([]string, len(lists.Shorteners))
	for i, s := range lists.Shorteners {
		shorteners[i] = regexp.QuoteMeta(s)
	}

	return &Extractor{
		// Account numbers written as contiguous digits or 4-4-n groups
		// separated by spaces or hyphens.
		bankAccount: regexp.MustCompile(`\b(\d{4}[\s-]?\d{4}[\s-]?\d{1,10})\b`),
		upiID: regexp.MustCompile(fmt.Sprintf(
			`(?i)\b([A-Za-z0-9._-]+@(?:%s))\b`, strings.Join(providers, "|"))),
		// Indian mobile numbers: optional +91 or leading zero, first digit 6-9.
		phone: regexp.MustCompile(`(\+91[\s-]?[6-9]\d{9}|\b0?[6-9]\d{9})\b`),
		url: regexp.MustCompile(fmt.Sprintf(
			`(?i)((?:https?://|www\.)[^\s<>"']+|(?:%s)/[^\s<>"']+)`, strings.Join(shorteners, "|"))),
		keywords: lists.Keywords,
	}
}

// Extract returns every candidate found in text, grouped by kind in a fixed
// order so output is deterministic. Empty text yields nil.
func (e *Extractor) Extract(text string) []model.Candidate {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []model.Candidate
	for _, m := range e.bankAccount.FindAllString(text, -1) {
		out = append(out, model.Candidate{Kind: model.KindBankAccount, Raw: m})
	}
	for _, m := range e.upiID.FindAllString(text, -1) {
		out = append(out, model.Candidate{Kind: model.KindUPIID, Raw: m})
	}
	for _, m := range e.phone.FindAllString(text, -1) {
		out = append(out, model.Candidate{Kind: model.KindPhoneNumber, Raw: m})
	}
	for _, m := range e.url.FindAllString(text, -1) {
		// Trailing sentence punctuation is not part of the link.
		out = append(out, model.Candidate{Kind: model.KindPhishingLink, Raw: strings.TrimRight(m, ".,;:!?)")})
	}

	lower := strings.ToLower(text)
	for _, keyword := range e.keywords {
		if strings.Contains(lower, keyword) {
			out = append(out, model.Candidate{Kind: model.KindSuspiciousKeyword, Raw: keyword})
		}
	}
	return out
}
