package intel

import (
	"net/url"
	"regexp"
	"strings"

	model "github.com/yash6810/Plutus/internal/model/intel"
)

// Validator filters extractor candidates into confirmed, normalized
// intelligence items. Like the Extractor it is pure: the same candidate set
// always yields the same confirmed items in the same order. Rejections are
// silent; they are control flow, not errors.
type Validator struct {
	upiLocalPart *regexp.Regexp
}

// NewValidator returns a validator with the default structural rules.
func NewValidator() *Validator {
	return &Validator{
		upiLocalPart: regexp.MustCompile(`^[A-Za-z0-9._-]+$`),
	}
}

// Confirm validates and normalizes candidates, deduplicating by (kind,
// value) within the message. A numeric token that parses as a valid mobile
// number is always classified as a phone number, never a bank account: the
// mobile shape is the more specific one.
func (v *Validator) Confirm(candidates []model.Candidate) []model.Item {
	if len(candidates) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(candidates))
	var items []model.Item
	add := func(kind model.Kind, value string) {
		item := model.Item{Kind: kind, Value: value}
		if _, ok := seen[item.Key()]; ok {
			return
		}
		seen[item.Key()] = struct{}{}
		items = append(items, item)
	}

	for _, c := range candidates {
		switch c.Kind {
		case model.KindBankAccount:
			digits := digitsOnly(c.Raw)
			if _, isPhone := normalizePhone(c.Raw); isPhone {
				continue
			}
			if validBankAccount(digits) {
				add(model.KindBankAccount, digits)
			}
		case model.KindPhoneNumber:
			if phone, ok := normalizePhone(c.Raw); ok {
				add(model.KindPhoneNumber, phone)
			}
		case model.KindUPIID:
			if upi, ok := v.normalizeUPI(c.Raw); ok {
				add(model.KindUPIID, upi)
			}
		case model.KindPhishingLink:
			if link, ok := normalizeURL(c.Raw); ok {
				add(model.KindPhishingLink, link)
			}
		case model.KindSuspiciousKeyword:
			if keyword := strings.ToLower(strings.TrimSpace(c.Raw)); keyword != "" {
				add(model.KindSuspiciousKeyword, keyword)
			}
		}
	}
	return items
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func uniqueDigits(s string) int {
	seen := make(map[rune]struct{}, 10)
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// validBankAccount applies the structural rules for Indian account numbers:
// 9-18 digits, at least 3 distinct digits, not a purely sequential run.
func validBankAccount(digits string) bool {
	if len(digits) < 9 || len(digits) > 18 {
		return false
	}
	if uniqueDigits(digits) < 3 {
		return false
	}
	const ascending = "12345678901234567890"
	const descending = "09876543210987654321"
	if strings.Contains(ascending, digits) || strings.Contains(descending, digits) {
		return false
	}
	return true
}

// normalizePhone reduces a raw match to the canonical +91XXXXXXXXXX form.
// Accepts bare 10-digit numbers, 0-prefixed, 91-prefixed, and +91-prefixed
// variants; the subscriber number must start with 6-9.
func normalizePhone(raw string) (string, bool) {
	digits := digitsOnly(raw)

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	if len(digits) != 10 {
		return "", false
	}
	if digits[0] < '6' || digits[0] > '9' {
		return "", false
	}
	if uniqueDigits(digits) < 3 {
		return "", false
	}
	return "+91" + digits, true
}

// normalizeUPI lowercases a UPI handle and checks the local part.
func (v *Validator) normalizeUPI(raw string) (string, bool) {
	id := strings.ToLower(strings.TrimSpace(raw))
	local, _, ok := strings.Cut(id, "@")
	if !ok || len(local) < 3 {
		return "", false
	}
	if !v.upiLocalPart.MatchString(local) {
		return "", false
	}
	return id, true
}

// normalizeURL canonicalizes a link for deduplication: scheme and host are
// lowercased, the fragment and utm_* tracking params are stripped, and the
// path is preserved. Links without an explicit scheme keep that shape so the
// reported value matches what the scammer sent.
func normalizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	lower := strings.ToLower(raw)
	hadScheme := strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
	test := raw
	if !hadScheme {
		test = "http://" + raw
	}

	u, err := url.Parse(test)
	if err != nil || u.Host == "" || !strings.Contains(u.Host, ".") {
		return "", false
	}

	host := strings.ToLower(u.Host)
	query := u.Query()
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			delete(query, key)
		}
	}

	normalized := host + u.EscapedPath()
	if encoded := query.Encode(); encoded != "" {
		normalized += "?" + encoded
	}
	if hadScheme {
		normalized = strings.ToLower(u.Scheme) + "://" + normalized
	}
	return normalized, true
}
