package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/yash6810/Plutus/internal/model/intel"
)

func candidateValues(candidates []model.Candidate, kind model.Kind) []string {
	var out []string
	for _, c := range candidates {
		if c.Kind == kind {
			out = append(out, c.Raw)
		}
	}
	return out
}

func TestExtractPhoneAndKeywords(t *testing.T) {
	e := NewExtractor()

	candidates := e.Extract("Your account is blocked! Send OTP to +919876543210")

	assert.Contains(t, candidateValues(candidates, model.KindPhoneNumber), "+919876543210")
	keywords := candidateValues(candidates, model.KindSuspiciousKeyword)
	assert.Contains(t, keywords, "blocked")
	assert.Contains(t, keywords, "otp")
}

func TestExtractUPIID(t *testing.T) {
	e := NewExtractor()

	candidates := e.Extract("pay to scammer@paytm now")

	assert.Equal(t, []string{"scammer@paytm"}, candidateValues(candidates, model.KindUPIID))
}

func TestExtractBankAccountGroupings(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		text string
		want string
	}{
		{"transfer to 9826 4715 0032 today", "9826 4715 0032"},
		{"account 9826-4715-0032", "9826-4715-0032"},
		{"account 982647150032", "982647150032"},
	}
	for _, tt := range tests {
		candidates := e.Extract(tt.text)
		assert.Contains(t, candidateValues(candidates, model.KindBankAccount), tt.want, "text %q", tt.text)
	}
}

func TestExtractOverlappingDigitRun(t *testing.T) {
	e := NewExtractor()

	// A bare mobile number also matches the account-number shape. Both
	// candidates are emitted; classification is the validator's job.
	candidates := e.Extract("call me on 9876543210")

	assert.NotEmpty(t, candidateValues(candidates, model.KindPhoneNumber))
	assert.NotEmpty(t, candidateValues(candidates, model.KindBankAccount))
}

func TestExtractURLVariants(t *testing.T) {
	e := NewExtractor()

	candidates := e.Extract("click https://fake-sbi.in/kyc or bit.ly/a1b2c3 or www.verify-now.com/login.")

	links := candidateValues(candidates, model.KindPhishingLink)
	assert.Contains(t, links, "https://fake-sbi.in/kyc")
	assert.Contains(t, links, "bit.ly/a1b2c3")
	assert.Contains(t, links, "www.verify-now.com/login")
}

func TestExtractStripsTrailingPunctuationFromLinks(t *testing.T) {
	e := NewExtractor()

	candidates := e.Extract("visit https://evil.example/win!")

	assert.Equal(t, []string{"https://evil.example/win"}, candidateValues(candidates, model.KindPhishingLink))
}

func TestExtractEmptyText(t *testing.T) {
	e := NewExtractor()

	require.Nil(t, e.Extract(""))
	require.Nil(t, e.Extract("   \t\n"))
}

func TestExtractIsDeterministic(t *testing.T) {
	e := NewExtractor()
	text := "urgent: send otp and pay scammer@paytm, call +919876543210, open bit.ly/xyz"

	first := e.Extract(text)
	second := e.Extract(text)

	require.Equal(t, first, second)
}

func TestExtractCleanTextYieldsNothing(t *testing.T) {
	e := NewExtractor()

	candidates := e.Extract("See you at lunch tomorrow around noon.")

	assert.Empty(t, candidates)
}
