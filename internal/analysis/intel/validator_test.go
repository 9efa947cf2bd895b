package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/yash6810/Plutus/internal/model/intel"
)

func TestConfirmPhoneWinsOverBankAccount(t *testing.T) {
	v := NewValidator()

	// The same digit run extracted under both kinds must come out as a
	// phone number only.
	items := v.Confirm([]model.Candidate{
		{Kind: model.KindBankAccount, Raw: "9876543210"},
		{Kind: model.KindPhoneNumber, Raw: "9876543210"},
	})

	require.Equal(t, []model.Item{
		{Kind: model.KindPhoneNumber, Value: "+919876543210"},
	}, items)
}

func TestConfirmPhoneNormalization(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		raw  string
		want string
	}{
		{"+919876543210", "+919876543210"},
		{"+91 9876543210", "+919876543210"},
		{"919876543210", "+919876543210"},
		{"09876543210", "+919876543210"},
		{"9876543210", "+919876543210"},
	}
	for _, tt := range tests {
		items := v.Confirm([]model.Candidate{{Kind: model.KindPhoneNumber, Raw: tt.raw}})
		require.Len(t, items, 1, "raw %q", tt.raw)
		assert.Equal(t, tt.want, items[0].Value, "raw %q", tt.raw)
	}
}

func TestConfirmRejectsBadPhones(t *testing.T) {
	v := NewValidator()

	for _, raw := range []string{
		"1234567890", // subscriber number cannot start below 6
		"987654321",  // too short
		"9999999999", // too few distinct digits
	} {
		items := v.Confirm([]model.Candidate{{Kind: model.KindPhoneNumber, Raw: raw}})
		assert.Empty(t, items, "raw %q", raw)
	}
}

func TestConfirmBankAccountRules(t *testing.T) {
	v := NewValidator()

	confirm := func(raw string) []model.Item {
		return v.Confirm([]model.Candidate{{Kind: model.KindBankAccount, Raw: raw}})
	}

	items := confirm("9826 4715 0032")
	require.Len(t, items, 1)
	assert.Equal(t, model.Item{Kind: model.KindBankAccount, Value: "982647150032"}, items[0])

	assert.Empty(t, confirm("1111 2222 1"), "too few distinct digits")
	assert.Empty(t, confirm("1234 5678 9012"), "sequential run")
	assert.Empty(t, confirm("9826 4715"), "too short")
}

func TestConfirmUPINormalization(t *testing.T) {
	v := NewValidator()

	items := v.Confirm([]model.Candidate{{Kind: model.KindUPIID, Raw: "Scammer@Paytm"}})
	require.Len(t, items, 1)
	assert.Equal(t, "scammer@paytm", items[0].Value)

	assert.Empty(t, v.Confirm([]model.Candidate{{Kind: model.KindUPIID, Raw: "ab@paytm"}}),
		"local part shorter than 3 chars")
}

func TestConfirmURLNormalization(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		raw  string
		want string
	}{
		{"HTTP://EVIL-Bank.com/Login?utm_source=sms&id=7#frag", "http://evil-bank.com/Login?id=7"},
		{"www.fake-sbi.in/kyc", "www.fake-sbi.in/kyc"},
		{"bit.ly/a1b2c3", "bit.ly/a1b2c3"},
	}
	for _, tt := range tests {
		items := v.Confirm([]model.Candidate{{Kind: model.KindPhishingLink, Raw: tt.raw}})
		require.Len(t, items, 1, "raw %q", tt.raw)
		assert.Equal(t, tt.want, items[0].Value, "raw %q", tt.raw)
	}
}

func TestConfirmDeduplicatesWithinMessage(t *testing.T) {
	v := NewValidator()

	items := v.Confirm([]model.Candidate{
		{Kind: model.KindUPIID, Raw: "scammer@paytm"},
		{Kind: model.KindUPIID, Raw: "SCAMMER@paytm"},
		{Kind: model.KindSuspiciousKeyword, Raw: "otp"},
		{Kind: model.KindSuspiciousKeyword, Raw: "otp"},
	})

	require.Equal(t, []model.Item{
		{Kind: model.KindUPIID, Value: "scammer@paytm"},
		{Kind: model.KindSuspiciousKeyword, Value: "otp"},
	}, items)
}

func TestConfirmEndToEndWithExtractor(t *testing.T) {
	e := NewExtractor()
	v := NewValidator()

	items := v.Confirm(e.Extract("Your account is blocked! Send OTP to +919876543210"))

	require.Equal(t, []model.Item{
		{Kind: model.KindPhoneNumber, Value: "+919876543210"},
		{Kind: model.KindSuspiciousKeyword, Value: "blocked"},
		{Kind: model.KindSuspiciousKeyword, Value: "otp"},
	}, items)
}

func TestConfirmEmptyInput(t *testing.T) {
	v := NewValidator()
	require.Nil(t, v.Confirm(nil))
}
