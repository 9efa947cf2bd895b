package intel

// Lists holds the static matching data consumed by the extractor and
// validator. The defaults cover the Indian payments ecosystem; callers can
// supply their own lists without touching code.
type Lists struct {
	UPIProviders []string
	Shorteners   []string
	Keywords     []string
}

// DefaultLists returns the built-in provider, shortener, and keyword data.
func DefaultLists() Lists {
	return Lists{
		UPIProviders: []string{
			"paytm", "ybl", "axisbank", "oksbi", "okicici", "okhdfcbank",
			"icici", "sbi", "hdfc", "airtel", "freecharge", "jiomoney",
			"mobikwik", "apl", "amazonpay", "ibl", "axl", "upi", "gpay",
			"pingpay", "abfspay", "barodampay", "centralbank", "cnrb",
			"csbpay", "dbs", "federal", "finobank", "idfcbank", "indus",
			"kotak", "pnb", "rbl", "sib", "ubi", "united", "utbi", "vijb",
			"yesbankltd",
		},
		Shorteners: []string{
			"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly", "is.gd",
			"buff.ly", "j.mp", "tr.im",
		},
		Keywords: []string{
			"urgent", "immediately", "blocked", "suspended", "verify",
			"otp", "password", "cvv", "expire", "limited time", "act now",
			"account closed", "confirm identity", "click here", "update kyc",
			"kyc update", "link expire", "bank notice", "rbi", "security alert",
			"unusual activity", "unauthorized", "refund", "lottery", "prize",
			"winner", "claim now", "last chance", "final notice", "warning",
			"action required", "pan card", "aadhaar", "debit card", "credit card",
			"pin", "atm", "transfer", "send money", "pay now", "payment failed",
			"transaction failed", "account frozen", "legal action", "police",
			"arrest", "case filed", "court", "fine", "penalty",
		},
	}
}
