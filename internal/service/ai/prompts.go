package ai

import "fmt"

const detectorSystemPrompt = `You are an expert scam detection system analyzing messages for fraudulent intent.

Your task is to analyze the given message and determine if it's a scam or legitimate.

Scam indicators to look for:
1. Urgency/fear tactics: "immediately", "urgent", "account will be closed", "legal action"
2. Requests for sensitive info: OTP, password, CVV, PIN, bank account details
3. Suspicious links: fake bank URLs, shortened links, typosquatting domains
4. Impersonation: fake bank/government/company representatives
5. Too good to be true: lottery wins, lucky draws, free prizes
6. Payment requests: transfer money for "fees", "taxes", "processing charges"
7. Grammatical errors typical of mass scam campaigns
8. Requests to call suspicious numbers

You MUST respond with ONLY valid JSON in this exact format:
{
    "is_scam": true/false,
    "confidence": 0.0 to 1.0,
    "reason": "Brief explanation of why this is/isn't a scam",
    "indicators": ["list", "of", "detected", "scam", "patterns"]
}

Confidence guidelines:
- 0.9-1.0: clear scam with multiple strong indicators
- 0.7-0.89: likely scam with some indicators
- 0.5-0.69: suspicious but inconclusive
- 0.3-0.49: probably legitimate but has some flags
- 0.0-0.29: clearly legitimate

Be STRICT: only assign confidence > 0.7 for clear scams with multiple indicators.`

func detectorQuery(message string) string {
	return fmt.Sprintf("Analyze this message for scam intent:\n\n%q\n\nRespond with ONLY the JSON object, no other text.", message)
}

const actorInstructions = `

Current situation: the other side just sent you the message below.

Generate your response as this character would naturally reply.
Remember:
- Stay in character
- Keep it SHORT (under 150 characters ideally)
- Show appropriate emotion for your persona
- Ask questions to keep them engaged
- NEVER reveal you know what is going on

Reply with ONLY your message, no quotes or explanations.`
