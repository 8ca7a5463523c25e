// internal/flows/blockcard/config.go
package blockcard

type Config struct {
	PromptType       string
	PromptLastFour   string
	PromptRetryDigit string
}

func DefaultConfig() *Config {
	return &Config{
		PromptType:       "Which card type—debit or credit?",
		PromptLastFour:   "Sure—what are the last four digits of the card?",
		PromptRetryDigit: "Please send the last four digits of your card.",
	}
}
