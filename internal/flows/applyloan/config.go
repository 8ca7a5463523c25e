// internal/flows/applyloan/config.go
package applyloan

type Config struct {
	PromptAmount      string
	PromptTenure      string
	PromptRetryAmount string
	PromptRetryTenure string
}

func DefaultConfig() *Config {
	return &Config{
		PromptAmount:      "Sure—how much would you like to borrow (in INR)?",
		PromptTenure:      "Got it. Over how many months would you like to repay?",
		PromptRetryAmount: "Please tell me the loan amount (just numbers).",
		PromptRetryTenure: "Please specify repayment duration in months.",
	}
}
