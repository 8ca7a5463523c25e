// internal/flows/statement/config.go
package statement

type Config struct {
	PromptStart  string
	PromptEnd    string
	ErrStartDate string
	ErrEndDate   string
	ReplyHeader  string
	ReplyNoMatch string
}

func DefaultConfig() *Config {
	return &Config{
		PromptStart:  "Sure—please provide the start date (YYYY-MM-DD).",
		PromptEnd:    "Great—now please provide the end date (YYYY-MM-DD).",
		ErrStartDate: "Invalid date. Enter start date as YYYY-MM-DD.",
		ErrEndDate:   "Invalid date. Enter end date as YYYY-MM-DD.",
		ReplyHeader:  "Here are your transactions:",
		ReplyNoMatch: "No transactions found in that range.",
	}
}
