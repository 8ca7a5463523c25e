// pkg/registry/schema.go
package registry

type IntentRegistry struct {
	Version     string   `json:"version"`
	LastUpdated string   `json:"lastUpdated"`
	Intents     []Intent `json:"intents"`
}

type Intent struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	MatchMode   string   `json:"matchMode"`
	MultiTurn   bool     `json:"multiTurn"`
	Priority    int      `json:"priority"`
	Slots       []Slot   `json:"slots,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type Slot struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Prompt      string `json:"prompt"`
	RetryPrompt string `json:"retryPrompt,omitempty"`
}
