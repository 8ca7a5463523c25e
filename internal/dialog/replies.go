// internal/dialog/replies.go
package dialog

// Fixed replies for the one-shot intents and the fallback.
const (
	replyMenu = "Hi there 👋 How can I help?\n" +
		"• Check account balance\n" +
		"• Get a transaction statement\n" +
		"• Block a card\n" +
		"• Apply for a loan"

	replyFallback = "Sorry, I didn't understand that.\n" +
		"You can say:\n" +
		"• Check my balance\n" +
		"• Get a transaction statement\n" +
		"• Block a card\n" +
		"• Apply for a loan\n" +
		"• Or just say \"Hi\" for options."
)
