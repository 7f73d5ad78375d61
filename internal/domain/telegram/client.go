package telegram

// Client sends text messages to the chat the bot reports to.
// This keeps the poll cycle independent of the specific bot library.
type Client interface {
	SendMessage(text string) error
}
