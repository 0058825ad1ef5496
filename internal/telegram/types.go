package telegram

// Update is an inbound bot update. Only message.text and message.chat.id
// are consumed; everything else Telegram sends is ignored.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is the message part of an update.
type Message struct {
	Text string `json:"text"`
	Chat Chat   `json:"chat"`
}

// Chat identifies the conversation a message arrived from.
type Chat struct {
	ID int64 `json:"id"`
}
