package amqp

import (
	"encoding/json"
	"time"

	"github.com/jiangdengke/qq-bot/internal/bot"
)

// MessageEvent is one inbound group-chat message as published by the chat
// gateway. Text is the plain message content; the bot decides whether it
// is a command.
type MessageEvent struct {
	MessageID string    `json:"messageId"`
	UserID    int64     `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ReplyMessage carries the bot's replies for one handled event back to the
// gateway, in sending order.
type ReplyMessage struct {
	MessageID string      `json:"messageId"`
	UserID    int64       `json:"userId"`
	Replies   []bot.Reply `json:"replies"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewReplyMessage(event *MessageEvent, replies []bot.Reply) *ReplyMessage {
	return &ReplyMessage{
		MessageID: event.MessageID,
		UserID:    event.UserID,
		Replies:   replies,
		Timestamp: time.Now(),
	}
}

func (m *ReplyMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageEventFromJSON(data []byte) (*MessageEvent, error) {
	var event MessageEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
