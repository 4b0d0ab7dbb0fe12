package model

import "time"

// ChatMessage is one message in a team's group chat. Clients poll for new
// messages; there is no push channel.
type ChatMessage struct {
	ID             string    `json:"id"`
	TeamID         string    `json:"teamId"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	SenderInitials string    `json:"senderInitials"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
}
