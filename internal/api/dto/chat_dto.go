package dto

import "time"

// ChatMessageResponse is one chat line.
type ChatMessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// ChatResponse is the open chat view.
type ChatResponse struct {
	Peer     EmployeeResponse      `json:"peer"`
	Messages []ChatMessageResponse `json:"messages"`
	Input    string                `json:"input"`
}

// SendMessageRequest payload.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// ChatInputRequest replaces the unsent input.
type ChatInputRequest struct {
	Input string `json:"input"`
}
