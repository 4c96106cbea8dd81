package edu

import "time"

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

type SendMessageReq struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Subject     string `json:"subject" validate:"required,max=200"`
	Content     string `json:"content" validate:"required,max=5000"`
}

type SendMessageResp struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type Message struct {
	ID        string      `json:"id"`
	Sender    Participant `json:"sender"`
	Recipient Participant `json:"recipient"`
	Subject   string      `json:"subject"`
	Content   string      `json:"content"`
	Direction string      `json:"direction"`
	Timestamp time.Time   `json:"timestamp"`
	Read      bool        `json:"read"`
}
