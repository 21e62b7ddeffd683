package domain

import (
	"fmt"
	"strings"
)

// EmailJob message handed to the mail worker over amqp or kafka
type EmailJob struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// NewEmailJob build job, html body keeps line breaks
func NewEmailJob(id, senderName, from, to, subject, body string) EmailJob {
	return EmailJob{
		ID:      id,
		From:    fmt.Sprintf("%q <%s>", senderName, from),
		To:      to,
		Subject: subject,
		Text:    body,
		HTML:    strings.ReplaceAll(body, "\n", "<br>"),
	}
}
