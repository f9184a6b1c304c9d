package services

import (
	"context"
	"fmt"
	"net/smtp"
	"time"
)

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender abstracts the outbound mail channel.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}

// SMTPSender delivers HTML mail over plain SMTP auth.
type SMTPSender struct {
	host       string
	port       string
	senderName string
	username   string
	password   string
}

func NewSMTPSender(host, port, senderName, username, password string) (*SMTPSender, error) {
	if host == "" {
		host = "smtp.gmail.com"
	}
	if port == "" {
		port = "587"
	}
	if senderName == "" {
		senderName = "FarmLink"
	}
	if username == "" {
		return nil, fmt.Errorf("SMTP_EMAIL not set")
	}
	if password == "" {
		return nil, fmt.Errorf("SMTP_PASSWORD not set")
	}
	return &SMTPSender{
		host:       host,
		port:       port,
		senderName: senderName,
		username:   username,
		password:   password,
	}, nil
}

func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	msg := []byte(
		"From: " + s.senderName + " <" + s.username + ">\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(addr, auth, s.username, []string{to}, msg); err != nil {
		return SendResult{}, fmt.Errorf("smtp send failed: %w", err)
	}

	return SendResult{
		MessageID: fmt.Sprintf("smtp-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
