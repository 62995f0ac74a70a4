package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	resendEndpoint = "https://api.resend.com/emails"
	contactSender  = "Contact Form <onboarding@resend.dev>"
)

// Message is an outgoing contact email.
type Message struct {
	ID      string `json:"-"`
	From    string `json:"from"`
	To      string `json:"to"`
	ReplyTo string `json:"reply_to,omitempty"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// NewContactMessage builds the email sent for a contact form submission.
func NewContactMessage(to, name, email, body string) Message {
	return Message{
		ID:      uuid.NewString(),
		From:    contactSender,
		To:      to,
		ReplyTo: email,
		Subject: fmt.Sprintf("New message from %s", name),
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", name, email, body),
	}
}

// ResendMailer sends through the Resend HTTP API.
type ResendMailer struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{
		apiKey:   apiKey,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if msg.ID != "" {
		req.Header.Set("Idempotency-Key", msg.ID)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend error: %s - %s", resp.Status, string(body))
	}
	return nil
}

// LogMailer only logs messages. It is used when no API key is configured.
type LogMailer struct {
	log logrus.FieldLogger
}

func NewLogMailer(log logrus.FieldLogger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.WithFields(logrus.Fields{
		"id":       msg.ID,
		"reply_to": msg.ReplyTo,
		"subject":  msg.Subject,
	}).Info("No mail API key configured, logging contact message instead")
	m.log.Debug(msg.Text)
	return nil
}

// NewMailer picks the Resend mailer when an API key is set.
func NewMailer(apiKey string, log logrus.FieldLogger) Mailer {
	if apiKey == "" {
		return NewLogMailer(log)
	}
	return NewResendMailer(apiKey)
}
