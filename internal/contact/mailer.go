// Package contact implements the contact form: a small state machine that
// hands messages to a mail relay and resets itself after a fixed delay.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"os"
	"strings"
)

var (
	ErrInvalid       = errors.New("contact: name, email and message are required")
	ErrBusy          = errors.New("contact: transmission already in progress")
	ErrNotConfigured = errors.New("contact: mail relay not configured")
)

// DefaultEndpoint is the EmailJS REST send endpoint.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Validate checks the fields the form marks as required.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Body) == "" {
		return ErrInvalid
	}
	if !strings.Contains(m.Email, "@") {
		return ErrInvalid
	}
	return m.headerSafe()
}

// headerSafe rejects line breaks in the fields that end up in mail headers.
func (m Message) headerSafe() error {
	for _, v := range []string{m.Name, m.Email, m.Subject} {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: line break in header field", ErrInvalid)
		}
	}
	return nil
}

// Mailer delivers one message.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// MailerFunc adapts a function to Mailer.
type MailerFunc func(ctx context.Context, m Message) error

func (f MailerFunc) Send(ctx context.Context, m Message) error { return f(ctx, m) }

// RelayError is a non-2xx answer from a relay.
type RelayError struct {
	Status int
	Body   string
}

func (e *RelayError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("contact: relay returned %d", e.Status)
	}
	return fmt.Sprintf("contact: relay returned %d: %s", e.Status, e.Body)
}

// EmailJS sends through the EmailJS REST API using the same three
// identifiers the browser SDK takes.
type EmailJS struct {
	PublicKey  string
	ServiceID  string
	TemplateID string
	Endpoint   string
	Client     *http.Client
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) Send(ctx context.Context, m Message) error {
	if e.PublicKey == "" || e.ServiceID == "" || e.TemplateID == "" {
		return ErrNotConfigured
	}
	payload, err := json.Marshal(emailJSRequest{
		ServiceID:  e.ServiceID,
		TemplateID: e.TemplateID,
		UserID:     e.PublicKey,
		TemplateParams: map[string]string{
			"from_name":  m.Name,
			"from_email": m.Email,
			"subject":    m.Subject,
			"message":    m.Body,
		},
	})
	if err != nil {
		return fmt.Errorf("contact: encode: %w", err)
	}

	endpoint := e.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("contact: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("contact: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &RelayError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}

// SMTP relays through a mail server with PLAIN auth.
type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// send defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// SMTPFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and TO_EMAIL.
func SMTPFromEnv() *SMTP {
	s := &SMTP{
		Host: os.Getenv("SMTP_HOST"),
		Port: os.Getenv("SMTP_PORT"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		To:   os.Getenv("TO_EMAIL"),
	}
	if s.Host == "" {
		s.Host = "smtp.gmail.com"
	}
	if s.Port == "" {
		s.Port = "587"
	}
	return s
}

func (s *SMTP) Send(ctx context.Context, m Message) error {
	if s.User == "" || s.Pass == "" || s.To == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.headerSafe(); err != nil {
		return err
	}

	subject := m.Subject
	if subject == "" {
		subject = "Portfolio Contact: " + m.Name
	}
	msg := []byte("To: " + s.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.User + "\r\n" +
		"Reply-To: " + m.Email + "\r\n" +
		"\r\n" +
		fmt.Sprintf("Name: %s\r\nEmail: %s\r\n\r\n%s\r\n", m.Name, m.Email, m.Body))

	send := s.send
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := send(s.Host+":"+s.Port, auth, s.User, []string{s.To}, msg); err != nil {
		return fmt.Errorf("contact: smtp: %w", err)
	}
	return nil
}
