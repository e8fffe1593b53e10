package email

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"sync"
	texttemplate "text/template"

	"github.com/rs/zerolog/log"
)

// Sender sends a rendered email
type Sender interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// BookingData is rendered into booking templates
type BookingData struct {
	RecipientName string
	PropertyTitle string
	Window        string
	Total         string
	Note          string
	ActionURL     string
}

// Service renders booking emails and sends them from a background worker
type Service struct {
	sender       Sender
	templates    map[string]*htmltemplate.Template
	subjects     map[string]*texttemplate.Template
	baseTemplate *htmltemplate.Template
	queue        chan *QueuedEmail
	wg           sync.WaitGroup
}

// QueuedEmail represents an email in the send queue
type QueuedEmail struct {
	To           string
	ToName       string
	TemplateName string
	Data         BookingData
}

// NewService creates email service around sender. Templates are parsed once;
// a malformed template panics at startup.
func NewService(sender Sender) *Service {
	s := &Service{
		sender:       sender,
		templates:    make(map[string]*htmltemplate.Template, len(templates)),
		subjects:     make(map[string]*texttemplate.Template, len(subjects)),
		baseTemplate: htmltemplate.Must(htmltemplate.New("base").Parse(BaseTemplate)),
		queue:        make(chan *QueuedEmail, 100),
	}

	for name, content := range templates {
		s.templates[name] = htmltemplate.Must(htmltemplate.New(name).Parse(content))
	}
	for name, content := range subjects {
		s.subjects[name] = texttemplate.Must(texttemplate.New(name).Parse(content))
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

// worker processes queued emails asynchronously
func (s *Service) worker() {
	defer s.wg.Done()

	for email := range s.queue {
		if err := s.send(context.Background(), email); err != nil {
			log.Error().Err(err).
				Str("to", email.To).
				Str("template", email.TemplateName).
				Msg("Failed to send email")
		}
	}
}

// Render returns the subject and HTML body of a templated email
func (s *Service) Render(templateName string, data BookingData) (string, string, error) {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return "", "", fmt.Errorf("template %s not found", templateName)
	}

	var subject bytes.Buffer
	if err := s.subjects[templateName].Execute(&subject, data); err != nil {
		return "", "", err
	}

	var content bytes.Buffer
	if err := tmpl.Execute(&content, data); err != nil {
		return "", "", err
	}

	var html bytes.Buffer
	if err := s.baseTemplate.Execute(&html, map[string]interface{}{
		"Content": htmltemplate.HTML(content.String()),
	}); err != nil {
		return "", "", err
	}

	return subject.String(), html.String(), nil
}

func (s *Service) send(ctx context.Context, email *QueuedEmail) error {
	subject, html, err := s.Render(email.TemplateName, email.Data)
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, &EmailMessage{
		To:          email.To,
		ToName:      email.ToName,
		Subject:     subject,
		HTMLContent: html,
	})
}

// Queue adds an email to the async send queue
func (s *Service) Queue(to, toName, templateName string, data BookingData) {
	select {
	case s.queue <- &QueuedEmail{To: to, ToName: toName, TemplateName: templateName, Data: data}:
	default:
		log.Warn().Str("to", to).Msg("Email queue full, dropping email")
	}
}

// SendSync sends an email synchronously (blocking)
func (s *Service) SendSync(ctx context.Context, to, toName, templateName string, data BookingData) error {
	return s.send(ctx, &QueuedEmail{To: to, ToName: toName, TemplateName: templateName, Data: data})
}

// Close drains the queue and stops the worker
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}
