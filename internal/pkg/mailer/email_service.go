package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendItinerary(toEmail, query string, sections map[string]string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendItinerary mails the ranked plan summaries, one section per agent
// domain. Sections with empty bodies are skipped.
func (s *emailService) SendItinerary(toEmail, query string, sections map[string]string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Travel Itinerary")

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`)
	b.WriteString("<h2>Your Travel Plan</h2>")
	b.WriteString(fmt.Sprintf("<p><i>%s</i></p>", query))
	for title, body := range sections {
		if body == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("<h3>%s</h3>", title))
		b.WriteString(fmt.Sprintf(`<p style="white-space: pre-line;">%s</p>`, body))
	}
	b.WriteString("</div>")

	m.SetBody("text/html", b.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send itinerary to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Itinerary sent to %s\n", toEmail)
	return nil
}
