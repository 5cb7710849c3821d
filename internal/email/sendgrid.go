package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers share notifications. A nil Sender disables them.
type Sender interface {
	SendDeckShared(to, deckTitle string) error
}

type sendgridSender struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendgridSender returns nil when apiKey is empty, which turns
// notifications off without callers having to care.
func NewSendgridSender(apiKey, fromAddress string) Sender {
	if apiKey == "" {
		return nil
	}
	return &sendgridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("deckshare", fromAddress),
	}
}

func (s *sendgridSender) SendDeckShared(to, deckTitle string) error {
	title := deckTitle
	if title == "" {
		title = "a presentation"
	}
	subject := fmt.Sprintf("%q was shared with you", title)
	plain := fmt.Sprintf("You have been given view access to %s. Log in to see it.", title)
	html := fmt.Sprintf("<p>You have been given view access to <strong>%s</strong>. Log in to see it.</p>", title)

	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), plain, html)
	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
