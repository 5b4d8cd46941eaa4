package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/kirinyoku/tripslot/internal/domain"
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

const confirmationHTML = `<!doctype html>
<html>
<body style="font-family: sans-serif">
  <h2>Booking Confirmed</h2>
  <p>Hi {{.FullName}}, your booking for <strong>{{.ExperienceTitle}}</strong> is confirmed.</p>
  <table>
    <tr><td>Reference</td><td><strong>{{.RefID}}</strong></td></tr>
    <tr><td>Date</td><td>{{.Date}}</td></tr>
    <tr><td>Time</td><td>{{.Time}}</td></tr>
    <tr><td>Guests</td><td>{{.Quantity}}</td></tr>
    <tr><td>Subtotal</td><td>₹{{.Subtotal}}</td></tr>
    <tr><td>Taxes</td><td>₹{{.Taxes}}</td></tr>
    {{- if .PromoCode}}
    <tr><td>Discount ({{.PromoCode}})</td><td>-₹{{.DiscountAmount}}</td></tr>
    {{- end}}
    <tr><td>Total</td><td><strong>₹{{.Total}}</strong></td></tr>
  </table>
</body>
</html>`

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationHTML))

// Mailer sends the booking confirmation to the customer over SMTP.
type Mailer struct {
	from string
	send func(m ...*gomail.Message) error
}

func NewMailer(cfg MailConfig) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{from: cfg.From, send: d.DialAndSend}
}

func (m *Mailer) BookingConfirmed(_ context.Context, b domain.Booking) error {
	const op = "notify.Mailer.BookingConfirmed"

	msg, err := m.message(b)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	if err := m.send(msg); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func renderConfirmation(b domain.Booking) (string, error) {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, b); err != nil {
		return "", err
	}
	return body.String(), nil
}

func (m *Mailer) message(b domain.Booking) (*gomail.Message, error) {
	body, err := renderConfirmation(b)
	if err != nil {
		return nil, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", b.Email)
	msg.SetHeader("Subject", "Booking confirmed #"+b.RefID)
	msg.SetBody("text/html", body)

	return msg, nil
}
