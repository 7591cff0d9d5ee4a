// Package mailer delivers notification email over SMTP. Delivery failures
// never abort the business operation that triggered them: every send reports
// a boolean that handlers surface as an email_sent flag.
package mailer

import (
	"fmt"
	"log"
	"strconv"

	"restaurant-api/config"
	"restaurant-api/models"

	"gopkg.in/gomail.v2"
)

// Sender is the notification collaborator injected into the handlers
type Sender interface {
	SendVerification(toEmail, verificationURL string) bool
	SendReservation(res *models.Reservation) bool
}

type Mailer struct {
	host     string
	port     int
	username string
	password string
}

var _ Sender = (*Mailer)(nil)

func New(cfg *config.Config) *Mailer {
	port, err := strconv.Atoi(cfg.MailPort)
	if err != nil {
		port = 587
	}
	return &Mailer{
		host:     cfg.MailServer,
		port:     port,
		username: cfg.MailUsername,
		password: cfg.MailPassword,
	}
}

func (m *Mailer) send(to, subject, htmlBody string) bool {
	if m.host == "" || m.username == "" || m.password == "" {
		log.Println("mailer not configured, skipping send to", to)
		return false
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.username)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		log.Printf("failed to send email to %s: %v", to, err)
		return false
	}
	return true
}

// SendVerification mails the account-activation link to a new user
func (m *Mailer) SendVerification(toEmail, verificationURL string) bool {
	body := fmt.Sprintf(
		`<p>Welcome! Please verify your email address to activate your account.</p>
<p><a href="%s">Verify my email</a></p>
<p>The link expires in 24 hours.</p>`,
		verificationURL,
	)
	return m.send(toEmail, "Verify your email address", body)
}

// SendReservation notifies the guest and the restaurant inbox about a new
// reservation request. Both sends must succeed for a true result.
func (m *Mailer) SendReservation(res *models.Reservation) bool {
	guestBody := fmt.Sprintf(
		`<p>Hi %s, we received your reservation request.</p>
<p>Guests: %d<br>Date: %s<br>Phone: %s</p>
<p>%s</p>
<p>We will confirm it shortly.</p>`,
		res.GuestName, res.Quantity,
		res.StartDateTime.Format("2006-01-02 15:04"),
		res.GuestPhone, res.AdditionalDetails,
	)
	adminBody := fmt.Sprintf(
		`<p>New reservation request from %s (%s, %s).</p>
<p>Guests: %d<br>Date: %s</p>
<p>%s</p>`,
		res.GuestName, res.Email, res.GuestPhone,
		res.Quantity, res.StartDateTime.Format("2006-01-02 15:04"),
		res.AdditionalDetails,
	)

	guestOK := m.send(res.Email, "Your reservation request has been received!", guestBody)
	adminOK := m.send(m.username, "New Reservation Request from "+res.GuestName, adminBody)
	return guestOK && adminOK
}
