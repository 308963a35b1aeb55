package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"MediBook/models"

	"gopkg.in/gomail.v2"
)

// smtpDialer builds a dialer from the SMTP_* environment variables.
func smtpDialer() (*gomail.Dialer, string, error) {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		return nil, "", fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	if host == "" || user == "" {
		return nil, "", fmt.Errorf("missing SMTP_HOST or SMTP_USER environment variable")
	}
	return gomail.NewDialer(host, port, user, pass), user, nil
}

func sendMail(to, subject, plainBody, htmlBody string) error {
	dialer, from, err := smtpDialer()
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := dialer.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}
	return nil
}

// SendResetCodeEmail emails a password reset code.
func SendResetCodeEmail(email, code string) error {
	plain := "Your password reset code is: " + code
	html := `<p>Your password reset code is:</p><p style="font-weight:bold">` + code + `</p>
<p>The code expires in 15 minutes. If you did not request a reset, ignore this email.</p>`
	return sendMail(email, "Password Reset Code", plain, html)
}

// Mailer sends appointment notifications over SMTP.
type Mailer struct{}

func NewMailer() *Mailer {
	return &Mailer{}
}

// AppointmentBooked confirms a new booking to the patient.
func (m *Mailer) AppointmentBooked(email string, appointment *models.Appointment) error {
	plain := fmt.Sprintf(
		"Your appointment on %s at %s has been booked and is awaiting the doctor's confirmation.",
		appointment.AppointmentDate, appointment.StartTime,
	)
	return sendMail(email, "Appointment Booked", plain, "")
}

// AppointmentStatusChanged tells the patient about a status transition.
func (m *Mailer) AppointmentStatusChanged(email string, appointment *models.Appointment) error {
	plain := fmt.Sprintf(
		"Your appointment on %s at %s is now %s.",
		appointment.AppointmentDate, appointment.StartTime, appointment.Status,
	)
	return sendMail(email, "Appointment Update", plain, "")
}
