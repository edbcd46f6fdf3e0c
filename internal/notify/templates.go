package notify

import (
	"bytes"
	"embed"
	"html/template"

	"tours/internal/domain/models"
	"tours/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"rupee": utils.FormatRupee,
	"date":  utils.FormatDate,
}).ParseFS(templateFS, "templates/*.html"))

// ContactForm is the public "contact us" submission.
type ContactForm struct {
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"max=50"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	Subject   string `json:"subject" binding:"required,max=150"`
	Message   string `json:"message" binding:"required,max=2000"`
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func ContactMessage(form ContactForm) (Message, error) {
	body, err := render("contact.html", form)
	if err != nil {
		return Message{}, err
	}
	return Message{To: form.Email, Subject: form.Subject, HTML: body}, nil
}

func BookingCreatedMessage(b models.Booking) (Message, error) {
	body, err := render("booking_created.html", b)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      b.CustomerEmail(),
		Subject: "Booking " + b.BookingNumber + " received",
		HTML:    body,
	}, nil
}

func StatusChangedMessage(b models.Booking) (Message, error) {
	body, err := render("booking_status.html", b)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      b.CustomerEmail(),
		Subject: "Booking " + b.BookingNumber + " is now " + b.Status.String(),
		HTML:    body,
	}, nil
}
