package services

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"flashmart/internal/models"
)

// EmailService sends transactional mail. When SMTP credentials are not
// configured it runs disabled and only logs what it would have sent.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService creates an EmailService; empty user/pass disables sending.
func NewEmailService(host string, port int, user, pass string) *EmailService {
	if user == "" || pass == "" {
		log.Println("SMTP credentials not set, email sending disabled")
		return &EmailService{from: "noreply@flashmart.local"}
	}
	return &EmailService{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

// SendOrderConfirmation mails the customer a summary of the order they
// just placed.
func (es *EmailService) SendOrderConfirmation(to string, order *models.Order) error {
	if es.dialer == nil {
		log.Printf("Email disabled, skipping confirmation for order %s", order.OrderNumber)
		return nil
	}

	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "<li>%s — %d × %s = %s</li>",
			item.ProductName, item.Quantity, item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2))
	}

	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Order number: <strong>%s</strong></p>
		<ul>%s</ul>
		<p>Total: <strong>%s</strong></p>
		<p>We will contact you at %s to arrange delivery to:</p>
		<p>%s</p>`,
		order.OrderNumber, items.String(), order.TotalAmount.StringFixed(2), order.Phone, order.Address)

	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Order confirmation %s", order.OrderNumber))
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	return nil
}
