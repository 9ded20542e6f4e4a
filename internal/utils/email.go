package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"blinkeyit_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendEmail envoie un e-mail HTML via SMTP, avec pièce jointe PNG optionnelle
// (le QR de suivi de commande).
func SendEmail(to, subject, htmlBody string, pngAttachment []byte) error {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@blinkeyit.co.in"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pngAttachment != nil {
		msg.AttachReader("order_qr.png", bytes.NewReader(pngAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le corps HTML de l'e-mail de
// confirmation de commande.
func GenerateOrderConfirmationHTML(order models.Order, userName string) string {
	itemsHTML := ""
	for _, item := range order.ListItems {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	if userName == "" {
		userName = "there"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Order confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #16a34a;">Your order is confirmed</h2>
		<p>Hi %s,</p>
		<p>Thanks for shopping with Blinkey It. Your order <strong>%s</strong> has been confirmed.</p>

		<h3>Order details</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">₹%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="color: #555;">Scan the attached QR code to track your order.</p>
		<p style="margin-top: 30px; color: #555;">
			Best regards,<br>
			<strong>The Blinkey It team</strong>
		</p>
	</div>
</body>
</html>`, userName, order.OrderID, itemsHTML, order.TotalAmt)
}
