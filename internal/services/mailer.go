package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wneessen/go-mail"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/store"
)

// SendOrderConfirmation emails an order summary after a successful
// checkout. Mailing is best effort: when SMTP is not configured it does
// nothing, and a delivery failure never affects the checkout result.
func SendOrderConfirmation(to string, result store.CheckoutResult) error {
	host := config.Get("SMTP_HOST", "")
	if host == "" {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(config.Get("SMTP_FROM", "noreply@storefront.local")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Order confirmation %s", result.OrderID))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(result))

	port, err := strconv.Atoi(config.Get("SMTP_PORT", "587"))
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(config.Get("SMTP_USERNAME", "")),
		mail.WithPassword(config.Get("SMTP_PASSWORD", "")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("sending order confirmation to", to)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(result store.CheckoutResult) string {
	var rows strings.Builder
	for _, item := range result.Items {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&rows, `
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%s</td>
				<td>%s</td>
			</tr>`, item.ProductName, item.Quantity, item.Price.StringFixed(2), subtotal.StringFixed(2))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2>Thank you for your order</h2>
		<p>Order <strong>%s</strong> has been completed.</p>
		<table width="100%%" cellpadding="6" style="border-collapse: collapse;">
			<tr><th align="left">Product</th><th align="left">Qty</th><th align="left">Unit price</th><th align="left">Subtotal</th></tr>
			%s
		</table>
		<p><strong>Total: %s</strong></p>
	</div>
</body>
</html>`, result.OrderID, rows.String(), result.Total.StringFixed(2))
}
