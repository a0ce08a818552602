package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

// ReceiptSender delivers order receipts; pkg/sendgrid satisfies it.
type ReceiptSender interface {
	Send(ctx context.Context, msg *models.EmailMessage) error
}

func NewReceipt(user *models.AuthUser, view *OrderView) *models.EmailMessage {
	var text, markup strings.Builder

	fmt.Fprintf(&text, "Hi %s,\n\nThanks for your order #%s.\n\n", user.Username, view.ID)
	fmt.Fprintf(&markup, "<p>Hi %s,</p><p>Thanks for your order #%s.</p><ul>", html.EscapeString(user.Username), html.EscapeString(view.ID.String()))

	for _, item := range view.Items {
		fmt.Fprintf(&text, "  %d x %s  $%s\n", item.Quantity, item.ProductName, item.LineTotal().StringFixed(2))
		fmt.Fprintf(&markup, "<li>%d &times; %s: $%s</li>", item.Quantity, html.EscapeString(item.ProductName), item.LineTotal().StringFixed(2))
	}

	fmt.Fprintf(&text, "\nSubtotal: $%s\nTax: $%s\nTotal: $%s\n",
		view.Summary.Subtotal.StringFixed(2), view.Summary.Tax.StringFixed(2), view.Summary.Total.StringFixed(2))
	fmt.Fprintf(&markup, "</ul><p>Subtotal: $%s<br>Tax: $%s<br><strong>Total: $%s</strong></p>",
		view.Summary.Subtotal.StringFixed(2), view.Summary.Tax.StringFixed(2), view.Summary.Total.StringFixed(2))

	return &models.EmailMessage{
		To:          user.Email,
		Subject:     fmt.Sprintf("Your order #%s", view.ID),
		Content:     text.String(),
		HTMLContent: markup.String(),
	}
}
