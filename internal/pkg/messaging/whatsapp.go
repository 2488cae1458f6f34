// internal/pkg/messaging/whatsapp.go
package messaging

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ohana-chilli/storefront/internal/domain/cart"
	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/domain/order"
)

const launchBaseURL = "https://wa.me/"

var pricePrinter = message.NewPrinter(language.MustParse("es-CO"))

// Customer is the checkout data echoed in the order message
type Customer struct {
	Name      string
	Phone     string
	OrderType order.OrderType
	Address   string
	Notes     string
}

// FormatPrice renders an amount the way the storefront shows it, e.g. "$ 1.234"
func FormatPrice(amount int64) string {
	return pricePrinter.Sprintf("$ %d", amount)
}

// BowlSummary lists a custom bowl as "<size>: <bases> + <proteins> + <acompanantes>"
func BowlSummary(bowl catalog.CustomBowl) string {
	return fmt.Sprintf("%s: %s + %s + %s",
		bowl.Size.Name, names(bowl.Bases), names(bowl.Proteins), names(bowl.Acompanantes))
}

// FormatOrderSummary builds the plain-text order message sent to the store
func FormatOrderSummary(customer Customer, c cart.Cart) string {
	lines := []string{
		"🛒 *Nueva Orden - Ohana & Chilli*",
		"",
		"👤 *Cliente:* " + customer.Name,
		"📞 *Teléfono:* " + customer.Phone,
		"📍 *Tipo:* " + customer.OrderType.Label(),
	}
	if customer.OrderType == order.OrderTypeDelivery && customer.Address != "" {
		lines = append(lines, "🏠 *Dirección:* "+customer.Address)
	}

	lines = append(lines, "", "*Productos:*")
	for _, item := range c.Items {
		glyph := brandGlyph(item.Brand)
		switch {
		case item.Kind == cart.KindProduct && item.Product != nil:
			lines = append(lines, fmt.Sprintf("%s %dx %s - %s", glyph, item.Quantity, item.Product.Name, FormatPrice(item.LineTotal)))
		case item.Kind == cart.KindCustomBowl && item.CustomBowl != nil:
			lines = append(lines,
				fmt.Sprintf("%s 1x %s - %s", glyph, cart.CustomBowlName, FormatPrice(item.LineTotal)),
				"   └ "+BowlSummary(*item.CustomBowl))
		}
		if item.Notes != "" {
			lines = append(lines, "   └ Nota: "+item.Notes)
		}
	}

	lines = append(lines, "", fmt.Sprintf("💰 *Total: %s*", FormatPrice(c.Total)))
	if customer.Notes != "" {
		lines = append(lines, "", "📝 *Notas:* "+customer.Notes)
	}

	return strings.Join(lines, "\n")
}

// LaunchURL returns the wa.me link that opens a chat with number prefilled
// with text
func LaunchURL(number, text string) string {
	return launchBaseURL + number + "?text=" + EncodeComponent(text)
}

// EncodeComponent percent-encodes s for a URL query value, spaces as %20
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func brandGlyph(brand catalog.Brand) string {
	if brand == catalog.BrandOhana {
		return "🥗"
	}
	return "🍔"
}

func names(items []catalog.Ingredient) string {
	out := make([]string, len(items))
	for i, ing := range items {
		out[i] = ing.Name
	}
	return strings.Join(out, ", ")
}
