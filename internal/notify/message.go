package notify

import (
	"fmt"
	"strings"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/price"
)

// RenderText renders a batch as the plain-text digest both delivery sinks
// send. One message per user per run, shops in sorted order.
func RenderText(batch domain.NotificationBatch) string {
	var b strings.Builder

	lastShop := ""
	for _, u := range batch.ShopUpdates {
		if u.ShopName != lastShop {
			if lastShop != "" {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s:\n", u.ShopName)
			lastShop = u.ShopName
		}
		switch u.State {
		case domain.ValidityValid:
			fmt.Fprintf(&b, "  new flyer valid %s - %s\n",
				u.ValidFrom.Format("02.01."), u.ValidTo.Format("02.01."))
		case domain.ValidityExpired:
			fmt.Fprintf(&b, "  flyer expired on %s\n", u.ValidTo.Format("02.01."))
		default:
			fmt.Fprintf(&b, "  flyer starts %s\n", u.ValidFrom.Format("02.01."))
		}
	}

	if len(batch.TrackedItems) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("Tracked items:\n")
		for _, t := range batch.TrackedItems {
			if t.Price != nil {
				fmt.Fprintf(&b, "  %s (%s) %s Kc\n", t.ItemName, t.ShopName, price.Format(*t.Price))
			} else {
				fmt.Fprintf(&b, "  %s (%s)\n", t.ItemName, t.ShopName)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
