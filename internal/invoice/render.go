// Package invoice renders priced carts as fixed-width text tables.
package invoice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/toko-till/internal/pricing"
)

const (
	nameWidth  = 40
	qtyWidth   = 6
	leftWidth  = nameWidth + qtyWidth
	priceWidth = 8
)

var separator = "+" + strings.Repeat("-", leftWidth+2) + "+" + strings.Repeat("-", priceWidth+2) + "+\n"

// Line is one product row with an optional promotion row beneath it.
type Line struct {
	Name          string        `json:"name"`
	Quantity      int           `json:"quantity"`
	Price         pricing.Money `json:"price"`
	Discount      pricing.Money `json:"discount"`
	DiscountLabel string        `json:"discount_label,omitempty"`
}

// CouponLine is the row for an applied coupon.
type CouponLine struct {
	Code        string        `json:"code"`
	Description string        `json:"description"`
	Discount    pricing.Money `json:"discount"`
}

// Document holds everything needed to print an invoice.
type Document struct {
	Lines  []Line        `json:"lines"`
	Coupon *CouponLine   `json:"coupon,omitempty"`
	Total  pricing.Money `json:"total"`
}

// Render prints the document. Discount rows are only emitted for lines with a
// non-zero discount; the coupon row is emitted whenever a coupon is attached.
func Render(doc Document) string {
	var b strings.Builder
	b.WriteString(separator)
	row(&b, fmt.Sprintf("%-*s%*s", nameWidth, "Name", qtyWidth, "qty"), "price")
	b.WriteString(separator)
	for _, line := range doc.Lines {
		row(&b, fmt.Sprintf("%-*s%*s", nameWidth, line.Name, qtyWidth, strconv.Itoa(line.Quantity)), line.Price.String())
		if !line.Discount.IsZero() {
			row(&b, "  ("+line.DiscountLabel+")", negative(line.Discount))
		}
	}
	if doc.Coupon != nil {
		row(&b, fmt.Sprintf("Coupon %s - %s", doc.Coupon.Code, doc.Coupon.Description), negative(doc.Coupon.Discount))
	}
	b.WriteString(separator)
	row(&b, "TOTAL", doc.Total.String())
	b.WriteString(separator)
	return b.String()
}

func row(b *strings.Builder, left, right string) {
	fmt.Fprintf(b, "| %-*s | %*s |\n", leftWidth, left, priceWidth, right)
}

func negative(m pricing.Money) string {
	return "-" + m.String()
}
