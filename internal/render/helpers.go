package render

import (
	"strconv"
	"strings"

	"souqeats/internal/domain"
)

// Price formats a minor-unit amount with thousands separators and the
// currency label, e.g. 12500 -> "12,500 MRU".
func Price(amount int) string {
	digits := strconv.Itoa(amount)
	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	out := b.String()
	if negative {
		out = "-" + out
	}
	return out + " MRU"
}

// Stars renders floor(rating) full stars plus one half-star glyph when the
// fractional part is non-zero. 4.9 renders four full and one half, never five.
func Stars(rating float64) string {
	full := int(rating)
	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteRune('★')
	}
	if rating != float64(full) {
		b.WriteRune('☆')
	}
	return b.String()
}

func categoryName(c domain.Category) string {
	switch c {
	case domain.CategoryAll:
		return "All"
	case domain.CategoryTraditional:
		return "Traditional"
	case domain.CategoryFastFood:
		return "Fast food"
	case domain.CategoryDesserts:
		return "Desserts"
	case domain.CategoryBeverages:
		return "Beverages"
	default:
		return string(c)
	}
}

func statusText(s domain.OrderStatus) string {
	switch s {
	case domain.StatusPaid:
		return "Paid"
	case domain.StatusPreparing:
		return "Preparing"
	case domain.StatusReady:
		return "Ready"
	case domain.StatusDelivered:
		return "Delivered"
	default:
		return "Unknown"
	}
}

func statusIcon(s domain.OrderStatus) string {
	switch s {
	case domain.StatusPaid:
		return "💳"
	case domain.StatusPreparing:
		return "⏱️"
	case domain.StatusReady:
		return "✅"
	case domain.StatusDelivered:
		return "🚚"
	default:
		return "❔"
	}
}

// restaurantImage falls back to the logo glyph when no image was uploaded.
func restaurantImage(r domain.Restaurant) string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return ""
}

func restaurantGlyph(r domain.Restaurant) string {
	if r.Logo != "" {
		return r.Logo
	}
	return "🍽️"
}
