package media

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/gamestore/internal/catalog"
)

// PurchaseLink builds a WhatsApp deep link that opens a chat with phone and
// a pre-filled message.
func PurchaseLink(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// PackMessage is the purchase message for a pack.
func PackMessage(p catalog.Pack) string {
	return fmt.Sprintf("Hola! Me interesa el %s por $%s CLP.", packLabel(p), FormatCLP(p.Price))
}

// UnitMessage is the purchase message for a unit, quoting its effective price.
func UnitMessage(u catalog.Unit) string {
	return fmt.Sprintf("Hola! Me interesa el juego unitario \"%s\" por $%s CLP.", u.Title, FormatCLP(u.EffectivePrice()))
}

func packLabel(p catalog.Pack) string {
	if p.ID > 0 {
		return "Pack " + strconv.Itoa(p.ID)
	}
	if p.Title != "" {
		return p.Title
	}
	return catalog.DefaultPackTitle
}

// FormatCLP renders a peso amount with "." thousands separators (12.990).
func FormatCLP(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
