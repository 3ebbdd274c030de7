// Package whatsapp builds wa.me deep links. Opening the link is left to
// the user's browser or phone; the app never waits for a response.
package whatsapp

import "strings"

// DefaultAdminNumber receives license key requests.
const DefaultAdminNumber = "917200893968"

// CountryPrefix is prepended to the configured milkman number.
const CountryPrefix = "91"

// Link returns a wa.me deep link carrying text to the given full number.
func Link(number, text string) string {
	return "https://wa.me/" + number + "?text=" + Encode(text)
}

// LicenseRequest builds the admin link asking for a license key.
func LicenseRequest(adminNumber, deviceID string) string {
	if adminNumber == "" {
		adminNumber = DefaultAdminNumber
	}
	text := "Hello,\nI need a Milk Diary license.\n\nDevice ID: " + deviceID
	return Link(adminNumber, text)
}

// BillDelivery builds the milkman link carrying the full bill text.
// The milkman number is stored without the country prefix.
func BillDelivery(milkman, billText string) string {
	return Link(CountryPrefix+milkman, billText)
}

// Encode percent-encodes text the way encodeURIComponent does: spaces
// become %20 (not +), and -_.!~*'() stay literal. wa.me rejects +.
func Encode(s string) string {
	const upperhex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '_' || c == '.' || c == '!' || c == '~' ||
			c == '*' || c == '\'' || c == '(' || c == ')':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		}
	}
	return b.String()
}
