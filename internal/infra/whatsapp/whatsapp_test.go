package whatsapp

import (
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"a b", "a%20b"},
		{"line1\nline2", "line1%0Aline2"},
		{"₹30", "%E2%82%B930"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"a+b=c&d", "a%2Bb%3Dc%26d"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Encode(tt.in); got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLicenseRequest(t *testing.T) {
	link := LicenseRequest("", "MDT-ABC123XYZ")

	if !strings.HasPrefix(link, "https://wa.me/"+DefaultAdminNumber+"?text=") {
		t.Errorf("link = %q, want admin wa.me prefix", link)
	}
	if !strings.Contains(link, "MDT-ABC123XYZ") {
		t.Errorf("link = %q, should carry the device id", link)
	}
	if strings.Contains(link, "+") {
		t.Errorf("link = %q, must not contain +", link)
	}
}

func TestBillDelivery_PrependsCountryCode(t *testing.T) {
	link := BillDelivery("9876543210", "Milk Bill Details")

	if !strings.HasPrefix(link, "https://wa.me/919876543210?text=") {
		t.Errorf("link = %q, want 91-prefixed number", link)
	}
}
