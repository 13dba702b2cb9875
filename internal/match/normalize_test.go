package match

import (
	"slices"
	"testing"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"OrderID", "orderid"},
		{"order_id", "orderid"},
		{"order-id", "orderid"},
		{"orderId", "orderid"},
		{"ORDERID", "orderid"},

		// CamelCase variations
		{"goldCustomer", "goldcustomer"},
		{"GoldCustomer", "goldcustomer"},
		{"XMLParser", "xmlparser"},

		// Dotted property keys
		{"bean.name", "beanname"},
		{"foo.goldCustomer", "foogoldcustomer"},

		// Edge cases
		{"", ""},
		{"a", "a"},
		{"A", "a"},
		{"ID", "id"},

		// Mixed separators
		{"order_item-ID.x", "orderitemidx"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeIdent(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIdentWithSuffixStrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"CustomerID", "customer"},
		{"customerIds", "customer"},
		{"CreatedAt", "created"},
		{"CreatedUTC", "created"},
		{"CreatedTimestamp", "created"},

		// Should not strip if result would be empty
		{"ID", "id"},
		{"At", "at"},

		// No suffix to strip
		{"company", "company"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeIdentWithSuffixStrip(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeIdentWithSuffixStrip(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeAccessor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"GetName", "name"},
		{"SetGoldCustomer", "goldcustomer"},
		{"IsLittle", "little"},
		{"SetupSomething", "setupsomething"},
		{"Issue", "issue"},
		{"Set", "set"},
		{"name", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeAccessor(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeAccessor(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLastSegment(t *testing.T) {
	if got := LastSegment("bean.nested.name"); got != "name" {
		t.Errorf("LastSegment() = %q, want %q", got, "name")
	}
	if got := LastSegment("name"); got != "name" {
		t.Errorf("LastSegment() = %q, want %q", got, "name")
	}
}

func TestTokenizeCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"OrderID", []string{"Order", "ID"}},
		{"customerName", []string{"customer", "Name"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"order_id", []string{"order", "id"}},
		{"bean.goldCustomer", []string{"bean", "gold", "Customer"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"", nil},
		{"a", []string{"a"}},
		{"AbC", []string{"Ab", "C"}},
		{"ABcD", []string{"A", "Bc", "D"}},
		{"parseURL", []string{"parse", "URL"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := tokenizeCamelCase(tt.input)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("tokenizeCamelCase(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
