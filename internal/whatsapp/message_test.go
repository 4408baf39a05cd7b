package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BhautikKhunt0/resin-store/internal/domain"
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:              42,
		CustomerName:    "Asha Patel",
		CustomerEmail:   "asha@example.com",
		CustomerPhone:   "+91 98765 43210",
		ShippingAddress: "12 MG Road, Ahmedabad, Gujarat, 380001",
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Resin Coaster Set", Price: decimal.NewFromInt(500), Quantity: 2, SizeLabel: "250g"},
			{ProductID: 2, Name: "Keychain", Price: decimal.NewFromInt(150), Quantity: 1},
		},
		TotalAmount: decimal.NewFromInt(1200),
		Status:      domain.OrderStatusProcessing,
	}
}

func TestFormatOrderMessage(t *testing.T) {
	msg := FormatOrderMessage(sampleOrder(), decimal.NewFromInt(50), 0.5)

	assert.Contains(t, msg, "*NEW ORDER*")
	assert.Contains(t, msg, "Name: Asha Patel")
	assert.Contains(t, msg, "Email: asha@example.com")
	assert.Contains(t, msg, "- Resin Coaster Set (250g) x2 = 1000.00")
	assert.Contains(t, msg, "- Keychain x1 = 150.00") // no size, no parentheses
	assert.Contains(t, msg, "12 MG Road, Ahmedabad, Gujarat, 380001")
	assert.Contains(t, msg, "Subtotal: 1150.00")
	assert.Contains(t, msg, "Shipping: 50.00")
	assert.Contains(t, msg, "*Total: 1200.00*")
	assert.Contains(t, msg, "Total Weight: 0.50 kg")
}

func TestFormatOrderMessage_FreeShipping(t *testing.T) {
	msg := FormatOrderMessage(sampleOrder(), decimal.Zero, 2)
	assert.Contains(t, msg, "Shipping: FREE")
	assert.NotContains(t, msg, "Shipping: 0.00")
}

func TestBuildLink(t *testing.T) {
	link := BuildLink("+91 (98765) 43210", "hello order")
	require.NotEmpty(t, link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/919876543210", u.Path)
	assert.Equal(t, "hello order", u.Query().Get("text"))
}

func TestBuildLink_EncodesMessage(t *testing.T) {
	msg := FormatOrderMessage(sampleOrder(), decimal.NewFromInt(50), 0.5)
	link := BuildLink("919876543210", msg)

	// The raw message must not leak into the URL unencoded.
	assert.NotContains(t, link, "\n")
	assert.NotContains(t, link, " ")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, msg, u.Query().Get("text"))
}

func TestBuildLink_NoDestination(t *testing.T) {
	assert.Empty(t, BuildLink("", "msg"))
	assert.Empty(t, BuildLink("n/a", "msg"))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "919876543210", digitsOnly("+91-98765 43210"))
	assert.Equal(t, "", digitsOnly("abc"))
	assert.True(t, strings.IndexFunc(digitsOnly("1a2b3"), func(r rune) bool { return r < '0' || r > '9' }) == -1)
}
