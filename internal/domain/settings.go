package domain

import "time"

// Settings is the single store-wide configuration document. The
// WhatsApp number is the destination for checkout handoff links; an
// empty value disables the handoff and checkout falls back to the
// email-only confirmation path.
type Settings struct {
	WhatsAppNumber string    `json:"whatsapp_number"`
	StoreName      string    `json:"store_name"`
	UpdatedAt      time.Time `json:"updated_at"`
}
