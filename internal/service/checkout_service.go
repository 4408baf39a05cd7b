package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/BhautikKhunt0/resin-store/internal/domain"
	"github.com/BhautikKhunt0/resin-store/internal/pricing"
	"github.com/BhautikKhunt0/resin-store/internal/repository"
	"github.com/BhautikKhunt0/resin-store/internal/validate"
	"github.com/BhautikKhunt0/resin-store/internal/whatsapp"
)

// CartStore is what checkout needs from the cart: read it and clear it
// after a confirmed order.
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

type Quote struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	Total         decimal.Decimal `json:"total"`
	TotalWeightKg float64         `json:"total_weight_kg"`
}

type CustomerFields struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postal_code"`
}

type SubmitResult struct {
	Order *domain.Order `json:"order"`
	// HandoffURL is empty when no destination number is configured;
	// the caller shows the email-only confirmation instead.
	HandoffURL string `json:"handoff_url,omitempty"`
}

type CheckoutService struct {
	carts    CartStore
	orders   repository.OrderRepository
	settings repository.SettingsRepository
	sfg      singleflight.Group // coalesces duplicate submits per user
}

func NewCheckoutService(carts CartStore, orders repository.OrderRepository, settings repository.SettingsRepository) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		settings: settings,
	}
}

// ComputeQuote prices a cart for a destination region. Pure: identical
// inputs always yield an identical quote, so it may be recomputed on
// every input change.
func ComputeQuote(items []domain.CartItem, region string) Quote {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	weight := pricing.TotalWeight(items)
	fee := pricing.ComputeShipping(subtotal, weight, region)

	return Quote{
		Subtotal:      subtotal,
		ShippingFee:   fee,
		Total:         subtotal.Add(fee),
		TotalWeightKg: weight,
	}
}

func (s *CheckoutService) Quote(ctx context.Context, userID, region string) (*Quote, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote := ComputeQuote(cart.Items, region)
	return &quote, nil
}

// Submit runs the full checkout pipeline: validate, price, persist,
// then clear the cart and build the handoff link. The cart is touched
// only after the order store confirms creation, so a failed submission
// can be retried with the cart intact. Concurrent duplicate submits
// for one user coalesce into a single order.
func (s *CheckoutService) Submit(ctx context.Context, userID string, fields CustomerFields) (*SubmitResult, error) {
	if err := validateCustomerFields(fields); err != nil {
		return nil, err
	}

	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		return s.submit(ctx, userID, fields)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SubmitResult), nil
}

func (s *CheckoutService) submit(ctx context.Context, userID string, fields CustomerFields) (*SubmitResult, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	quote := ComputeQuote(cart.Items, fields.Region)
	draft := composeOrder(cart, fields, quote)

	stored, errCreate := s.orders.CreateOrder(ctx, draft)
	if errCreate != nil {
		// Cart state is untouched so the user can retry.
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, errCreate)
	}

	// Side effects run only after the store confirmed the order.
	if errClear := s.carts.ClearCart(ctx, userID); errClear != nil {
		log.Printf("failed to clear cart after order %d: %v", stored.ID, errClear)
	}

	return &SubmitResult{
		Order:      stored,
		HandoffURL: s.buildHandoffURL(ctx, stored, quote),
	}, nil
}

func (s *CheckoutService) buildHandoffURL(ctx context.Context, order *domain.Order, quote Quote) string {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNoSettings) {
			log.Printf("failed to load settings for handoff: %v", err)
		}
		return "" // recovered: email-only confirmation path
	}

	message := whatsapp.FormatOrderMessage(order, quote.ShippingFee, quote.TotalWeightKg)
	return whatsapp.BuildLink(settings.WhatsAppNumber, message)
}

// composeOrder builds the order draft: an immutable snapshot of the
// cart lines, the joined address block, and the final charge.
func composeOrder(cart *domain.Cart, fields CustomerFields, quote Quote) *domain.Order {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			SizeLabel: line.SizeLabel,
		})
	}

	return &domain.Order{
		CustomerName:    fields.Name,
		CustomerEmail:   fields.Email,
		CustomerPhone:   fields.Phone,
		ShippingAddress: joinAddress(fields),
		Items:           items,
		TotalAmount:     quote.Total,
		Status:          domain.OrderStatusProcessing,
	}
}

// joinAddress concatenates the structured fields in fixed order:
// address line, city, region, postal code.
func joinAddress(fields CustomerFields) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{fields.AddressLine, fields.City, fields.Region, fields.PostalCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

func validateCustomerFields(fields CustomerFields) error {
	problems := map[string]string{}

	if err := validate.String("name", fields.Name, 2, 100); err != nil {
		problems["name"] = err.Error()
	}
	if err := validate.Email(fields.Email); err != nil {
		problems["email"] = err.Error()
	}
	if err := validate.Phone(fields.Phone); err != nil {
		problems["phone"] = err.Error()
	}
	if err := validate.String("address_line", fields.AddressLine, 5, 200); err != nil {
		problems["address_line"] = err.Error()
	}
	if err := validate.String("city", fields.City, 2, 100); err != nil {
		problems["city"] = err.Error()
	}
	if err := validate.PostalCode(fields.PostalCode); err != nil {
		problems["postal_code"] = err.Error()
	}

	if len(problems) > 0 {
		return &ValidationError{Fields: problems}
	}
	return nil
}
