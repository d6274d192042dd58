package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrDiscountIsNotConstructed is returned when a Discount instance was not
// created through NewDiscount or RestoreDiscount.
var ErrDiscountIsNotConstructed = errors.New("Discount must be created via NewDiscount constructor")

// DiscountCategory classifies what part of the order a discount applied to.
type DiscountCategory string

// Discount categories.
const (
	DiscountCategoryBasket   DiscountCategory = "Basket"
	DiscountCategoryShipping DiscountCategory = "Shipping"
	DiscountCategoryDeferred DiscountCategory = "Deferred"
)

func (c DiscountCategory) validate() error {
	switch c {
	case DiscountCategoryBasket, DiscountCategoryShipping, DiscountCategoryDeferred:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"category", fmt.Errorf("%q is not a discount category", string(c)))
	}
}

// Discount records one benefit application against an order. The offer and
// voucher references are soft: their names are denormalized onto the record
// so the discount remains explainable after the campaign is deleted.
type Discount struct {
	id          kernel.UUID
	category    DiscountCategory
	amount      kernel.Money
	frequency   int
	message     string
	offerID     *kernel.UUID
	offerName   string
	voucherID   *kernel.UUID
	voucherCode string

	isConstructed bool
}

// NewDiscount creates a discount record. The amount must not be negative.
func NewDiscount(id kernel.UUID, category DiscountCategory, amount kernel.Money, frequency int, message string) (*Discount, error) {
	d := &Discount{isConstructed: true}

	if err := errors.Join(
		d.setID(id),
		d.setCategory(category),
		d.setAmount(amount),
	); err != nil {
		return nil, err
	}

	d.frequency = frequency
	d.message = message
	return d, nil
}

// RestoreDiscountParams carries the persisted state of a discount record.
type RestoreDiscountParams struct {
	ID          kernel.UUID
	Category    DiscountCategory
	Amount      kernel.Money
	Frequency   int
	Message     string
	OfferID     *kernel.UUID
	OfferName   string
	VoucherID   *kernel.UUID
	VoucherCode string
}

// RestoreDiscount rehydrates a persisted discount record.
func RestoreDiscount(params RestoreDiscountParams) (*Discount, error) {
	d, err := NewDiscount(params.ID, params.Category, params.Amount, params.Frequency, params.Message)
	if err != nil {
		return nil, err
	}

	d.offerID = params.OfferID
	d.offerName = params.OfferName
	d.voucherID = params.VoucherID
	d.voucherCode = params.VoucherCode
	return d, nil
}

// Validate ensures the Discount was properly constructed.
func (d *Discount) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDiscountIsNotConstructed
	}
	return nil
}

// ID returns the discount identifier.
func (d *Discount) ID() kernel.UUID {
	return d.id
}

// Category returns what part of the order the discount applied to.
func (d *Discount) Category() DiscountCategory {
	return d.category
}

// Amount returns the discounted amount.
func (d *Discount) Amount() kernel.Money {
	return d.amount
}

// Frequency returns how many times the benefit was applied.
func (d *Discount) Frequency() int {
	return d.frequency
}

// Message returns the free-form explanation of the discount.
func (d *Discount) Message() string {
	return d.message
}

// OfferID returns the referenced offer, if it still exists.
func (d *Discount) OfferID() *kernel.UUID {
	return d.offerID
}

// OfferName returns the offer name snapshotted when the discount was recorded.
func (d *Discount) OfferName() string {
	return d.offerName
}

// VoucherID returns the referenced voucher, if it still exists.
func (d *Discount) VoucherID() *kernel.UUID {
	return d.voucherID
}

// VoucherCode returns the voucher code snapshotted when the discount was
// recorded.
func (d *Discount) VoucherCode() string {
	return d.voucherCode
}

// AttachOffer links the discount to the offer that produced it and snapshots
// the offer name. An already snapshotted name is kept.
func (d *Discount) AttachOffer(offerID kernel.UUID, offerName string) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	d.offerID = &offerID
	if d.offerName == "" {
		d.offerName = offerName
	}
	return nil
}

// AttachVoucher links the discount to the voucher that produced it and
// snapshots the voucher code. An already snapshotted code is kept.
func (d *Discount) AttachVoucher(voucherID kernel.UUID, voucherCode string) error {
	if err := voucherID.Validate(); err != nil {
		return err
	}

	d.voucherID = &voucherID
	if d.voucherCode == "" {
		d.voucherCode = voucherCode
	}
	return nil
}

// Description returns the voucher code when one is set, otherwise the offer
// name.
func (d *Discount) Description() string {
	if d.voucherCode != "" {
		return d.voucherCode
	}
	return d.offerName
}

func (d *Discount) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Discount) setCategory(category DiscountCategory) error {
	if err := category.validate(); err != nil {
		return err
	}
	d.category = category
	return nil
}

func (d *Discount) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("discount amount %s is negative", amount))
	}
	d.amount = amount
	return nil
}
