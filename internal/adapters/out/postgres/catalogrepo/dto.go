// Package catalogrepo resolves offer names and voucher codes for discount
// snapshots. Offers and vouchers belong to the promotions system; this
// adapter only reads the columns needed to denormalize their names onto
// discount records.
package catalogrepo

import (
	"github.com/google/uuid"
)

// OfferDTO is the slice of the offers table this adapter reads.
type OfferDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// TableName overrides GORM's default naming convention.
func (OfferDTO) TableName() string {
	return "offers"
}

// VoucherDTO is the slice of the vouchers table this adapter reads.
type VoucherDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string
}

// TableName overrides GORM's default naming convention.
func (VoucherDTO) TableName() string {
	return "vouchers"
}
