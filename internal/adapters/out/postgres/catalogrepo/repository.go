package catalogrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCatalogLookup implements OfferLookup and VoucherLookup using GORM. A
// missing record is reported via ok=false, not an error: campaigns are
// deleted routinely and the discount keeps its snapshotted name.
type GormCatalogLookup struct {
	db *gorm.DB
}

// NewGormCatalogLookup creates a catalog lookup adapter.
func NewGormCatalogLookup(db *gorm.DB) *GormCatalogLookup {
	return &GormCatalogLookup{db: db}
}

// OfferName returns the current name of an offer, or ok=false when the offer
// does not exist.
func (r *GormCatalogLookup) OfferName(ctx context.Context, offerID kernel.UUID) (string, bool, error) {
	if err := offerID.Validate(); err != nil {
		return "", false, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", offerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return dto.Name, true, nil
}

// VoucherCode returns the code of a voucher, or ok=false when the voucher
// does not exist.
func (r *GormCatalogLookup) VoucherCode(ctx context.Context, voucherID kernel.UUID) (string, bool, error) {
	if err := voucherID.Validate(); err != nil {
		return "", false, err
	}

	var dto VoucherDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", voucherID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return dto.Code, true, nil
}
