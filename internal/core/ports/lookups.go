package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
)

// OfferLookup resolves offer names for discount snapshots. A missing offer is
// not an error: the name stays empty and the discount keeps whatever was
// snapshotted before.
type OfferLookup interface {
	// OfferName returns the current name of an offer, or ok=false when the
	// offer does not exist.
	OfferName(ctx context.Context, offerID kernel.UUID) (name string, ok bool, err error)
}

// VoucherLookup resolves voucher codes for discount snapshots, with the same
// missing-record semantics as OfferLookup.
type VoucherLookup interface {
	// VoucherCode returns the code of a voucher, or ok=false when the voucher
	// does not exist.
	VoucherCode(ctx context.Context, voucherID kernel.UUID) (code string, ok bool, err error)
}
