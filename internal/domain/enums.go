package domain

// PriceClass is the detector class label for an OCR region.
type PriceClass string

const (
	ClassItemName         PriceClass = "item_name"
	ClassItemPrice        PriceClass = "item_price"
	ClassItemMemberPrice  PriceClass = "item_member_price"
	ClassItemInitialPrice PriceClass = "item_initial_price"
	ClassWholeImage       PriceClass = "whole_image"
)

// IsPrice reports whether the class carries a price region.
func (c PriceClass) IsPrice() bool {
	switch c {
	case ClassItemPrice, ClassItemMemberPrice, ClassItemInitialPrice:
		return true
	}
	return false
}

// ValidityState is the derived lifecycle state of a flyer.
type ValidityState string

const (
	ValidityPending ValidityState = "pending"
	ValidityValid   ValidityState = "valid"
	ValidityExpired ValidityState = "expired"
)
