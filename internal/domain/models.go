package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringList is a []string stored as a JSONB column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
}

// Contains reports whether the list holds s.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// Flyer represents one promotional PDF and its validity window.
// The valid flag mirrors what the scanner last computed; the three-way
// state (pending/valid/expired) is derived from the dates on each scan.
type Flyer struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	FileID    string     `db:"file_id" json:"file_id"`
	ShopName  string     `db:"shop_name" json:"shop_name"`
	PageKeys  StringList `db:"page_keys" json:"page_keys"`
	ValidFrom time.Time  `db:"valid_from" json:"valid_from"`
	ValidTo   time.Time  `db:"valid_to" json:"valid_to"`
	Valid     bool       `db:"valid" json:"valid"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// BoundingBox is the detector's box for a region, passed through untouched.
type BoundingBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RawDetection is one OCR'd region as emitted by the detection stage.
type RawDetection struct {
	ImageID     string      `json:"image_id"`
	ClassID     PriceClass  `json:"class_id"`
	ShopName    string      `json:"shop_name"`
	OCRText     string      `json:"ocr_text"`
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"`
}

// DetectionRecord is the finalized record for one detected item.
// Price fields are integer minor units (haléře); nil means unparseable.
type DetectionRecord struct {
	ImageID                   string    `db:"image_id" json:"image_id"`
	FlyerID                   uuid.UUID `db:"flyer_id" json:"flyer_id"`
	ShopName                  string    `db:"shop_name" json:"shop_name"`
	ItemName                  string    `db:"item_name" json:"item_name"`
	ProcessedItemName         string    `db:"processed_item_name" json:"processed_item_name"`
	ItemPrice                 string    `db:"item_price" json:"item_price"`
	ProcessedItemPrice        *int64    `db:"processed_item_price" json:"processed_item_price"`
	ItemMemberPrice           string    `db:"item_member_price" json:"item_member_price"`
	ProcessedItemMemberPrice  *int64    `db:"processed_item_member_price" json:"processed_item_member_price"`
	ItemInitialPrice          string    `db:"item_initial_price" json:"item_initial_price"`
	ProcessedItemInitialPrice *int64    `db:"processed_item_initial_price" json:"processed_item_initial_price"`
	WholeImageOCRText         string    `db:"whole_image_ocr_text" json:"whole_image_ocr_text"`
	Valid                     bool      `db:"valid" json:"valid"`
	CreatedAt                 time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                 time.Time `db:"updated_at" json:"updated_at"`
}

// UserPreference holds one subscriber's delivery preferences.
// UserID is the Telegram chat id.
type UserPreference struct {
	UserID         int64      `db:"user_id" json:"user_id"`
	IncludedShops  StringList `db:"included_shops" json:"included_shops"`
	ExcludedShops  StringList `db:"excluded_shops" json:"excluded_shops"`
	TrackedItems   StringList `db:"tracked_items" json:"tracked_items"`
	WantsPDFUpdate bool       `db:"wants_pdf_updates" json:"wants_pdf_updates"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// ValidityChange records one flyer whose valid flag flipped during a scan.
type ValidityChange struct {
	FlyerID  uuid.UUID     `json:"flyer_id"`
	FileID   string        `json:"file_id"`
	ShopName string        `json:"shop_name"`
	OldValid bool          `json:"old_valid"`
	NewValid bool          `json:"new_valid"`
	State    ValidityState `json:"state"`
}

// FlyerUpdate is one changed flyer inside a notification batch.
type FlyerUpdate struct {
	FlyerID   uuid.UUID     `json:"flyer_id"`
	FileID    string        `json:"file_id"`
	ShopName  string        `json:"shop_name"`
	State     ValidityState `json:"state"`
	ValidFrom time.Time     `json:"valid_from"`
	ValidTo   time.Time     `json:"valid_to"`
}

// TrackedItemUpdate is one tracked-item hit inside a notification batch.
type TrackedItemUpdate struct {
	ImageID  string `json:"image_id"`
	ItemName string `json:"item_name"`
	ShopName string `json:"shop_name"`
	Price    *int64 `json:"price"`
	Term     string `json:"term"`
}

// NotificationBatch aggregates everything one user should hear about in a
// single run. Ephemeral; never persisted.
type NotificationBatch struct {
	UserID       int64               `json:"user_id"`
	ShopUpdates  []FlyerUpdate       `json:"shop_updates"`
	TrackedItems []TrackedItemUpdate `json:"tracked_items"`
}
