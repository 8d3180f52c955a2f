// Package catalog defines the shared item vocabulary: categories, QC review
// states, seller platforms, and the size rules that go with each category.
package catalog

// Category enumerates what kind of goods an item is.
type Category string

const (
	CategoryShoes              Category = "shoes"
	CategoryClothes            Category = "clothes"
	CategoryWatchesAccessories Category = "watches_accessories"
)

// IsValid reports whether the category is known.
func (c Category) IsValid() bool {
	switch c {
	case CategoryShoes, CategoryClothes, CategoryWatchesAccessories:
		return true
	default:
		return false
	}
}

// QCStatus represents the outcome of the photo review step. GL means the
// item was approved for shipping, RL means it was rejected.
type QCStatus string

const (
	QCNotReceived   QCStatus = "not_received"
	QCPendingReview QCStatus = "pending_review"
	QCApproved      QCStatus = "gl"
	QCRejected      QCStatus = "rl"
)

// IsValid reports whether the QC status is known.
func (s QCStatus) IsValid() bool {
	switch s {
	case QCNotReceived, QCPendingReview, QCApproved, QCRejected:
		return true
	default:
		return false
	}
}

// Platform enumerates where a seller operates.
type Platform string

const (
	PlatformWeidian Platform = "weidian"
	PlatformTaobao  Platform = "taobao"
	Platform1688    Platform = "1688"
	PlatformYupoo   Platform = "yupoo"
	PlatformDirect  Platform = "direct"
)

// IsValid reports whether the platform is known.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformWeidian, PlatformTaobao, Platform1688, PlatformYupoo, PlatformDirect:
		return true
	default:
		return false
	}
}
