package items

import (
	"time"

	"github.com/pasalo-app/pasalo/internal/catalog"
)

// StampSoldDate returns the sold date an item should carry after moving from
// prev to next. The date is stamped when entering a terminal sale status from
// a different status, and is never cleared once set. Re-entering a terminal
// sale status from elsewhere refreshes the stamp.
func StampSoldDate(prev, next Status, soldDate *time.Time, now time.Time) *time.Time {
	if next.IsTerminalSale() && prev != next {
		t := now
		return &t
	}
	return soldDate
}

// QCResolution describes where an item may go after a QC review. Exactly one
// of the fields is set: AutoStatus when the outcome forces a single move,
// Choices when the operator has to pick the next step.
type QCResolution struct {
	AutoStatus *Status
	Choices    []Status
}

// ResolveQC maps a QC outcome recorded at the given pipeline status to the
// statuses the item may move to. Both outcomes only steer the pipeline while
// the item awaits QC: a pass ships it out automatically, a rejection offers a
// reorder or a refund. Outcomes recorded at any other point update the QC
// field and leave the status untouched.
func ResolveQC(status Status, qc catalog.QCStatus) QCResolution {
	if status != StatusQCSent {
		return QCResolution{}
	}
	switch qc {
	case catalog.QCApproved:
		next := StatusItemShipout
		return QCResolution{AutoStatus: &next}
	case catalog.QCRejected:
		return QCResolution{Choices: []Status{StatusOrdered, StatusRefunded}}
	}
	return QCResolution{}
}
