package ledger

import "time"

// Kind classifies an event record.
type Kind string

const (
	KindVisit    Kind = "visit"
	KindPurchase Kind = "purchase"
)

// Record is one logged occurrence. The generation timestamp is assigned once,
// when the producer constructs the record, and is never mutated afterward.
type Record struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	SubjectID   string    `json:"subject_id"`
	Page        string    `json:"page,omitempty"`
	ProductID   string    `json:"product_id,omitempty"`
	PromotionID string    `json:"promotion_id,omitempty"`
	Origin      string    `json:"origin"`
	Quantity    int64     `json:"quantity"`
	At          time.Time `json:"at"`
}
