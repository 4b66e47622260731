package domain

import (
	"time"
)

// Transaction is one normalized bank transaction produced by a bank adapter.
// Every adapter maps its own wire format into this shape before the rest of
// the pipeline sees it.
type Transaction struct {
	ID          string    // opaque upstream identifier, unique within one statement pull
	Amount      int64     // minor currency units (cents); positive = credit, negative = debit
	Balance     int64     // minor currency units; running balance after this transaction
	Datetime    time.Time // bank-local wall clock; primary sort and filter key
	Description string    // human-readable, adapter-enriched (comment, merchant category)
}
