package domain

import "time"

// Reason carries the three free-text context fields attached to a log entry.
type Reason struct {
	Tag     string `json:"tag"`
	Actor   string `json:"actor"`
	Context string `json:"context"`
}

// LogEntry is one append-only record of a balance change.
// PreviousAmount + ChangeAmount equals the balance right after the change.
type LogEntry struct {
	ID             int64     `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	UUID           string    `json:"uuid"`
	CurrencyType   string    `json:"currency_type"`
	ChangeAmount   int64     `json:"change_amount"`
	PreviousAmount int64     `json:"previous_amount"`
	Reason         Reason    `json:"reason"`
}

// LogFilter holds the optional predicates for a transaction log query.
// Zero values are omitted from the predicate. Reason fields are
// substring matches.
type LogFilter struct {
	UUID          string     `json:"uuid"`
	CurrencyType  string     `json:"currency_type"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	ReasonTag     string     `json:"reason_tag"`
	ReasonActor   string     `json:"reason_actor"`
	ReasonContext string     `json:"reason_context"`
	Limit         int32      `json:"limit"`
	Offset        int32      `json:"offset"`
	Ascending     bool       `json:"ascending"`
}
