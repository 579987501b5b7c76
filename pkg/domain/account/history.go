package account

import "strings"

const (
	// NoMovementsMessage is rendered for an empty history.
	NoMovementsMessage = "No movements were made."

	// BalanceLabel prefixes the balance line of a statement.
	BalanceLabel = "Balance:"
)

// History is the append-only log of an account's records, in chronological order.
type History struct {
	records []Record
}

func (h *History) add(r Record) {
	h.records = append(h.records, r)
}

func (h History) clone() History {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return History{records: out}
}

// Len returns the number of records.
func (h History) Len() int {
	return len(h.records)
}

// Records returns a copy of the records in insertion order.
func (h History) Records() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Render returns one line per record, or NoMovementsMessage when empty.
func (h History) Render() string {
	if len(h.records) == 0 {
		return NoMovementsMessage
	}
	lines := make([]string, 0, len(h.records))
	for _, r := range h.records {
		lines = append(lines, r.Line())
	}
	return strings.Join(lines, "\n")
}
