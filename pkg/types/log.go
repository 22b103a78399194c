// Log entity: one dated stock-record entry owned by a single author,
// holding four fixed sections.
package types

import "time"

// The four fixed section names, in display order.
const (
	SectionInventory   = "inventory"
	SectionPurchases   = "purchases"
	SectionSales       = "sales"
	SectionAdjustments = "adjustments"
)

// SectionNames lists the fixed sections every log carries, in order.
var SectionNames = []string{
	SectionInventory,
	SectionPurchases,
	SectionSales,
	SectionAdjustments,
}

// DateLayout is the display format of a log's creation date.
const DateLayout = "2006-01-02"

// Section is one named slot within a log, holding an independent table.
type Section struct {
	Name  string `json:"name"`
	Table Table  `json:"table"`
}

// Log is one dated stock-record entry. Mutable only by its author while
// unlocked; logs authored by another profile are always read-only
// regardless of the lock flag.
type Log struct {
	LogID    string    `json:"log_id"`
	Date     string    `json:"date"`
	Author   string    `json:"author"`
	Locked   bool      `json:"locked"`
	Sections []Section `json:"sections"`
}

// NewLog creates an unlocked log authored by the given profile, dated
// today, with the four fixed sections each seeded with an empty table
// (one default column, zero rows).
func NewLog(author string) *Log {
	l := &Log{
		LogID:  NewID(),
		Date:   time.Now().Format(DateLayout),
		Author: author,
	}
	for _, name := range SectionNames {
		l.Sections = append(l.Sections, Section{Name: name, Table: NewTable()})
	}
	return l
}

// Section returns a pointer to the named section.
// Returns ErrSectionNotFound for anything outside the fixed four.
func (l *Log) Section(name string) (*Section, error) {
	for i := range l.Sections {
		if l.Sections[i].Name == name {
			return &l.Sections[i], nil
		}
	}
	return nil, ErrSectionNotFound
}

// EditableBy reports whether the acting profile may mutate this log:
// the profile is the author and the log is unlocked.
func (l *Log) EditableBy(profile string) bool {
	return profile != "" && profile == l.Author && !l.Locked
}

// AuthoredBy reports whether the acting profile is the log's author.
// Only the author may toggle the lock or delete the log.
func (l *Log) AuthoredBy(profile string) bool {
	return profile != "" && profile == l.Author
}

// Duplicate deep-copies the log's sections into a new log authored by
// the given profile, dated today, always unlocked regardless of the
// source's lock state.
func (l *Log) Duplicate(author string) *Log {
	dup := &Log{
		LogID:  NewID(),
		Date:   time.Now().Format(DateLayout),
		Author: author,
	}
	for _, s := range l.Sections {
		dup.Sections = append(dup.Sections, Section{Name: s.Name, Table: s.Table.Clone()})
	}
	return dup
}
