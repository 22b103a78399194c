// Log collection operations: lifecycle, lock/authorship rules, selection,
// filtering and date sorting.
package keeper

import (
	"sort"
	"strings"
	"time"

	"github.com/ledgerline/stockbook/pkg/types"
)

// Logs returns the full log collection in insertion order. The returned
// logs are the keeper's own; callers must go through the keeper for
// mutations so snapshots stay in sync.
func (k *Keeper) Logs() []*types.Log {
	k.mu.Lock()
	defer k.mu.Unlock()

	out := make([]*types.Log, len(k.logs))
	copy(out, k.logs)
	return out
}

// GetLog returns the log with the given ID, or ErrNotFound.
func (k *Keeper) GetLog(id string) (*types.Log, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	l := k.findLog(id)
	if l == nil {
		return nil, types.ErrNotFound
	}
	return l, nil
}

// CreateLog creates a new unlocked log authored by the current profile,
// dated today, with the four fixed sections each holding an empty table.
// Returns ErrNoProfile when nobody is logged in.
func (k *Keeper) CreateLog() (*types.Log, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.session.CurrentProfile == "" {
		return nil, types.ErrNoProfile
	}

	l := types.NewLog(k.session.CurrentProfile)
	k.logs = append(k.logs, l)
	if err := k.persist(types.SlotLogs, k.logs); err != nil {
		return nil, err
	}
	return l, nil
}

// DuplicateLog deep-copies an existing log's sections into a new log
// authored by the current profile, dated today, always unlocked. This is
// the template path: it works on foreign and locked logs alike.
func (k *Keeper) DuplicateLog(id string) (*types.Log, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.session.CurrentProfile == "" {
		return nil, types.ErrNoProfile
	}
	src := k.findLog(id)
	if src == nil {
		return nil, types.ErrNotFound
	}

	dup := src.Duplicate(k.session.CurrentProfile)
	k.logs = append(k.logs, dup)
	if err := k.persist(types.SlotLogs, k.logs); err != nil {
		return nil, err
	}
	return dup, nil
}

// UpdateLog replaces a log's sections wholesale, keyed by log id. Only
// the author may update, and only while the log is unlocked.
func (k *Keeper) UpdateLog(id string, sections []types.Section) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	l := k.findLog(id)
	if l == nil {
		return types.ErrNotFound
	}
	if err := k.checkEditable(l); err != nil {
		return err
	}

	l.Sections = sections
	return k.persist(types.SlotLogs, k.logs)
}

// EditTable applies fn to one section's table under the usual
// authorization rules and persists the collection when fn succeeds.
func (k *Keeper) EditTable(id, sectionName string, fn func(*types.Table) error) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	l := k.findLog(id)
	if l == nil {
		return types.ErrNotFound
	}
	if err := k.checkEditable(l); err != nil {
		return err
	}
	sec, err := l.Section(sectionName)
	if err != nil {
		return err
	}
	if err := fn(&sec.Table); err != nil {
		return err
	}
	return k.persist(types.SlotLogs, k.logs)
}

// DeleteLog removes a log from the collection. Author-only; the caller
// is responsible for interactive confirmation. Clears the selection if
// the deleted log was selected.
func (k *Keeper) DeleteLog(id string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	idx := -1
	for i, l := range k.logs {
		if l.LogID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.ErrNotFound
	}
	if !k.logs[idx].AuthoredBy(k.session.CurrentProfile) {
		return types.ErrNotAuthor
	}

	k.logs = append(k.logs[:idx], k.logs[idx+1:]...)
	if err := k.persist(types.SlotLogs, k.logs); err != nil {
		return err
	}

	if k.session.SelectedLog == id {
		k.session.SelectedLog = ""
		return k.persist(types.SlotSession, k.session)
	}
	return nil
}

// ToggleLock flips a log's lock flag. Only permitted when the acting
// profile equals the log's author; otherwise the log is unchanged and
// ErrNotAuthor is returned.
func (k *Keeper) ToggleLock(id string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	l := k.findLog(id)
	if l == nil {
		return types.ErrNotFound
	}
	if !l.AuthoredBy(k.session.CurrentProfile) {
		return types.ErrNotAuthor
	}

	l.Locked = !l.Locked
	return k.persist(types.SlotLogs, k.logs)
}

// SelectLog marks a log as the active selection.
func (k *Keeper) SelectLog(id string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.findLog(id) == nil {
		return types.ErrNotFound
	}
	k.session.SelectedLog = id
	return k.persist(types.SlotSession, k.session)
}

// SelectedLog returns the active selection, if any.
func (k *Keeper) SelectedLog() (*types.Log, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.session.SelectedLog == "" {
		return nil, false
	}
	l := k.findLog(k.session.SelectedLog)
	if l == nil {
		return nil, false
	}
	return l, true
}

// CanEdit reports whether the acting profile may edit the log: it must
// be the author and the log must be unlocked.
func (k *Keeper) CanEdit(l *types.Log) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.checkEditable(l) == nil
}

// FilterLogs returns the logs matching a free-text query: the query is a
// substring of the log's date string or a case-insensitive substring of
// its author name. A non-empty author narrows to exact author match.
// Empty query and author match everything.
func (k *Keeper) FilterLogs(query, author string) []*types.Log {
	k.mu.Lock()
	defer k.mu.Unlock()

	q := strings.ToLower(query)
	var out []*types.Log
	for _, l := range k.logs {
		if author != "" && l.Author != author {
			continue
		}
		if query != "" &&
			!strings.Contains(l.Date, query) &&
			!strings.Contains(strings.ToLower(l.Author), q) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// SortByDate orders logs by parsed creation date, ascending unless
// descending is set. Logs with unparseable dates sort last; the sort is
// stable.
func SortByDate(logs []*types.Log, descending bool) []*types.Log {
	out := make([]*types.Log, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := parseDate(out[i].Date)
		tj, jok := parseDate(out[j].Date)
		if iok != jok {
			return iok // parseable dates first
		}
		if !iok {
			return false
		}
		if descending {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
	return out
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(types.DateLayout, s)
	return t, err == nil
}

// checkEditable enforces the per-log state machine: the author may edit
// while unlocked; everyone else is read-only regardless of the lock flag.
func (k *Keeper) checkEditable(l *types.Log) error {
	if !l.AuthoredBy(k.session.CurrentProfile) {
		return types.ErrNotAuthor
	}
	if l.Locked {
		return types.ErrLogLocked
	}
	return nil
}

func (k *Keeper) findLog(id string) *types.Log {
	for _, l := range k.logs {
		if l.LogID == id {
			return l
		}
	}
	return nil
}
