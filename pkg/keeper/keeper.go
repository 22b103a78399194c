// Package keeper holds the whole in-memory state of the stock book
// (profiles, logs, session) and syncs it wholesale to a SnapshotStore
// after every mutation. There are no partial updates: each change
// rewrites the owning slot in full, last write wins.
package keeper

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ledgerline/stockbook/pkg/types"
)

// now can be overridden in tests.
var now = time.Now

// session is the snapshot stored under types.SlotSession: the current
// profile pointer and the active log selection.
type session struct {
	CurrentProfile string `json:"current_profile,omitempty"`
	SelectedLog    string `json:"selected_log,omitempty"`
}

// Keeper is the collection manager. All mutations are synchronous
// in-memory updates followed by a snapshot write. The keeper serializes
// its own callers with a mutex but performs no cross-process
// coordination: two processes sharing a DataDir overwrite each other on
// the next snapshot write.
type Keeper struct {
	mu       sync.Mutex
	store    types.SnapshotStore
	profiles []types.Profile
	logs     []*types.Log
	session  session
}

// Open loads the three snapshot slots from an attached store. Missing
// or malformed snapshots fall back to empty defaults; a damaged slot is
// never a startup error.
func Open(store types.SnapshotStore) (*Keeper, error) {
	k := &Keeper{store: store}

	if err := loadSlot(store, types.SlotProfiles, &k.profiles); err != nil {
		return nil, err
	}
	if err := loadSlot(store, types.SlotLogs, &k.logs); err != nil {
		return nil, err
	}
	if err := loadSlot(store, types.SlotSession, &k.session); err != nil {
		return nil, err
	}

	// A session pointing at a vanished profile or log reads as logged out.
	if k.session.CurrentProfile != "" && !k.hasProfile(k.session.CurrentProfile) {
		k.session.CurrentProfile = ""
	}
	if k.session.SelectedLog != "" && k.findLog(k.session.SelectedLog) == nil {
		k.session.SelectedLog = ""
	}
	return k, nil
}

// loadSlot reads one slot into dst. ErrNotFound and unmarshal failures
// leave dst at its zero value.
func loadSlot(store types.SnapshotStore, key string, dst any) error {
	raw, err := store.Get(key)
	if errors.Is(err, types.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load slot %s: %w", key, err)
	}
	// Malformed snapshots are tolerated; the slot is rebuilt on the
	// next write.
	_ = json.Unmarshal([]byte(raw), dst)
	return nil
}

// Close detaches the underlying store.
func (k *Keeper) Close() error {
	return k.store.Detach()
}

// persist marshals state and rewrites the slot in full.
func (k *Keeper) persist(key string, state any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal slot %s: %w", key, err)
	}
	if err := k.store.Set(key, string(raw)); err != nil {
		return fmt.Errorf("persist slot %s: %w", key, err)
	}
	return nil
}

// Profiles returns the known profiles in creation order.
func (k *Keeper) Profiles() []types.Profile {
	k.mu.Lock()
	defer k.mu.Unlock()

	out := make([]types.Profile, len(k.profiles))
	copy(out, k.profiles)
	return out
}

// CurrentProfile returns the acting profile, if one is selected.
func (k *Keeper) CurrentProfile() (types.Profile, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, p := range k.profiles {
		if p.Name == k.session.CurrentProfile {
			return p, true
		}
	}
	return types.Profile{}, false
}

// SelectProfile sets the acting profile, creating it on first entry of
// a new name. Returns ErrInvalidName for an empty name.
func (k *Keeper) SelectProfile(name string) (types.Profile, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if name == "" {
		return types.Profile{}, types.ErrInvalidName
	}

	p, ok := k.profileByName(name)
	if !ok {
		p = types.Profile{Name: name, CreatedAt: now()}
		k.profiles = append(k.profiles, p)
		if err := k.persist(types.SlotProfiles, k.profiles); err != nil {
			return types.Profile{}, err
		}
	}

	k.session.CurrentProfile = name
	if err := k.persist(types.SlotSession, k.session); err != nil {
		return types.Profile{}, err
	}
	return p, nil
}

// Logout clears the current-profile pointer and any active log
// selection.
func (k *Keeper) Logout() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.session = session{}
	return k.persist(types.SlotSession, k.session)
}

func (k *Keeper) profileByName(name string) (types.Profile, bool) {
	for _, p := range k.profiles {
		if p.Name == name {
			return p, true
		}
	}
	return types.Profile{}, false
}

func (k *Keeper) hasProfile(name string) bool {
	_, ok := k.profileByName(name)
	return ok
}
