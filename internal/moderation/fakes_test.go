package moderation_test

import (
	"context"
	"sort"
	"sync"

	"github.com/execwatch/execwatch/internal/database/types"
	"github.com/execwatch/execwatch/internal/moderation"
)

// fakeBanStore is an in-memory BanStore for tests.
type fakeBanStore struct {
	mu   sync.Mutex
	bans map[string]*types.Ban
	err  error
}

func newFakeBanStore() *fakeBanStore {
	return &fakeBanStore{bans: make(map[string]*types.Ban)}
}

func (s *fakeBanStore) Upsert(_ context.Context, record *types.Ban) error {
	if s.err != nil {
		return s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *record
	s.bans[record.PlayerID] = &clone

	return nil
}

func (s *fakeBanStore) Get(_ context.Context, playerID string) (*types.Ban, error) {
	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ban, ok := s.bans[playerID]
	if !ok {
		return nil, nil
	}

	clone := *ban

	return &clone, nil
}

func (s *fakeBanStore) Delete(_ context.Context, playerID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.bans[playerID]
	delete(s.bans, playerID)

	return ok, nil
}

func (s *fakeBanStore) DeleteAll(_ context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := int64(len(s.bans))
	s.bans = make(map[string]*types.Ban)

	return removed, nil
}

func (s *fakeBanStore) List(_ context.Context) ([]*types.Ban, error) {
	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bans := make([]*types.Ban, 0, len(s.bans))
	for _, ban := range s.bans {
		clone := *ban
		bans = append(bans, &clone)
	}

	return bans, nil
}

// fakeWhitelistStore is an in-memory WhitelistStore for tests.
type fakeWhitelistStore struct {
	mu      sync.Mutex
	entries map[string]*types.WhitelistEntry
	err     error
}

func newFakeWhitelistStore() *fakeWhitelistStore {
	return &fakeWhitelistStore{entries: make(map[string]*types.WhitelistEntry)}
}

func (s *fakeWhitelistStore) Upsert(_ context.Context, entry *types.WhitelistEntry) error {
	if s.err != nil {
		return s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *entry
	s.entries[entry.PlayerID] = &clone

	return nil
}

func (s *fakeWhitelistStore) Exists(_ context.Context, playerID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[playerID]

	return ok, nil
}

func (s *fakeWhitelistStore) DeleteByPlayerID(_ context.Context, playerID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[playerID]
	delete(s.entries, playerID)

	return ok, nil
}

func (s *fakeWhitelistStore) DeleteByUserID(_ context.Context, userID uint64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for playerID, entry := range s.entries {
		if entry.UserID == userID {
			delete(s.entries, playerID)
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeWhitelistStore) List(_ context.Context) ([]*types.WhitelistEntry, error) {
	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]*types.WhitelistEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		clone := *entry
		entries = append(entries, &clone)
	}

	return entries, nil
}

// fakeExecutionStore is an in-memory ExecutionStore for tests. Search
// mirrors the SQL contract: exact equality on any identity field, newest
// first, limited.
type fakeExecutionStore struct {
	mu      sync.Mutex
	nextID  int64
	records []*types.ExecutionRecord
	err     error
}

func newFakeExecutionStore() *fakeExecutionStore {
	return &fakeExecutionStore{}
}

func (s *fakeExecutionStore) Insert(_ context.Context, record *types.ExecutionRecord) error {
	if s.err != nil {
		return s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++

	clone := *record
	clone.ID = s.nextID
	s.records = append(s.records, &clone)

	return nil
}

func (s *fakeExecutionStore) Search(_ context.Context, value string, limit int) ([]*types.ExecutionRecord, error) {
	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*types.ExecutionRecord

	for _, record := range s.records {
		if record.PlayerID == value || record.Username == value || record.DisplayName == value {
			clone := *record
			matched = append(matched, &clone)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ExecutedAt.After(matched[j].ExecutedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (s *fakeExecutionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// fakeAdminStore is an in-memory AdminStore for tests.
type fakeAdminStore struct {
	admins map[uint64]bool
	err    error
}

func newFakeAdminStore(ids ...uint64) *fakeAdminStore {
	admins := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		admins[id] = true
	}

	return &fakeAdminStore{admins: admins}
}

func (s *fakeAdminStore) IsAdmin(_ context.Context, discordID uint64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}

	return s.admins[discordID], nil
}

// fakeNotifier records delivered alerts for tests.
type fakeNotifier struct {
	mu     sync.Mutex
	alerts []string
	err    error
}

func (n *fakeNotifier) NotifyExecution(_ context.Context, report moderation.Report) error {
	if n.err != nil {
		return n.err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.alerts = append(n.alerts, report.PlayerID)

	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.alerts)
}
