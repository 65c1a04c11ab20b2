package schedulestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	var tests = []struct {
		name string
		want bool
	}{
		{"nightly-backup", true},
		{"nightly_backup-1", true},
		{"a/b/c", true},
		{"", false},
		{"../abc", false},
		{"a/b/../c", false},
		{"/abc", false},
		{"abc 1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ans := ValidName(tt.name) == nil
			require.Equal(t, tt.want, ans)
		})
	}
}

type memStore struct {
	docs map[string][]byte
}

func newMemStore() *memStore { return &memStore{docs: make(map[string][]byte)} }

func (m *memStore) Get(ctx context.Context, name string) ([]byte, error) {
	body, ok := m.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return body, nil
}

func (m *memStore) Put(ctx context.Context, name string, body []byte) error {
	m.docs[name] = body
	return nil
}

func (m *memStore) Delete(ctx context.Context, name string) error {
	if _, ok := m.docs[name]; !ok {
		return ErrNotFound
	}
	delete(m.docs, name)
	return nil
}

func (m *memStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	return names, nil
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	sch := Schedule{
		Name:        "nightly-backup",
		Cron:        "* * * 2 0 0",
		Mode:        "M",
		Description: "runs every day at 02:00",
	}
	require.NoError(t, Put(ctx, store, sch))

	got, err := Get(ctx, store, "nightly-backup")
	require.NoError(t, err)
	require.Equal(t, sch, got)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store := newMemStore()
	_, err := Get(context.Background(), store, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPutRejectsInvalidName(t *testing.T) {
	store := newMemStore()
	err := Put(context.Background(), store, Schedule{Name: "../escape"})
	require.Error(t, err)
}

func TestDeleteRoundTrip(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, Put(ctx, store, Schedule{Name: "once", Cron: "* * * 0 0 0", Mode: "M"}))
	require.NoError(t, Delete(ctx, store, "once"))
	_, err := Get(ctx, store, "once")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAllListsAndDecodesEveryStoredSchedule(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, Put(ctx, store, Schedule{Name: "nightly", Cron: "* * * 2 0 0", Mode: "M"}))
	require.NoError(t, Put(ctx, store, Schedule{Name: "weekly", Cron: "* * 1 9 0 0", Mode: "W"}))

	schedules, err := All(ctx, store, store)
	require.NoError(t, err)
	require.Len(t, schedules, 2)

	names := map[string]bool{}
	for _, sch := range schedules {
		names[sch.Name] = true
	}
	require.True(t, names["nightly"])
	require.True(t, names["weekly"])
}

func TestAllSkipsUndecodableDocuments(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, Put(ctx, store, Schedule{Name: "good", Cron: "* * * 2 0 0", Mode: "M"}))
	store.docs["corrupt"] = []byte("not json")

	schedules, err := All(ctx, store, store)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	require.Equal(t, "good", schedules[0].Name)
}
