package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"streamhub-backend/internal/domains/catalog"
)

// memoryData is the shared state behind every MemoryStore view
type memoryData struct {
	mu            sync.Mutex
	nextSeriesID  int64
	nextEpisodeID int64
	series        map[int64]*catalog.Series
	episodes      map[int64]*catalog.Episode
	failures      map[string][]error
	calls         map[string]int
}

// MemoryStore is an in-process catalog.Store with the same constraints as
// the postgres schema (episode FK, unique number per series) plus failure
// injection for tests. WithTx snapshots state and restores it on error.
type MemoryStore struct {
	data *memoryData
	inTx bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: &memoryData{
		series:   make(map[int64]*catalog.Series),
		episodes: make(map[int64]*catalog.Episode),
		failures: make(map[string][]error),
		calls:    make(map[string]int),
	}}
}

// FailNext makes the next call to op return err. Calls queue in order.
// Ops are named "<repo>.<method>", e.g. "series.delete", "episodes.delete_by_series".
func (m *MemoryStore) FailNext(op string, err error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	m.data.failures[op] = append(m.data.failures[op], err)
}

// Calls reports how many times op was invoked, failed calls included
func (m *MemoryStore) Calls(op string) int {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	return m.data.calls[op]
}

func (m *MemoryStore) Series() catalog.SeriesRepository {
	return &memorySeries{store: m}
}

func (m *MemoryStore) Episodes() catalog.EpisodeRepository {
	return &memoryEpisodes{store: m}
}

func (m *MemoryStore) WithTx(ctx context.Context, fn func(tx catalog.Store) error) error {
	if m.inTx {
		return fn(m)
	}

	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	snapshot := m.data.snapshot()
	if err := fn(&MemoryStore{data: m.data, inTx: true}); err != nil {
		m.data.restore(snapshot)
		return err
	}
	return nil
}

// do runs op under the store lock unless already inside a transaction
func (m *MemoryStore) do(op string, fn func(d *memoryData) error) error {
	if !m.inTx {
		m.data.mu.Lock()
		defer m.data.mu.Unlock()
	}

	m.data.calls[op]++
	if queued := m.data.failures[op]; len(queued) > 0 {
		m.data.failures[op] = queued[1:]
		return queued[0]
	}
	return fn(m.data)
}

type memorySnapshot struct {
	nextSeriesID  int64
	nextEpisodeID int64
	series        map[int64]*catalog.Series
	episodes      map[int64]*catalog.Episode
}

func (d *memoryData) snapshot() memorySnapshot {
	snap := memorySnapshot{
		nextSeriesID:  d.nextSeriesID,
		nextEpisodeID: d.nextEpisodeID,
		series:        make(map[int64]*catalog.Series, len(d.series)),
		episodes:      make(map[int64]*catalog.Episode, len(d.episodes)),
	}
	for id, s := range d.series {
		snap.series[id] = s.Clone()
	}
	for id, e := range d.episodes {
		snap.episodes[id] = e.Clone()
	}
	return snap
}

func (d *memoryData) restore(snap memorySnapshot) {
	d.nextSeriesID = snap.nextSeriesID
	d.nextEpisodeID = snap.nextEpisodeID
	d.series = snap.series
	d.episodes = snap.episodes
}

// ========================================
// SERIES
// ========================================

type memorySeries struct {
	store *MemoryStore
}

func (r *memorySeries) Create(ctx context.Context, s *catalog.Series) error {
	return r.store.do("series.create", func(d *memoryData) error {
		d.nextSeriesID++
		s.ID = d.nextSeriesID
		s.Version = 1
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now().UTC()
		}
		s.UpdatedAt = s.CreatedAt
		d.series[s.ID] = s.Clone()
		return nil
	})
}

func (r *memorySeries) FindByID(ctx context.Context, id int64) (*catalog.Series, error) {
	var found *catalog.Series
	err := r.store.do("series.find", func(d *memoryData) error {
		s, ok := d.series[id]
		if !ok {
			return catalog.ErrSeriesNotFound
		}
		found = s.Clone()
		return nil
	})
	return found, err
}

// LockByID: the memory store already serialises every call
func (r *memorySeries) LockByID(ctx context.Context, id int64) (*catalog.Series, error) {
	var found *catalog.Series
	err := r.store.do("series.lock", func(d *memoryData) error {
		s, ok := d.series[id]
		if !ok {
			return catalog.ErrSeriesNotFound
		}
		found = s.Clone()
		return nil
	})
	return found, err
}

func (r *memorySeries) List(ctx context.Context, publishedOnly bool) ([]*catalog.Series, error) {
	result := make([]*catalog.Series, 0)
	err := r.store.do("series.list", func(d *memoryData) error {
		for _, s := range d.series {
			if publishedOnly && s.Status != catalog.StatusPublished {
				continue
			}
			result = append(result, s.Clone())
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, err
}

func (r *memorySeries) UpdateStatus(ctx context.Context, id int64, change catalog.StatusChange) (*catalog.Series, error) {
	var updated *catalog.Series
	err := r.store.do("series.update_status", func(d *memoryData) error {
		s, ok := d.series[id]
		if !ok {
			return catalog.ErrSeriesNotFound
		}
		if change.ExpectedVersion != nil && *change.ExpectedVersion != s.Version {
			return catalog.ErrVersionMismatch
		}
		s.Status = change.Status
		s.UpdatedBy = change.UpdatedBy
		s.UpdatedAt = catalog.NextUpdatedAt(s.UpdatedAt, change.At)
		s.Version++
		updated = s.Clone()
		return nil
	})
	return updated, err
}

func (r *memorySeries) Delete(ctx context.Context, id int64) error {
	return r.store.do("series.delete", func(d *memoryData) error {
		if _, ok := d.series[id]; !ok {
			return catalog.ErrSeriesNotFound
		}
		for _, e := range d.episodes {
			if e.SeriesID == id {
				return catalog.ErrSeriesHasEpisodes
			}
		}
		delete(d.series, id)
		return nil
	})
}

// ========================================
// EPISODES
// ========================================

type memoryEpisodes struct {
	store *MemoryStore
}

func (r *memoryEpisodes) Create(ctx context.Context, e *catalog.Episode) error {
	return r.store.do("episodes.create", func(d *memoryData) error {
		if _, ok := d.series[e.SeriesID]; !ok {
			return catalog.ErrSeriesMissing
		}
		for _, existing := range d.episodes {
			if existing.SeriesID == e.SeriesID && existing.Number == e.Number {
				return catalog.ErrDuplicateEpisodeNumber
			}
		}
		d.nextEpisodeID++
		e.ID = d.nextEpisodeID
		e.Version = 1
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}
		e.UpdatedAt = e.CreatedAt
		d.episodes[e.ID] = e.Clone()
		return nil
	})
}

func (r *memoryEpisodes) FindByID(ctx context.Context, id int64) (*catalog.Episode, error) {
	var found *catalog.Episode
	err := r.store.do("episodes.find", func(d *memoryData) error {
		e, ok := d.episodes[id]
		if !ok {
			return catalog.ErrEpisodeNotFound
		}
		found = e.Clone()
		return nil
	})
	return found, err
}

func (r *memoryEpisodes) ListBySeries(ctx context.Context, seriesID int64, publishedOnly bool) ([]*catalog.Episode, error) {
	result := make([]*catalog.Episode, 0)
	err := r.store.do("episodes.list_by_series", func(d *memoryData) error {
		for _, e := range d.episodes {
			if e.SeriesID != seriesID {
				continue
			}
			if publishedOnly && e.Status != catalog.StatusPublished {
				continue
			}
			result = append(result, e.Clone())
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, err
}

func (r *memoryEpisodes) ListAll(ctx context.Context) ([]*catalog.Episode, error) {
	result := make([]*catalog.Episode, 0)
	err := r.store.do("episodes.list_all", func(d *memoryData) error {
		for _, e := range d.episodes {
			result = append(result, e.Clone())
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].SeriesID != result[j].SeriesID {
			return result[i].SeriesID < result[j].SeriesID
		}
		return result[i].Number < result[j].Number
	})
	return result, err
}

func (r *memoryEpisodes) UpdateStatus(ctx context.Context, id int64, change catalog.StatusChange) (*catalog.Episode, error) {
	var updated *catalog.Episode
	err := r.store.do("episodes.update_status", func(d *memoryData) error {
		e, ok := d.episodes[id]
		if !ok {
			return catalog.ErrEpisodeNotFound
		}
		if change.ExpectedVersion != nil && *change.ExpectedVersion != e.Version {
			return catalog.ErrVersionMismatch
		}
		e.Status = change.Status
		e.UpdatedBy = change.UpdatedBy
		e.UpdatedAt = catalog.NextUpdatedAt(e.UpdatedAt, change.At)
		e.Version++
		updated = e.Clone()
		return nil
	})
	return updated, err
}

func (r *memoryEpisodes) Delete(ctx context.Context, id int64) error {
	return r.store.do("episodes.delete", func(d *memoryData) error {
		if _, ok := d.episodes[id]; !ok {
			return catalog.ErrEpisodeNotFound
		}
		delete(d.episodes, id)
		return nil
	})
}

func (r *memoryEpisodes) DeleteBySeries(ctx context.Context, seriesID int64) (int64, error) {
	var removed int64
	err := r.store.do("episodes.delete_by_series", func(d *memoryData) error {
		for id, e := range d.episodes {
			if e.SeriesID == seriesID {
				delete(d.episodes, id)
				removed++
			}
		}
		return nil
	})
	return removed, err
}
