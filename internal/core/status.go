package core

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/JonMunkholm/jobtracker/internal/logging"
)

// statusTables lists the related tables in precedence order.
var statusTables = []struct {
	table  string
	status Status
}{
	{TableRejections, StatusRejected},
	{TableClosures, StatusClosed},
	{TableConsiderations, StatusConsidered},
}

// MembershipCache holds, per related table, the set of Application ID values
// found in it. A table is read on its first lookup only; later lookups are
// answered from memory until the table is invalidated.
type MembershipCache struct {
	store TableReader

	mu   sync.RWMutex
	sets map[string]map[string]struct{}
	// gen is bumped on every invalidation; a load only stores its set if the
	// generation it started under is still current.
	gen map[string]uint64

	group singleflight.Group
}

// NewMembershipCache creates an empty cache over store.
func NewMembershipCache(store TableReader) *MembershipCache {
	return &MembershipCache{
		store: store,
		sets:  make(map[string]map[string]struct{}),
		gen:   make(map[string]uint64),
	}
}

// Contains reports whether id appears in the Application ID column of table.
func (c *MembershipCache) Contains(ctx context.Context, table, id string) (bool, error) {
	set, err := c.ids(ctx, table)
	if err != nil {
		return false, err
	}
	_, ok := set[id]
	return ok, nil
}

func (c *MembershipCache) ids(ctx context.Context, table string) (map[string]struct{}, error) {
	c.mu.RLock()
	set, ok := c.sets[table]
	c.mu.RUnlock()
	if ok {
		membershipCacheLookups.WithLabelValues(table, "hit").Inc()
		return set, nil
	}
	membershipCacheLookups.WithLabelValues(table, "miss").Inc()

	v, err, _ := c.group.Do(table, func() (any, error) {
		c.mu.Lock()
		set, ok := c.sets[table]
		gen := c.gen[table]
		c.gen[table] = gen
		c.mu.Unlock()
		if ok {
			return set, nil
		}

		set, err := c.load(ctx, table)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen[table] == gen {
			c.sets[table] = set
		}
		c.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]struct{}), nil
}

func (c *MembershipCache) load(ctx context.Context, table string) (map[string]struct{}, error) {
	t, err := LoadTable(ctx, c.store, table)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, t.Len())
	if t.IsEmpty() {
		return set, nil
	}

	col, err := t.Column(ColApplicationID)
	if err != nil {
		return nil, &MissingColumnError{Table: table, Column: ColApplicationID}
	}
	for _, v := range col {
		set[v.String()] = struct{}{}
	}

	logging.FromContext(ctx).Debug("membership set loaded", "table", table, "ids", len(set))
	return set, nil
}

// Invalidate drops the cached sets of the given tables, or of every table
// when none are named. Loads already in flight are not stored, and later
// lookups start a fresh read instead of joining them.
func (c *MembershipCache) Invalidate(tables ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(tables) == 0 {
		for t := range c.gen {
			tables = append(tables, t)
		}
	}
	for _, t := range tables {
		delete(c.sets, t)
		c.gen[t]++
		c.group.Forget(t)
	}
}

// StatusJoin derives application status from the related tables.
type StatusJoin struct {
	cache *MembershipCache
}

// NewStatusJoin creates a StatusJoin backed by cache.
func NewStatusJoin(cache *MembershipCache) *StatusJoin {
	return &StatusJoin{cache: cache}
}

// Status returns the status of the application with the given ID.
// Precedence is Rejected, Closed, Considered, then No Response; tables after
// the first hit are not consulted.
func (j *StatusJoin) Status(ctx context.Context, id string) (Status, error) {
	for _, st := range statusTables {
		ok, err := j.cache.Contains(ctx, st.table, id)
		if err != nil {
			return "", fmt.Errorf("status for %s: %w", id, err)
		}
		if ok {
			return st.status, nil
		}
	}
	return StatusNoResponse, nil
}

// Enrich attaches a status to each record. The input records are not modified.
func (j *StatusJoin) Enrich(ctx context.Context, records []Record) ([]Application, error) {
	out := make([]Application, len(records))
	for i, r := range records {
		st, err := j.Status(ctx, r.Text(ColID))
		if err != nil {
			return nil, err
		}
		out[i] = Application{Record: r.Clone(), Status: st}
	}
	return out, nil
}
