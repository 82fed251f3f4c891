package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/sports-dw/internal/domain/dimension"
	"github.com/riskibarqy/sports-dw/internal/domain/fact"
	"github.com/riskibarqy/sports-dw/internal/domain/warehouse"
	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
)

// table keeps one row per natural key with sequential surrogate keys.
type table[K comparable, V any] struct {
	keys map[K]int64
	rows map[int64]V
	next int64
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{keys: map[K]int64{}, rows: map[int64]V{}}
}

func (t *table[K, V]) upsert(key K, in V, merge func(stored, in V) V) int64 {
	if id, ok := t.keys[key]; ok {
		t.rows[id] = merge(t.rows[id], in)
		return id
	}
	t.next++
	t.keys[key] = t.next
	t.rows[t.next] = in
	return t.next
}

func (t *table[K, V]) clone() *table[K, V] {
	out := &table[K, V]{
		keys: make(map[K]int64, len(t.keys)),
		rows: make(map[int64]V, len(t.rows)),
		next: t.next,
	}
	for k, v := range t.keys {
		out.keys[k] = v
	}
	for k, v := range t.rows {
		out.rows[k] = v
	}
	return out
}

func (t *table[K, V]) ordered() []V {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

type warehouseState struct {
	teams             *table[int64, dimension.Team]
	leagues           *table[int64, dimension.League]
	venues            *table[int64, dimension.Venue]
	referees          *table[int64, dimension.Referee]
	times             *table[calendar.Date, calendar.Date]
	basketballTeams   *table[int64, dimension.BasketballTeam]
	basketballPlayers *table[int64, dimension.BasketballPlayer]
	basketballLeagues *table[int64, dimension.BasketballLeague]
	dates             *table[calendar.Date, calendar.Date]
	drivers           *table[string, dimension.Driver]
	f1Teams           *table[string, dimension.F1Team]
	circuits          *table[string, dimension.Circuit]
	races             *table[string, dimension.Race]
	matches           *table[int64, fact.Match]
	basketballGames   []fact.BasketballGame
	raceResults       []fact.RaceResult
}

func newWarehouseState() *warehouseState {
	return &warehouseState{
		teams:             newTable[int64, dimension.Team](),
		leagues:           newTable[int64, dimension.League](),
		venues:            newTable[int64, dimension.Venue](),
		referees:          newTable[int64, dimension.Referee](),
		times:             newTable[calendar.Date, calendar.Date](),
		basketballTeams:   newTable[int64, dimension.BasketballTeam](),
		basketballPlayers: newTable[int64, dimension.BasketballPlayer](),
		basketballLeagues: newTable[int64, dimension.BasketballLeague](),
		dates:             newTable[calendar.Date, calendar.Date](),
		drivers:           newTable[string, dimension.Driver](),
		f1Teams:           newTable[string, dimension.F1Team](),
		circuits:          newTable[string, dimension.Circuit](),
		races:             newTable[string, dimension.Race](),
		matches:           newTable[int64, fact.Match](),
	}
}

func (s *warehouseState) clone() *warehouseState {
	return &warehouseState{
		teams:             s.teams.clone(),
		leagues:           s.leagues.clone(),
		venues:            s.venues.clone(),
		referees:          s.referees.clone(),
		times:             s.times.clone(),
		basketballTeams:   s.basketballTeams.clone(),
		basketballPlayers: s.basketballPlayers.clone(),
		basketballLeagues: s.basketballLeagues.clone(),
		dates:             s.dates.clone(),
		drivers:           s.drivers.clone(),
		f1Teams:           s.f1Teams.clone(),
		circuits:          s.circuits.clone(),
		races:             s.races.clone(),
		matches:           s.matches.clone(),
		basketballGames:   append([]fact.BasketballGame(nil), s.basketballGames...),
		raceResults:       append([]fact.RaceResult(nil), s.raceResults...),
	}
}

// Snapshot is a read-only copy of the warehouse contents in surrogate key
// order.
type Snapshot struct {
	Teams             []dimension.Team
	Leagues           []dimension.League
	Venues            []dimension.Venue
	Referees          []dimension.Referee
	Times             []calendar.Date
	BasketballTeams   []dimension.BasketballTeam
	BasketballPlayers []dimension.BasketballPlayer
	BasketballLeagues []dimension.BasketballLeague
	Dates             []calendar.Date
	Drivers           []dimension.Driver
	F1Teams           []dimension.F1Team
	Circuits          []dimension.Circuit
	Races             []dimension.Race
	Matches           []fact.Match
	BasketballGames   []fact.BasketballGame
	RaceResults       []fact.RaceResult
}

// WarehouseRepository is an in-memory warehouse with the same merge rules
// as the SQL upserts. Transactions work on a copy that replaces the state
// only on success.
type WarehouseRepository struct {
	mu    sync.Mutex
	state *warehouseState
	fail  map[string]error
}

func NewWarehouseRepository() *WarehouseRepository {
	return &WarehouseRepository{state: newWarehouseState(), fail: map[string]error{}}
}

// FailOn makes the named store operation (e.g. "UpsertMatch") return err.
func (r *WarehouseRepository) FailOn(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[op] = err
}

func (r *WarehouseRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, store warehouse.Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft := r.state.clone()
	if err := fn(ctx, &Store{state: draft, fail: r.fail}); err != nil {
		return err
	}
	r.state = draft
	return nil
}

func (r *WarehouseRepository) EnsureUniqueIndexes(context.Context) error {
	return nil
}

func (r *WarehouseRepository) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.state
	return Snapshot{
		Teams:             s.teams.ordered(),
		Leagues:           s.leagues.ordered(),
		Venues:            s.venues.ordered(),
		Referees:          s.referees.ordered(),
		Times:             s.times.ordered(),
		BasketballTeams:   s.basketballTeams.ordered(),
		BasketballPlayers: s.basketballPlayers.ordered(),
		BasketballLeagues: s.basketballLeagues.ordered(),
		Dates:             s.dates.ordered(),
		Drivers:           s.drivers.ordered(),
		F1Teams:           s.f1Teams.ordered(),
		Circuits:          s.circuits.ordered(),
		Races:             s.races.ordered(),
		Matches:           s.matches.ordered(),
		BasketballGames:   append([]fact.BasketballGame(nil), s.basketballGames...),
		RaceResults:       append([]fact.RaceResult(nil), s.raceResults...),
	}
}
