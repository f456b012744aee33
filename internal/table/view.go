package table

import (
	"sync"

	"github.com/google/uuid"

	"backoffice/internal/query"
)

// Mode selects how a view derives its rows. The branch is an explicit tagged
// variant so dispatch stays exhaustive instead of being inferred from the
// presence of an optional pagination field.
type Mode int

const (
	// ModeClient derives rows locally over an already-fetched full data set.
	ModeClient Mode = iota
	// ModeServer relays intent upstream; rows arrive already filtered,
	// sorted, and paginated.
	ModeServer
)

// FetchFunc issues exactly one upstream request carrying the given state.
type FetchFunc func(s query.State) ([]Row, query.Meta, error)

// View is a live table: the current query state plus the rows it resolves to.
// Every interaction computes the next state; in server mode it then issues
// one upstream fetch, in client mode it re-derives rows locally with no
// outbound request.
type View struct {
	mu     sync.Mutex
	mode   Mode
	proc   Processor
	state  query.State
	source []Row
	rows   []Row
	meta   query.Meta
	fetch  FetchFunc
	token  string
}

// NewClientView builds a client-mode view over the full data set.
func NewClientView(proc Processor, pageSize int, source []Row) *View {
	v := &View{
		mode:   ModeClient,
		proc:   proc,
		state:  query.New(pageSize),
		source: source,
	}
	v.rows = proc.Apply(v.state, source)
	return v
}

// NewServerView builds a server-mode view. The initial fetch happens on the
// first Refresh or interaction.
func NewServerView(pageSize int, fetch FetchFunc) *View {
	return &View{
		mode:  ModeServer,
		state: query.New(pageSize),
		fetch: fetch,
	}
}

func (v *View) Mode() Mode { return v.mode }

// State returns a copy of the current query state.
func (v *View) State() query.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Rows returns the currently derived rows.
func (v *View) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

// Meta returns the upstream pagination envelope. Only meaningful in server
// mode; client mode renders all matching rows without pagination.
func (v *View) Meta() query.Meta {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.meta
}

// SetSource replaces the full data set of a client-mode view and re-derives
// rows under the current state.
func (v *View) SetSource(source []Row) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mode != ModeClient {
		return
	}
	v.source = source
	v.rows = v.proc.Apply(v.state, source)
}

func (v *View) Sort(key string) error {
	return v.transition(func(s query.State) query.State { return query.ApplySort(s, key) })
}

func (v *View) Filter(field, value string) error {
	return v.transition(func(s query.State) query.State { return query.ApplyFilter(s, field, value) })
}

func (v *View) Search(text string) error {
	return v.transition(func(s query.State) query.State { return query.ApplySearch(s, text) })
}

func (v *View) Page(page int) error {
	return v.transition(func(s query.State) query.State { return query.ApplyPage(s, page) })
}

func (v *View) Clear() error {
	return v.transition(query.ClearAll)
}

// Refresh re-resolves rows under the unchanged current state.
func (v *View) Refresh() error {
	return v.transition(func(s query.State) query.State { return s })
}

func (v *View) transition(f func(query.State) query.State) error {
	v.mu.Lock()
	next := f(v.state)
	v.state = next

	if v.mode == ModeClient {
		v.rows = v.proc.Apply(next, v.source)
		v.mu.Unlock()
		return nil
	}

	// Correlation token: a response is applied only while it is still the
	// newest request, so a slow fetch cannot overwrite fresher state.
	token := uuid.NewString()
	v.token = token
	fetch := v.fetch
	v.mu.Unlock()

	rows, meta, err := fetch(next)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.token != token {
		return nil
	}
	if err != nil {
		return err
	}
	v.rows = rows
	v.meta = meta
	return nil
}
