package tabular

import (
	"fmt"
	"strings"
	"sync"
)

type SessionState string

const (
	StateViewing SessionState = "viewing"
	StateEditing SessionState = "editing"
	StateSaving  SessionState = "saving"
)

// ValidationError aggregates every field that failed presentation-layer
// validation so the user sees a single message naming all of them.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// Session is the edit buffer of a single row. In-progress edits live in the
// buffer and are merged into the record only on a confirmed save; field
// reads during editing prefer the buffer, including fields explicitly set
// to nil.
type Session struct {
	Key    string
	New    bool
	Record Row

	mu     sync.Mutex
	buffer Row
	state  SessionState
}

// NewSession starts a session over an existing record, in viewing state.
func NewSession(key string, record Row) *Session {
	return &Session{Key: key, Record: record.Clone(), buffer: Row{}, state: StateViewing}
}

// NewDraft starts a session for a brand-new row. It begins directly in
// editing state with an empty buffer; the template supplies default reads
// for fields the user has not touched yet.
func NewDraft(key string, template Row) *Session {
	return &Session{Key: key, New: true, Record: template.Clone(), buffer: Row{}, state: StateEditing}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Edit moves a viewing session into editing.
func (s *Session) Edit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateViewing {
		s.state = StateEditing
	}
}

// Cancel discards the buffer and returns to viewing.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = Row{}
	s.state = StateViewing
}

// Set stages one field edit. Setting a field to nil is an explicit edit and
// masks the record value on subsequent reads.
func (s *Session) Set(field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return
	}
	s.buffer[field] = value
}

// ProductSelection carries the fields a product picker fills in.
type ProductSelection struct {
	ProductID     any
	Name          string
	Price         float64
	StockQuantity int
}

// SelectProduct applies a product pick as one atomic buffer write: the four
// product fields change together and quantity resets to 1, so no read ever
// observes a partially-applied selection.
func (s *Session) SelectProduct(p ProductSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return
	}
	s.buffer["productId"] = p.ProductID
	s.buffer["productName"] = p.Name
	s.buffer["productPrice"] = p.Price
	s.buffer["productStockQuantity"] = p.StockQuantity
	s.buffer["quantity"] = 1
}

// Value returns the effective value of a field: while editing, the buffer
// value when the key is present (explicit nil included), falling back to the
// live record; while viewing, always the record. The subtotal and
// cartTotalValue fields are computed, never stored.
func (s *Session) Value(field string) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case "subtotal":
		qty, _ := toFloat(s.lookupLocked("quantity"))
		price, _ := toFloat(s.lookupLocked("productPrice"))
		return qty * price
	case "cartTotalValue":
		total := 0.0
		for _, item := range childRows(s.Record["cart"]) {
			total += lineSubtotal(item)
		}
		return total
	}

	return s.lookupLocked(field)
}

func (s *Session) lookupLocked(field string) any {
	if s.state == StateEditing || s.state == StateSaving {
		if v, ok := s.buffer[field]; ok {
			return v
		}
	}
	return s.Record[field]
}

// Validate re-checks every given column against the effective field values
// and aggregates all failures; it never contacts the network.
func (s *Session) Validate(columns []Column) error {
	var invalid []string
	for _, col := range columns {
		if !fieldValid(col, s.Value(col.Field)) {
			invalid = append(invalid, col.Header)
		}
	}
	if len(invalid) > 0 {
		return &ValidationError{Fields: invalid}
	}
	return nil
}

// Save validates every editable column and, when all pass, returns the row
// to persist: the record merged with the buffer for existing rows, the raw
// buffer for new rows. Any failure aborts the whole save.
func (s *Session) Save(columns []Column) (Row, error) {
	if err := s.Validate(columns); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return nil, fmt.Errorf("session %q is not editing", s.Key)
	}

	var merged Row
	if s.New {
		merged = s.buffer.Clone()
	} else {
		merged = s.Record.Clone()
		for k, v := range s.buffer {
			merged[k] = v
		}
	}

	s.state = StateSaving
	return merged, nil
}

// Complete confirms a save: the merged row becomes the live record and the
// session returns to viewing.
func (s *Session) Complete(saved Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if saved != nil {
		s.Record = saved.Clone()
	}
	s.buffer = Row{}
	s.New = false
	s.state = StateViewing
}

// Fail returns a saving session to editing with its buffer intact so the
// user can retry.
func (s *Session) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSaving {
		s.state = StateEditing
	}
}

// fieldValid implements presentation-layer validation only: required enum
// columns need a value that is a member of the options list, required
// non-enum columns need a non-nil, non-empty value, and non-required
// columns always pass. Authoritative validation belongs to the backing API.
func fieldValid(col Column, v any) bool {
	if !col.Required {
		return true
	}
	if col.Type == ColumnEnum {
		return optionMember(col.Options, v)
	}
	return !isEmptyValue(v)
}

func optionMember(options []Option, v any) bool {
	if isEmptyValue(v) {
		return false
	}
	for _, opt := range options {
		if opt.Value == v || fmt.Sprint(opt.Value) == fmt.Sprint(v) {
			return true
		}
	}
	return false
}

// SessionManager owns every live edit session of a table, keyed by the
// row's dataKey value, so concurrent sessions have an explicit, testable
// lifecycle.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: map[string]*Session{}}
}

// Begin opens (or returns the already-open) session for an existing row and
// puts it in editing state.
func (m *SessionManager) Begin(key string, record Row) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[key]; ok {
		s.Edit()
		return s
	}

	s := NewSession(key, record)
	s.Edit()
	m.sessions[key] = s
	return s
}

// BeginDraft opens a session for a row that does not exist yet.
func (m *SessionManager) BeginDraft(key string, template Row) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[key]; ok {
		return s
	}

	s := NewDraft(key, template)
	m.sessions[key] = s
	return s
}

func (m *SessionManager) Get(key string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key]
	return s, ok
}

// End discards a session; called on confirmed save and on cancel.
func (m *SessionManager) End(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
}

func (m *SessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
