package session

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/registry"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/validation"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Option configures a Session.
type Option func(*Session)

// WithID sets the session id. Store assigns ids itself.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithValues seeds the session with initial values, applied through the
// change path so values of hidden fields are dropped as usual.
func WithValues(values model.Values) Option {
	return func(s *Session) {
		s.seed = values.Clone()
	}
}

// Session is the single owner of one form's state.
type Session struct {
	mu     sync.RWMutex
	id     string
	reg    *registry.Registry
	schema *schema.Schema
	state  State
	seed   model.Values
}

// New opens a session on the schema registered under key.
func New(reg *registry.Registry, key string, opts ...Option) (*Session, error) {
	if reg == nil {
		return nil, fmt.Errorf("session: registry is required")
	}
	s, err := reg.Get(key)
	if err != nil {
		return nil, err
	}
	sess := &Session{reg: reg, schema: s, state: NewState(s.Key)}
	for _, opt := range opts {
		if opt != nil {
			opt(sess)
		}
	}
	if len(sess.seed) > 0 {
		if sess.state, err = seed(s, sess.state, sess.seed); err != nil {
			return nil, err
		}
		sess.seed = nil
	}
	return sess, nil
}

// seed applies values in field order. Values dropped because their driver
// came later in the order are retried until a pass stores nothing new.
func seed(s *schema.Schema, state State, values model.Values) (State, error) {
	pending := make([]string, 0, len(values))
	for _, field := range s.Fields {
		if _, ok := values[field.Name]; ok {
			pending = append(pending, field.Name)
		}
	}
	for len(pending) > 0 {
		var dropped []string
		for _, name := range pending {
			next, _, err := Apply(s, state, name, values[name])
			if err != nil {
				return state, err
			}
			state = next
			if values[name].Present() && !state.Values.Get(name).Present() {
				dropped = append(dropped, name)
			}
		}
		if len(dropped) == len(pending) {
			break
		}
		pending = dropped
	}
	return state, nil
}

// ID returns the session id ("" unless set).
func (s *Session) ID() string { return s.id }

// Schema returns the active schema.
func (s *Session) Schema() *schema.Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schema
}

// Change applies one field change.
func (s *Session) Change(name string, value model.Value) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, update, err := Apply(s.schema, s.state, name, value)
	if err != nil {
		return Update{}, err
	}
	s.state = next
	return update, nil
}

// Submit validates the current values. The state's errors are replaced by
// the aggregate errors, or cleared on success.
func (s *Session) Submit() validation.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, result := Submit(s.schema, s.state)
	s.state = next
	return result
}

// Reset discards every value and error.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = NewState(s.schema.Key)
}

// Switch activates another schema. The state is always reset, even when key
// names the active schema.
func (s *Session) Switch(key string) error {
	next, err := s.reg.Get(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schema = next
	s.state = NewState(next.Key)
	return nil
}

// VisibleFields returns the currently visible fields in declaration order.
func (s *Session) VisibleFields() []model.Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return visibility.VisibleFields(s.schema.Fields, s.state.Values)
}

// Value returns the current value of name.
func (s *Session) Value(name string) model.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Values.Get(name)
}

// Snapshot is a consistent copy of a session.
type Snapshot struct {
	ID      string       `json:"id,omitempty"`
	Schema  string       `json:"schema"`
	Title   string       `json:"title"`
	Visible []string     `json:"visible"`
	Values  model.Values `json:"values"`
	Errors  model.Errors `json:"errors"`
}

// Snapshot copies the current state under one read lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Current returns the active schema together with a snapshot taken under the
// same read lock, so the values always belong to the returned schema.
func (s *Session) Current() (*schema.Schema, Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schema, s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:      s.id,
		Schema:  s.schema.Key,
		Title:   s.schema.Title,
		Visible: visibility.VisibleNames(s.schema.Fields, s.state.Values),
		Values:  s.state.Values.Clone(),
		Errors:  s.state.Errors.Clone(),
	}
}
