// Package navigation models the URL side-channel used for sort state and
// highlight deep links as an injected port, so the core logic is testable
// without a real browser or router.
package navigation

import "net/url"

// Port exposes the current URL query and the two navigation variants. Replace
// must not create a history entry; Push must. Sort clicks and highlight
// consumption use Replace only.
type Port interface {
	Query() url.Values
	Replace(query url.Values)
	Push(query url.Values)
}

// Memory is an in-process Port recording every navigation. The zero value is
// ready to use.
type Memory struct {
	current url.Values
	// History records Push navigations only, mirroring browser history.
	History []url.Values
	// Replacements counts Replace navigations for assertions.
	Replacements int
}

// NewMemory returns a Memory port with the given initial query.
func NewMemory(initial url.Values) *Memory {
	m := &Memory{}
	m.current = cloneValues(initial)
	return m
}

func (m *Memory) Query() url.Values {
	if m.current == nil {
		return url.Values{}
	}
	return cloneValues(m.current)
}

func (m *Memory) Replace(query url.Values) {
	m.current = cloneValues(query)
	m.Replacements++
}

func (m *Memory) Push(query url.Values) {
	m.History = append(m.History, cloneValues(m.current))
	m.current = cloneValues(query)
}

// SetParam replaces a single parameter on the current query without counting
// as a navigation. Tests use it to simulate external URL changes.
func (m *Memory) SetParam(key, value string) {
	q := m.Query()
	if value == "" {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	m.current = q
}

func cloneValues(v url.Values) url.Values {
	out := url.Values{}
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
