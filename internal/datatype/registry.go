// Package datatype implements the named validator registry consulted by the
// grammar engine when a literal refers to a data type instead of a bare
// keyword (§2, §9). The registry only specifies the plug-in interface and a
// baseline set of validators; callers may register additional ones (e.g. a
// richer numeric-range INTEGER) without touching the grammar engine.
package datatype

import (
	"fmt"
	"strings"
	"sync"
)

// Validator accepts or rejects a single argv word. A non-nil error is the
// rejection reason surfaced to the user.
type Validator func(word string) error

// Registry maps an all-uppercase type name to exactly one Validator.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// NewRegistry returns a registry seeded with the baseline types named in
// §2: BOOLEAN, INTEGER, IPADDR, IPV4ADDR, IPV6ADDR, IPPREFIX, MACADDR,
// HOSTNAME, STRING, DQSTRING, SQSTRING, BQSTRING.
func NewRegistry() *Registry {
	r := &Registry{validators: make(map[string]Validator)}
	for name, v := range defaultValidators() {
		r.validators[name] = v
	}
	return r
}

// Register attaches fn to name, which must be non-empty and all-uppercase
// (the same naming rule the grammar engine applies to macros, §3.1 invariant
// 5). Registering an existing name replaces it.
func (r *Registry) Register(name string, fn Validator) error {
	if name == "" {
		return fmt.Errorf("datatype: empty name")
	}
	if name != strings.ToUpper(name) {
		return fmt.Errorf("datatype: name %q must be all-uppercase", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[name] = fn
	return nil
}

// Lookup returns the validator registered for name, if any.
func (r *Registry) Lookup(name string) (Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[name]
	return v, ok
}

// Names returns the currently registered type names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.validators))
	for n := range r.validators {
		names = append(names, n)
	}
	return names
}
