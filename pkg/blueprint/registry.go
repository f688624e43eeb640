package blueprint

// Registry is an insertion-ordered table where the first writer of a
// key keeps it: a later Claim for the same key is rejected and the
// stored value is left untouched. The resolver's first-match-wins file
// policy and the merger's first-declared-wins symbol policy are both
// built on this one primitive, so the whole pipeline follows a single
// precedence rule.
type Registry[V any] struct {
	order []string
	byKey map[string]V
}

func NewRegistry[V any]() *Registry[V] {
	return &Registry[V]{byKey: make(map[string]V)}
}

// Claim stores v under key if the key is unclaimed and reports whether
// the claim succeeded.
func (r *Registry[V]) Claim(key string, v V) bool {
	if _, taken := r.byKey[key]; taken {
		return false
	}
	r.byKey[key] = v
	r.order = append(r.order, key)
	return true
}

// Get returns the value claimed under key.
func (r *Registry[V]) Get(key string) (V, bool) {
	v, ok := r.byKey[key]
	return v, ok
}

// Has reports whether key has been claimed.
func (r *Registry[V]) Has(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Keys returns all claimed keys in claim order.
func (r *Registry[V]) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len returns the number of claimed keys.
func (r *Registry[V]) Len() int {
	return len(r.order)
}
