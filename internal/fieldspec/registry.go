package fieldspec

// Registry maps a validator identity to the fields it is attached to,
// in registration order. It is filled once while a record is compiled.
type Registry[K comparable] struct {
	owners map[K][]string
	order  []K
}

// Duplicate is a validator identity attached to more than one field.
type Duplicate[K comparable] struct {
	Key    K
	Fields []string
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{owners: make(map[K][]string)}
}

// Register records that field uses the validator identified by key.
func (r *Registry[K]) Register(key K, field string) {
	if _, ok := r.owners[key]; !ok {
		r.order = append(r.order, key)
	}

	r.owners[key] = append(r.owners[key], field)
}

// Fields returns the fields using key, or nil.
func (r *Registry[K]) Fields(key K) []string {
	fields := r.owners[key]
	if fields == nil {
		return nil
	}

	return append([]string(nil), fields...)
}

// Len returns the number of distinct validator identities.
func (r *Registry[K]) Len() int {
	return len(r.order)
}

// Duplicates returns every identity used by two or more fields, in the order
// the identities were first registered.
func (r *Registry[K]) Duplicates() []Duplicate[K] {
	var out []Duplicate[K]

	for _, key := range r.order {
		if fields := r.owners[key]; len(fields) > 1 {
			out = append(out, Duplicate[K]{Key: key, Fields: append([]string(nil), fields...)})
		}
	}

	return out
}
