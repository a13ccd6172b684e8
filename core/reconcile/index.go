package reconcile

// Index is a read-only lookup map built once from a slice.
// When a key repeats, the first item wins and the key is recorded as a duplicate.
type Index[K comparable, V any] struct {
	items      map[K]V
	duplicates []K
}

// NewIndex builds an index of items keyed by key. Items for which key reports
// false are left out.
func NewIndex[K comparable, V any](items []V, key func(V) (K, bool)) *Index[K, V] {
	idx := &Index[K, V]{items: make(map[K]V, len(items))}
	for _, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}
		if _, exists := idx.items[k]; exists {
			idx.duplicates = append(idx.duplicates, k)
			continue
		}
		idx.items[k] = item
	}
	return idx
}

// Get returns the item stored under k.
func (i *Index[K, V]) Get(k K) (V, bool) {
	if i == nil {
		var zero V
		return zero, false
	}
	v, ok := i.items[k]
	return v, ok
}

// Has reports whether k is indexed.
func (i *Index[K, V]) Has(k K) bool {
	_, ok := i.Get(k)
	return ok
}

// Len returns the number of distinct keys.
func (i *Index[K, V]) Len() int {
	if i == nil {
		return 0
	}
	return len(i.items)
}

// Duplicates returns keys that appeared more than once, in source order.
func (i *Index[K, V]) Duplicates() []K {
	if i == nil {
		return nil
	}
	return i.duplicates
}
