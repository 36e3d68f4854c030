package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several datasets
// or users can share one redis database without colliding.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "hemibrain:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) BuildKey(entitiesHash, relationsHash string, opts BuildKeyOpts) string {
	return k.prefix + k.inner.BuildKey(entitiesHash, relationsHash, opts)
}

func (k *ScopedKeyer) PartitionKey(graphHash string, opts PartitionKeyOpts) string {
	return k.prefix + k.inner.PartitionKey(graphHash, opts)
}
