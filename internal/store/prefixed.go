package store

import "time"

// Prefixed maps every logical key to prefix+key before delegating.
// Flush passes through untouched since it is server-wide.
type Prefixed struct {
	prefix string
	next   Store
}

func NewPrefixed(prefix string, next Store) *Prefixed {
	return &Prefixed{prefix: prefix, next: next}
}

func (p *Prefixed) Prefix() string { return p.prefix }

func (p *Prefixed) Key(key string) string { return p.prefix + key }

func (p *Prefixed) Get(key string) ([]byte, error) {
	return p.next.Get(p.Key(key))
}

func (p *Prefixed) Set(key string, value []byte, flags Flags, ttl time.Duration) error {
	return p.next.Set(p.Key(key), value, flags, ttl)
}

func (p *Prefixed) Add(key string, value []byte, flags Flags, ttl time.Duration) error {
	return p.next.Add(p.Key(key), value, flags, ttl)
}

func (p *Prefixed) Replace(key string, value []byte, flags Flags, ttl time.Duration) error {
	return p.next.Replace(p.Key(key), value, flags, ttl)
}

func (p *Prefixed) Delete(key string) error {
	return p.next.Delete(p.Key(key))
}

func (p *Prefixed) Increment(key string, by uint64) (uint64, error) {
	return p.next.Increment(p.Key(key), by)
}

func (p *Prefixed) Flush() error { return p.next.Flush() }

var _ Store = (*Prefixed)(nil)
