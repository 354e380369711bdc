package core

// BufferCache memoizes the last generated buffer. The entry is keyed by the
// generation subset of a ParameterSet plus the seed, so transform edits hit
// and any other edit misses. A miss drops the previous buffer.
type BufferCache struct {
	key   GenerationKey
	seed  uint64
	buf   *ParticleBuffer
	valid bool

	generations int
}

// Get returns the cached buffer for p, generating it on a miss.
func (c *BufferCache) Get(p ParameterSet, seed uint64) (*ParticleBuffer, error) {
	key := p.GenerationKey()
	if c.valid && c.key == key && c.seed == seed {
		return c.buf, nil
	}

	buf, err := Generate(p, NewRandomSource(seed))
	if err != nil {
		return nil, err
	}
	c.generations++
	c.key, c.seed, c.buf, c.valid = key, seed, buf, true
	return buf, nil
}

// Invalidate forgets the current entry; the next Get regenerates.
func (c *BufferCache) Invalidate() {
	c.buf = nil
	c.valid = false
}

// Generations counts Generate calls made through this cache.
func (c *BufferCache) Generations() int { return c.generations }
