package lib3flag

import (
	"bytes"
	"sync"
)

type dropDupes struct {
	mu        sync.Mutex
	hashMap   map[uint64][]byte
	bufPool   []byte
	bufPoolSz int
	opts      DropDupeOpts
}

const DefaultPoolSz = 32 * 1024

type DropDupeOpts struct {
	PoolSz int // 0 denotes DefaultPoolSz (32k)

	// hashFn overrides HashEncoding (used to force collisions in tests)
	hashFn func(enc []byte) uint64
}

// NewDropDupes returns a memory resident CanonicSet.
//
// Canonic encodings are bucketed by their content hash, but a hash match alone never rejects a flag: the full
// encodings are compared and colliding entries are placed at the next free hash slot.
func NewDropDupes(opts DropDupeOpts) CanonicSet {
	if opts.PoolSz <= 0 {
		opts.PoolSz = DefaultPoolSz
	}
	if opts.hashFn == nil {
		opts.hashFn = HashEncoding
	}
	return &dropDupes{
		hashMap: make(map[uint64][]byte),
		opts:    opts,
	}
}

func (cat *dropDupes) Reset() {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	cat.bufPoolSz = 0
	for k := range cat.hashMap {
		delete(cat.hashMap, k)
	}
}

func (cat *dropDupes) Close() error {
	cat.Reset()
	return nil
}

func (cat *dropDupes) Len() int {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return len(cat.hashMap)
}

func (cat *dropDupes) TryAdd(X *Flag) bool {
	var keyBuf [256]byte
	Xc := X
	if !X.canonic {
		Xc = X.Canonize()
	}
	Xkey := Xc.AppendEdgeEncoding(keyBuf[:0])
	hash := cat.opts.hashFn(Xkey)

	cat.mu.Lock()
	defer cat.mu.Unlock()

	existing, found := cat.hashMap[hash]
	for found {
		if bytes.Equal(existing, Xkey) {
			return false
		}
		hash++
		existing, found = cat.hashMap[hash]
	}

	// If we've gotten here, it means this is a new entry.
	// Place a copy of the key in our backing buf; if we run out of space in our pool, we start a new pool
	pos := cat.bufPoolSz
	itemLen := len(Xkey)
	if pos+itemLen > cap(cat.bufPool) {
		allocSz := cat.opts.PoolSz
		if allocSz < itemLen {
			allocSz = itemLen
		}
		cat.bufPool = make([]byte, allocSz)
		cat.bufPoolSz = 0
		pos = 0
	}

	cat.hashMap[hash] = append(cat.bufPool[pos:pos], Xkey...)
	cat.bufPoolSz += itemLen
	return true
}
