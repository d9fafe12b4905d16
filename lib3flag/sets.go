package lib3flag

import (
	"sync"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// CanonicSet allows adding canonic encodings of flags and returning if an isomorphic flag has already been added.
type CanonicSet interface {

	// TryAdd adds the given flag if it is not already present.
	//
	// If the canonic version of X already is in this CanonicSet, this call has no effect and TryAdd() returns false.
	// If X isn't in this set, X is added and TryAdd() returns true.
	//
	// After one or more calls to TryAdd(), call Close() for cleanup.
	TryAdd(X *Flag) bool

	// Close removes all previously added items from this set and returns the first error the set encountered, if any.
	// Once a set has failed, TryAdd() returns false until Close() is called.
	Close() error
}

// NewCanonicSet returns a new, empty CanonicSet of the given kind ("" denotes go3flag.DedupMap).
func NewCanonicSet(kind go3flag.DedupSet) (CanonicSet, error) {
	switch kind {
	case "", go3flag.DedupMap:
		return NewDropDupes(DropDupeOpts{}), nil
	case go3flag.DedupLSM:
		return &lsmSet{
			dbOpts: badger.DefaultOptions("").WithInMemory(true).WithMemTableSize(8 << 20),
		}, nil
	}
	return nil, errors.Wrapf(go3flag.ErrBadDedupSet, "%q", kind)
}

// lsmSet is a CanonicSet backed by a badger db (in-memory by default), keyed by varint canonic encodings.
type lsmSet struct {
	mu     sync.Mutex
	dbOpts badger.Options
	db     *badger.DB
	err    error
}

func (set *lsmSet) autoOpen() {
	if set.db == nil && set.err == nil {
		dbOpts := set.dbOpts
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			set.err = errors.Wrap(err, "opening lsm set")
		}
	}
}

func (set *lsmSet) TryAdd(X *Flag) bool {
	var keyBuf [256]byte
	key := X.ExportEncoding(keyBuf[:0], go3flag.ExportCanonic)
	return set.tryAdd(key)
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.mu.Lock()
	defer set.mu.Unlock()

	set.autoOpen()
	if set.err != nil {
		return false
	}

	txn := set.db.NewTransaction(true)
	defer txn.Discard()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		if err == nil {
			err = txn.Commit()
		}
		added = err == nil
	}

	if err != nil {
		set.err = errors.Wrap(err, "lsm set")
	}
	return added
}

func (set *lsmSet) Close() error {
	set.mu.Lock()
	defer set.mu.Unlock()

	err := set.err
	set.err = nil
	if set.db != nil {
		if closeErr := set.db.Close(); err == nil && closeErr != nil {
			err = errors.Wrap(closeErr, "closing lsm set")
		}
		set.db = nil
	}
	return err
}
