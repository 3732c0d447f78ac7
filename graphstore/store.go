// Package graphstore provides a persistent statement sink backed by
// BadgerDB. Terms are encoded as fixed-size xxhash3-based keys; hashed
// terms keep their lexical form in an id2str table so stored triples can
// be decoded back. Storing the same statement twice is a no-op, so a
// store behaves as a growing set of links.
package graphstore

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/geoknoesis/rdfxml-go/rdf"
)

// Key prefixes. The spo table holds one key per statement with an empty
// value; the id2str table maps an encoded term to its lexical payload.
var (
	prefixSPO    = []byte{'s'}
	prefixID2Str = []byte{'t'}
)

// Store is a BadgerDB-backed triple store implementing rdf.GraphHandler,
// so a parser can stream statements straight into it.
type Store struct {
	db  *badger.DB
	enc termEncoder
}

// Open opens (or creates) a store at the given directory.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable default logger
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("graphstore: open badger db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Sync flushes writes to disk.
func (s *Store) Sync() error {
	return s.db.Sync()
}

// Link implements rdf.GraphHandler by persisting one statement.
func (s *Store) Link(subject rdf.Term, predicate rdf.IRI, object rdf.Term) error {
	encS, strS, err := s.enc.encode(subject)
	if err != nil {
		return err
	}
	encP, strP, err := s.enc.encode(predicate)
	if err != nil {
		return err
	}
	encO, strO, err := s.enc.encode(object)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, pair := range []struct {
			enc     encodedTerm
			payload *string
		}{{encS, strS}, {encP, strP}, {encO, strO}} {
			if pair.payload == nil {
				continue
			}
			key := append(append([]byte{}, prefixID2Str...), pair.enc[:]...)
			if err := txn.Set(key, []byte(*pair.payload)); err != nil {
				return err
			}
		}
		key := append(append([]byte{}, prefixSPO...), tripleKey(encS, encP, encO)...)
		return txn.Set(key, nil)
	})
}

// Count returns the number of distinct statements in the store.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefixSPO
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefixSPO); it.ValidForPrefix(prefixSPO); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Each calls fn for every stored statement in key order. Iteration stops
// at the first error returned by fn.
func (s *Store) Each(fn func(rdf.Triple) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefixSPO
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefixSPO); it.ValidForPrefix(prefixSPO); it.Next() {
			key := it.Item().Key()
			if len(key) != len(prefixSPO)+3*encodedTermSize {
				return fmt.Errorf("graphstore: malformed statement key of %d bytes", len(key))
			}
			triple, err := s.decodeTriple(txn, key[len(prefixSPO):])
			if err != nil {
				return err
			}
			if err := fn(triple); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) decodeTriple(txn *badger.Txn, key []byte) (rdf.Triple, error) {
	var terms [3]rdf.Term
	for i := 0; i < 3; i++ {
		var enc encodedTerm
		copy(enc[:], key[i*encodedTermSize:(i+1)*encodedTermSize])
		term, err := s.decodeTerm(txn, enc)
		if err != nil {
			return rdf.Triple{}, err
		}
		terms[i] = term
	}
	predicate, ok := terms[1].(rdf.IRI)
	if !ok {
		return rdf.Triple{}, fmt.Errorf("graphstore: stored predicate is not an IRI")
	}
	return rdf.Triple{S: terms[0], P: predicate, O: terms[2]}, nil
}

func (s *Store) decodeTerm(txn *badger.Txn, enc encodedTerm) (rdf.Term, error) {
	var payload *string
	if hashed(enc[0]) {
		key := append(append([]byte{}, prefixID2Str...), enc[:]...)
		item, err := txn.Get(key)
		if err != nil {
			return nil, fmt.Errorf("graphstore: term payload lookup: %w", err)
		}
		err = item.Value(func(val []byte) error {
			str := string(val)
			payload = &str
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return s.enc.decode(enc, payload)
}
