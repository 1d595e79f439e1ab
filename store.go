package bench

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// ErrNoTable is returned by Store.Get for unknown sources.
var ErrNoTable = errors.New("no such table")

// Key layout:
//
//	t/<source>\x00<index> -> JSON measurement
const tablePrefix = "t/"

// Store archives measurement tables in a leveldb database.
type Store struct {
	db *leveldb.DB
}

// OpenStore opens or creates the store in dir.
func OpenStore(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("can't open store: %v", err)
	}
	return &Store{db: db}, nil
}

// NewMemStore creates a store that lives in memory.
func NewMemStore() *Store {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		panic(err)
	}
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func sourcePrefix(source string) []byte {
	return []byte(tablePrefix + source + "\x00")
}

func rowKey(source string, i int) []byte {
	p := sourcePrefix(source)
	k := make([]byte, len(p)+4)
	copy(k, p)
	binary.BigEndian.PutUint32(k[len(p):], uint32(i))
	return k
}

// Put stores ms under source, replacing any existing table.
func (s *Store) Put(source string, ms []Measurement) error {
	if source == "" || strings.ContainsRune(source, 0) {
		return fmt.Errorf("invalid source name %q", source)
	}
	batch := new(leveldb.Batch)
	if err := s.deleteRows(batch, source); err != nil {
		return err
	}
	for i, m := range ms {
		enc, err := json.Marshal(&m)
		if err != nil {
			return err
		}
		batch.Put(rowKey(source, i), enc)
	}
	return s.db.Write(batch, &opt.WriteOptions{Sync: true})
}

// Get returns the table stored under source.
func (s *Store) Get(source string) ([]Measurement, error) {
	iter := s.db.NewIterator(util.BytesPrefix(sourcePrefix(source)), nil)
	defer iter.Release()
	var ms []Measurement
	for iter.Next() {
		var m Measurement
		if err := json.Unmarshal(iter.Value(), &m); err != nil {
			return nil, fmt.Errorf("corrupt row %x: %v", iter.Key(), err)
		}
		ms = append(ms, m)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	if ms == nil {
		return nil, ErrNoTable
	}
	return ms, nil
}

// Delete removes the table stored under source.
func (s *Store) Delete(source string) error {
	batch := new(leveldb.Batch)
	if err := s.deleteRows(batch, source); err != nil {
		return err
	}
	if batch.Len() == 0 {
		return ErrNoTable
	}
	return s.db.Write(batch, nil)
}

func (s *Store) deleteRows(batch *leveldb.Batch, source string) error {
	iter := s.db.NewIterator(util.BytesPrefix(sourcePrefix(source)), nil)
	defer iter.Release()
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	return iter.Error()
}

// Sources returns the names of all stored tables in sorted order.
func (s *Store) Sources() ([]string, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(tablePrefix)), nil)
	defer iter.Release()
	seen := make(map[string]bool)
	var sources []string
	for iter.Next() {
		k := strings.TrimPrefix(string(iter.Key()), tablePrefix)
		if i := strings.IndexByte(k, 0); i >= 0 {
			k = k[:i]
		}
		if !seen[k] {
			seen[k] = true
			sources = append(sources, k)
		}
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sort.Strings(sources)
	return sources, nil
}
