package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/tolelom/utxochain/core"
)

// ErrNotFound is returned by LevelDB.Get when a key has no entry.
var ErrNotFound = errors.New("storage: not found")

// LevelDB implements DB using LevelDB.
type LevelDB struct {
	db *leveldb.DB
}

// NewLevelDB opens (or creates) a LevelDB database at path.
func NewLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %q: %w", path, err)
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(key []byte) ([]byte, error) {
	val, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	return val, err
}

func (l *LevelDB) Set(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

func (l *LevelDB) NewIterator(prefix []byte) Iterator {
	return l.db.NewIterator(util.BytesPrefix(prefix), nil)
}

func (l *LevelDB) NewBatch() Batch {
	return &levelBatch{db: l.db, batch: new(leveldb.Batch)}
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}

type levelBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *levelBatch) Set(key, value []byte) { b.batch.Put(key, value) }
func (b *levelBatch) Delete(key []byte)      { b.batch.Delete(key) }
func (b *levelBatch) Write() error           { return b.db.Write(b.batch, nil) }
func (b *levelBatch) Reset()                 { b.batch.Reset() }

// ---- LedgerStore ----

const ledgerSeqPrefix = "ledger:seq:"

// LedgerStore persists every block a node accepts, keyed by its position
// in ledger insertion order, so a restarted node can rebuild its
// core.Ledger and re-derive its head by walking the recorded sequence.
// Nothing in core ever calls into this type — a driver (cmd/simnode) owns
// one per node and calls Put for every ledger entry not yet on disk.
type LedgerStore struct {
	db  DB
	len int
}

// NewLedgerStore wraps db as a LedgerStore, scanning for the highest
// already-written sequence number.
func NewLedgerStore(db DB) (*LedgerStore, error) {
	s := &LedgerStore{db: db}
	it := db.NewIterator([]byte(ledgerSeqPrefix))
	defer it.Release()
	count := 0
	for it.Next() {
		count++
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	s.len = count
	return s, nil
}

// Put appends block as the next entry in ledger insertion order.
func (s *LedgerStore) Put(block *core.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%010d", ledgerSeqPrefix, s.len)
	if err := s.db.Set([]byte(key), data); err != nil {
		return err
	}
	s.len++
	return nil
}

// Len reports how many blocks have been persisted.
func (s *LedgerStore) Len() int { return s.len }

// LoadAll replays every persisted block in insertion order.
func (s *LedgerStore) LoadAll() ([]*core.Block, error) {
	it := s.db.NewIterator([]byte(ledgerSeqPrefix))
	defer it.Release()
	var blocks []*core.Block
	for it.Next() {
		var b core.Block
		if err := json.Unmarshal(it.Value(), &b); err != nil {
			return nil, err
		}
		blocks = append(blocks, &b)
	}
	return blocks, it.Error()
}
