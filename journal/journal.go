// Package journal persists an append-only log of broadcast transactions.
//
// The journal is an audit trail, not wallet state: the spending path never
// reads it back, and deleting the database file does not change wallet
// behavior. Records are written before the transaction reaches the network,
// so a journaled txid with no matching on-chain transaction marks a
// broadcast that failed in flight.
package journal

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketRecords = []byte("broadcasts")
	bucketByTxID  = []byte("broadcasts_txid")
)

// Record is one broadcast attempt.
type Record struct {
	Seq       uint64 // assigned by Append
	TxID      string // display-hex transaction id
	RawTx     string // full serialized transaction, hex
	Recipient string
	Amount    uint64 // satoshis paid to the recipient
	Fee       uint64 // satoshis paid as miner fee
	CreatedAt time.Time
}

// Journal is a bbolt-backed append-only broadcast log.
type Journal struct {
	db *bbolt.DB
}

// Open opens or creates the journal database at path.
// The parent directory is created if it does not exist.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketRecords, bucketByTxID} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("journal: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error { return j.db.Close() }

// Append writes a new record and returns it with its sequence number set.
// A zero CreatedAt is stamped with the current time. A txid that was already
// journaled fails with ErrDuplicateRecord.
func (j *Journal) Append(rec Record) (Record, error) {
	if rec.TxID == "" {
		return Record{}, ErrInvalidRecord
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	err := j.db.Update(func(tx *bbolt.Tx) error {
		byTxID := tx.Bucket(bucketByTxID)
		if byTxID.Get([]byte(rec.TxID)) != nil {
			return ErrDuplicateRecord
		}

		records := tx.Bucket(bucketRecords)
		seq, err := records.NextSequence()
		if err != nil {
			return fmt.Errorf("journal: next sequence: %w", err)
		}
		rec.Seq = seq

		data, err := encodeGob(&rec)
		if err != nil {
			return fmt.Errorf("journal: encode record: %w", err)
		}

		key := seqKey(seq)
		if err := records.Put(key, data); err != nil {
			return fmt.Errorf("journal: put record: %w", err)
		}
		if err := byTxID.Put([]byte(rec.TxID), key); err != nil {
			return fmt.Errorf("journal: put txid index: %w", err)
		}
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Get retrieves a record by txid.
func (j *Journal) Get(txid string) (*Record, error) {
	var rec Record
	err := j.db.View(func(tx *bbolt.Tx) error {
		key := tx.Bucket(bucketByTxID).Get([]byte(txid))
		if key == nil {
			return ErrRecordNotFound
		}
		data := tx.Bucket(bucketRecords).Get(key)
		if data == nil {
			return ErrRecordNotFound
		}
		if err := decodeGob(data, &rec); err != nil {
			return fmt.Errorf("journal: decode record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns every record in append order.
func (j *Journal) List() ([]*Record, error) {
	var recs []*Record
	err := j.db.View(func(tx *bbolt.Tx) error {
		// Keys are big-endian sequence numbers, so byte order is append order.
		return tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			var rec Record
			if err := decodeGob(v, &rec); err != nil {
				return fmt.Errorf("journal: decode record in list: %w", err)
			}
			recs = append(recs, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Len returns the number of journaled broadcasts.
func (j *Journal) Len() (int, error) {
	var n int
	err := j.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketRecords).Stats().KeyN
		return nil
	})
	return n, err
}

// seqKey encodes a sequence number as an 8-byte big-endian key for sorted storage.
func seqKey(n uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, n)
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
