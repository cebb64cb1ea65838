package services

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/jacobjk03/Portfolio/internal/models"
)

// BoltDB implements the TranscriptStore interface using a BoltDB backend. Completed
// relay exchanges are appended to a single bucket in completion order so conversations
// can be reviewed offline.
type BoltDB struct {
	db *bolt.DB
}

var transcriptsBucket = []byte("transcripts")

// NewBoltDB creates a new BoltDB instance with the specified file path. It initializes
// the transcripts bucket and returns an error if the database cannot be opened or
// initialized. The database file is created with 0600 permissions if it doesn't exist.
func NewBoltDB(path string) (BoltDB, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return BoltDB{}, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(transcriptsBucket)
		return err
	})

	return BoltDB{db: db}, err
}

// AddExchange appends a completed exchange to the transcripts bucket. It generates a
// unique ID for the exchange by combining a sequence number with the exchange's
// original ID, and returns the new ID or an error if the operation fails.
func (b BoltDB) AddExchange(_ context.Context, exchange models.Exchange) (string, error) {
	var newID string
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(transcriptsBucket)
		if bkt == nil {
			return nil
		}

		idPrefix, err := bkt.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}
		newID = fmt.Sprintf("%d-%s", idPrefix, exchange.ID)
		exchange.ID = newID

		v, err := json.Marshal(exchange)
		if err != nil {
			return fmt.Errorf("failed to marshal exchange: %w", err)
		}

		return bkt.Put([]byte(newID), v)
	})

	return newID, err
}

// Exchanges retrieves all stored exchanges in their stored order, or an error if the
// database operation fails.
func (b BoltDB) Exchanges(context.Context) ([]models.Exchange, error) {
	var exchanges []models.Exchange
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(transcriptsBucket)
		if bkt == nil {
			return nil
		}

		return bkt.ForEach(func(_, v []byte) error {
			var exchange models.Exchange
			if err := json.Unmarshal(v, &exchange); err != nil {
				return fmt.Errorf("failed to unmarshal exchange: %w", err)
			}
			exchanges = append(exchanges, exchange)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return exchanges, nil
}

// Close releases the underlying database file.
func (b BoltDB) Close() error {
	return b.db.Close()
}
