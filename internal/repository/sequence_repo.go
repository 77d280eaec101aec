package repository

import (
	"gorm.io/gorm"
)

type SequenceRepository interface {
	Next(tx *gorm.DB, key string) (int64, error)
}

type sequenceRepo struct {
	db *gorm.DB
}

func NewSequenceRepo(db *gorm.DB) SequenceRepository {
	return &sequenceRepo{db}
}

// Next atomically increments the durable counter for a key and returns the
// new value. The upsert takes a row lock on the counter, so concurrent
// callers for the same key serialize here and never see the same number.
// Must run inside the transaction that creates the owning document: if that
// transaction aborts, the increment rolls back with it.
func (r *sequenceRepo) Next(tx *gorm.DB, key string) (int64, error) {
	var value int64
	err := tx.Raw(`
		INSERT INTO document_sequences (key, value)
		VALUES (?, 1)
		ON CONFLICT (key) DO UPDATE SET value = document_sequences.value + 1
		RETURNING value
	`, key).Scan(&value).Error
	return value, err
}
