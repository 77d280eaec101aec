package model

// DocumentSequence is the durable counter row behind document numbering.
// The value is only ever incremented inside the transaction that creates
// the owning document, so an aborted transaction rolls the counter back
// with it.
type DocumentSequence struct {
	Key   string `gorm:"type:varchar(30);primary_key" json:"key"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}
