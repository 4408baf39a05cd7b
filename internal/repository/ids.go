package repository

import (
	"encoding/binary"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NumericID derives the synthetic integer id exposed through the REST
// surface from a Mongo ObjectID: the 4 timestamp bytes shifted left
// past the 3 counter bytes. Ids are positive, ordered by insertion
// time, and unique for ids minted by one process (the counter is
// monotonic). The value is persisted on the document under numeric_id
// with a unique index and used for all public lookups.
func NumericID(oid primitive.ObjectID) int64 {
	ts := int64(binary.BigEndian.Uint32(oid[0:4]))
	counter := int64(oid[9])<<16 | int64(oid[10])<<8 | int64(oid[11])
	return ts<<24 | counter
}
