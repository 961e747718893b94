package dao

import "gorm.io/gorm"

// nextNumber computes the next local number for a record kind within its
// parent scope: max(column)+1 over the rows matching the scope filter, or 1
// when the scope is empty. It must run inside the same transaction as the
// subsequent insert; two concurrent creators can still read the same maximum,
// in which case the insert fails on the primary key and the caller re-reads
// the counter (allocRetries times).
func nextNumber(tx *gorm.DB, model interface{}, column string, query string, args ...interface{}) (uint, error) {
	var max uint
	err := tx.Model(model).
		Where(query, args...).
		Select("COALESCE(MAX(" + column + "), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}

	return max + 1, nil
}
