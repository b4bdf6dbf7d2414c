// Package dispatchrepo persists the assignment engine's round-robin cursor.
package dispatchrepo

// DispatchStateDTO is the single-row table holding the shared round-robin
// cursor. The fixed primary key keeps it one row; reads and writes run inside
// the reservation transaction, so the row also serializes concurrent
// assignments at the database level.
type DispatchStateDTO struct {
	ID     int `gorm:"primaryKey"`
	Cursor int
}

// TableName specifies the database table name for the dispatch state.
func (DispatchStateDTO) TableName() string {
	return "dispatch_state"
}

// dispatchStateRowID is the fixed primary key of the only row.
const dispatchStateRowID = 1
