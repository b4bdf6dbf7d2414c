package dispatchrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDispatchStateRepository implements DispatchStateRepository using GORM.
type GormDispatchStateRepository struct {
	db *gorm.DB
}

// NewGormDispatchStateRepository creates a new GORM dispatch state repository.
func NewGormDispatchStateRepository(db *gorm.DB) *GormDispatchStateRepository {
	return &GormDispatchStateRepository{db: db}
}

// GetCursor returns the last-selected index, or -1 when no assignment has
// been made yet. The row is locked for update so two reservations in flight
// serialize on it instead of both reading the same cursor.
func (r *GormDispatchStateRepository) GetCursor(ctx context.Context) (int, error) {
	var dto DispatchStateDTO
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, cursor FROM dispatch_state WHERE id = ? FOR UPDATE`, dispatchStateRowID).
		Scan(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return -1, nil
		}
		return 0, err
	}
	if dto.ID == 0 {
		// Raw().Scan leaves the struct zeroed when the row does not exist.
		return -1, nil
	}

	return dto.Cursor, nil
}

// SetCursor stores the last-selected index, creating the row on first use.
func (r *GormDispatchStateRepository) SetCursor(ctx context.Context, cursor int) error {
	dto := DispatchStateDTO{ID: dispatchStateRowID, Cursor: cursor}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"cursor"}),
		}).
		Create(&dto).Error
}
