package repository

import (
	"hotelhub/internal/domain"

	"gorm.io/gorm"
)

// Models lists every table this package owns, in dependency order, for
// gorm AutoMigrate.
func Models() []any {
	return []any{
		&userModel{},
		&hotelModel{},
		&bookingModel{},
		&domain.RefreshToken{},
	}
}

// Migrate creates the schema. On Postgres it also installs the exclusion
// constraint behind the overbooking backstop: the in-transaction conflict
// check runs first, the constraint rejects any insert that races past it.
// SQLite serializes writers, so it carries no equivalent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	var cnt int64
	if err := db.Raw(
		`SELECT COUNT(*) FROM pg_constraint WHERE conname = ?`, "bookings_no_overlap",
	).Scan(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	return db.Exec(
		`ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (
				hotel_id WITH =,
				tstzrange(check_in, check_out, '[)') WITH &&
			) WHERE (status IN ('pending', 'confirmed'))`,
	).Error
}
