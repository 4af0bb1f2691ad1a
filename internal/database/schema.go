package database

// SnapshotsSQL holds the last good dataset per record kind.
// Kept to column types both MySQL and SQLite accept.
const SnapshotsSQL = `
CREATE TABLE IF NOT EXISTS app_snapshots (
    kind VARCHAR(32) NOT NULL PRIMARY KEY,
    source VARCHAR(64) NOT NULL,
    record_count INT NOT NULL,
    payload TEXT NOT NULL,
    captured_at BIGINT NOT NULL
)`

// SetupSchema creates the snapshot table
func (db *DB) SetupSchema() error {
	if _, err := db.Exec(SnapshotsSQL); err != nil {
		return err
	}
	return nil
}

// DropSchema removes the snapshot table
func (db *DB) DropSchema() error {
	_, err := db.Exec("DROP TABLE IF EXISTS app_snapshots")
	return err
}
