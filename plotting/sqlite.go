package plotting

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS profiles (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	figure      TEXT NOT NULL,
	position    INTEGER NOT NULL,
	label       TEXT NOT NULL,
	source      TEXT NOT NULL,
	field       TEXT NOT NULL,
	time_window TEXT NOT NULL,
	snapshot    INTEGER NOT NULL,
	created     TEXT NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS profile_values (
	profile_id INTEGER NOT NULL REFERENCES profiles(id),
	idx        INTEGER NOT NULL,
	depth      REAL NOT NULL,
	value      REAL NOT NULL,
	PRIMARY KEY (profile_id, idx)
)`,
}

// SQLiteSink appends every rendered series to an archive database
type SQLiteSink struct {
	Path string
}

func (ss SQLiteSink) Render(fig *Figure) (err error) {
	var (
		db  *sql.DB
		tx  *sql.Tx
		now = time.Now().UTC().Format(time.RFC3339)
	)
	if err = ensureDir(ss.Path); err != nil {
		return
	}
	if db, err = sql.Open("sqlite", ss.Path); err != nil {
		return writeErr(ss.Path, err)
	}
	defer db.Close()
	for _, stmt := range sqliteSchema {
		if _, err = db.Exec(stmt); err != nil {
			return writeErr(ss.Path, err)
		}
	}
	if tx, err = db.Begin(); err != nil {
		return writeErr(ss.Path, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for i, s := range fig.Series {
		var (
			res      sql.Result
			id       int64
			snapshot int
		)
		if s.Snapshot {
			snapshot = 1
		}
		if res, err = tx.Exec(`INSERT INTO profiles
			(figure, position, label, source, field, time_window, snapshot, created)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			fig.Output, i, s.Label, s.Source, s.Field, s.Window.String(), snapshot, now); err != nil {
			return writeErr(ss.Path, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return writeErr(ss.Path, err)
		}
		for j, v := range s.Values {
			if _, err = tx.Exec(`INSERT INTO profile_values (profile_id, idx, depth, value)
				VALUES (?, ?, ?, ?)`, id, j, s.Depth[j], v); err != nil {
				return writeErr(ss.Path, err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return writeErr(ss.Path, err)
	}
	return
}
