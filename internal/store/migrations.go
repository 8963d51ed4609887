package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS reminders (
	id            TEXT PRIMARY KEY,
	session_id    TEXT NOT NULL DEFAULT '',
	assignment_id TEXT NOT NULL DEFAULT '',
	kind          TEXT NOT NULL CHECK(kind IN ('study', 'assignment')),
	message       TEXT NOT NULL,
	read          INTEGER NOT NULL DEFAULT 0 CHECK(read IN (0, 1)),
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reminders_read ON reminders(read);
CREATE INDEX IF NOT EXISTS idx_reminders_created ON reminders(created_at);
CREATE INDEX IF NOT EXISTS idx_reminders_assignment ON reminders(assignment_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
