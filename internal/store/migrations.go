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

CREATE TABLE IF NOT EXISTS ignored_prs (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS action_log (
	id          TEXT PRIMARY KEY,
	batch_id    TEXT NOT NULL,
	entry_index INTEGER NOT NULL,
	entry_kind  TEXT NOT NULL,
	action      TEXT NOT NULL,
	url         TEXT NOT NULL DEFAULT '',
	remote      INTEGER NOT NULL DEFAULT 0,
	error       TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_action_log_created ON action_log(created_at);
CREATE INDEX IF NOT EXISTS idx_action_log_batch ON action_log(batch_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
