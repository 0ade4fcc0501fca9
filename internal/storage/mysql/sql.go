package mysql

const createSnapshotsSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
  name       VARCHAR(64) NOT NULL PRIMARY KEY,
  data       LONGTEXT    NOT NULL,
  updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)
`

const upsertSnapshotSQL = `
INSERT INTO snapshots (name, data)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  data       = VALUES(data),
  updated_at = CURRENT_TIMESTAMP
`

const getSnapshotSQL = `
SELECT data FROM snapshots WHERE name = ?
`
