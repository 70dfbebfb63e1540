package storage

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"senametas/metas"
)

// Store persists snapshot records as JSON documents grouped by collection.
type Store struct {
	db *sql.DB
}

// Replace-phase sentinels: a failed delete leaves the old snapshot intact,
// a failed insert rolls back to it, but callers want to know which step
// broke.
var (
	ErrDeletePhase = errors.New("snapshot delete phase failed")
	ErrInsertPhase = errors.New("snapshot insert phase failed")
)

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	collection TEXT NOT NULL,
	seq INTEGER NOT NULL,
	body TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_collection_seq ON documents(collection, seq);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ReplaceCollection swaps the full contents of a collection for the given
// records, preserving their order. Delete and insert run in one transaction,
// so concurrent readers of the same collection see either the old snapshot
// or the new one, never a mix or an empty window. Returns the number of
// inserted documents.
func (s *Store) ReplaceCollection(name string, records []metas.Record) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("collection name must not be empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin replace transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM documents WHERE collection = ?;`, name); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("%w: collection %s: %v", ErrDeletePhase, name, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO documents (collection, seq, body) VALUES (?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("%w: prepare insert: %v", ErrInsertPhase, err)
	}
	defer stmt.Close()

	for seq, record := range records {
		body, err := json.Marshal(record)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("%w: marshal document %d: %v", ErrInsertPhase, seq, err)
		}
		if _, err := stmt.Exec(name, seq, string(body)); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("%w: collection %s document %d: %v", ErrInsertPhase, name, seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", ErrInsertPhase, err)
	}

	return len(records), nil
}

// Page is one slice of a collection read in stored order.
type Page struct {
	Total   int
	Records []metas.Record
}

// ReadPage returns the slice [offset, offset+limit) of the collection in
// stored order plus the total document count. A negative limit means "to
// the end". An offset beyond the total yields an empty page, not an error.
func (s *Store) ReadPage(name string, offset, limit int) (Page, error) {
	var page Page
	if offset < 0 {
		return page, fmt.Errorf("offset must be >= 0")
	}
	if limit < 0 {
		limit = -1 // sqlite: no limit
	}

	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM documents WHERE collection = ?;`, name,
	).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count documents in %s: %w", name, err)
	}

	rows, err := s.db.Query(
		`SELECT body FROM documents WHERE collection = ? ORDER BY seq LIMIT ? OFFSET ?;`,
		name, limit, offset,
	)
	if err != nil {
		return page, fmt.Errorf("query documents in %s: %w", name, err)
	}
	defer rows.Close()

	page.Records = make([]metas.Record, 0, 64)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return page, fmt.Errorf("scan document: %w", err)
		}
		record, err := decodeRecord(body)
		if err != nil {
			return page, fmt.Errorf("decode document in %s: %w", name, err)
		}
		page.Records = append(page.Records, record)
	}
	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("iterate documents in %s: %w", name, err)
	}

	return page, nil
}

// CollectionInfo summarizes one stored collection.
type CollectionInfo struct {
	Name      string `json:"name"`
	Documents int    `json:"documents"`
}

func (s *Store) ListCollections() ([]CollectionInfo, error) {
	rows, err := s.db.Query(
		`SELECT collection, COUNT(*) FROM documents GROUP BY collection ORDER BY collection;`)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	infos := make([]CollectionInfo, 0, 8)
	for rows.Next() {
		var info CollectionInfo
		if err := rows.Scan(&info.Name, &info.Documents); err != nil {
			return nil, fmt.Errorf("scan collection info: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}

	return infos, nil
}

// decodeRecord restores the field typing JSON flattens away: metric fields
// (M_*) are always float64, identification values come back as int64 when
// integral.
func decodeRecord(body string) (metas.Record, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(body)))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}

	record := make(metas.Record, len(raw))
	for field, value := range raw {
		number, ok := value.(json.Number)
		if !ok {
			record[field] = value
			continue
		}

		if strings.HasPrefix(field, metas.MetricFieldPrefix) {
			parsed, err := number.Float64()
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field, err)
			}
			record[field] = parsed
			continue
		}

		if parsed, err := number.Int64(); err == nil {
			record[field] = parsed
			continue
		}
		parsed, err := number.Float64()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		record[field] = parsed
	}

	return record, nil
}
