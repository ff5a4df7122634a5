// CLAUDE:SUMMARY SQLite-backed article store: seed, add-as-new, upsert, get, ordered list and delete.
package article

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an article ID is not in the store.
var ErrNotFound = errors.New("article not found")

// Store keeps articles in a SQLite table.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at path and ensures the
// articles table exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open article store: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS articles (
		id                 TEXT PRIMARY KEY,
		date               TEXT NOT NULL DEFAULT '',
		title              TEXT NOT NULL DEFAULT '',
		original_content   TEXT NOT NULL DEFAULT '',
		simplified_content TEXT NOT NULL DEFAULT '',
		category           TEXT NOT NULL DEFAULT '',
		source             TEXT NOT NULL DEFAULT '',
		url                TEXT NOT NULL DEFAULT '',
		is_new             INTEGER NOT NULL DEFAULT 0,
		position           INTEGER NOT NULL,
		created_at         INTEGER NOT NULL,
		updated_at         INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create articles table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the SQLite connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seed appends articles whose ID is not already present. Existing rows are
// left untouched so admin edits survive restarts. It returns how many were
// added.
func (s *Store) Seed(articles []*Article) (int, error) {
	const q = `INSERT OR IGNORE INTO articles
		(id, date, title, original_content, simplified_content, category, source, url, is_new, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM articles), ?, ?)`

	now := time.Now().Unix()
	added := 0
	for _, a := range articles {
		if a == nil || a.ID == "" {
			continue
		}
		res, err := s.db.Exec(q, a.ID, a.Date, a.Title, a.OriginalContent, a.SimplifiedContent,
			a.Category, a.Source, a.URL, a.IsNew, now, now)
		if err != nil {
			return added, fmt.Errorf("seed %s: %w", a.ID, err)
		}
		n, _ := res.RowsAffected()
		added += int(n)
	}
	return added, nil
}

// Add stores a at the head of the list: it is marked new and every other
// article loses its new flag. An empty ID is replaced with a generated one.
func (s *Store) Add(a *Article) (*Article, error) {
	stored := *a
	if stored.ID == "" {
		stored.ID = NewID()
	}
	stored.IsNew = true

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin add %s: %w", stored.ID, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE articles SET is_new = 0 WHERE is_new != 0`); err != nil {
		return nil, fmt.Errorf("clear new flags: %w", err)
	}
	now := time.Now().Unix()
	_, err = tx.Exec(`INSERT INTO articles
		(id, date, title, original_content, simplified_content, category, source, url, is_new, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, (SELECT COALESCE(MIN(position), 1) - 1 FROM articles), ?, ?)`,
		stored.ID, stored.Date, stored.Title, stored.OriginalContent, stored.SimplifiedContent,
		stored.Category, stored.Source, stored.URL, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", stored.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add %s: %w", stored.ID, err)
	}
	return &stored, nil
}

// Upsert appends a, or replaces the stored article with the same ID in place.
func (s *Store) Upsert(a *Article) (*Article, error) {
	stored := *a
	if stored.ID == "" {
		stored.ID = NewID()
	}
	now := time.Now().Unix()
	_, err := s.db.Exec(`INSERT INTO articles
		(id, date, title, original_content, simplified_content, category, source, url, is_new, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM articles), ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			title = excluded.title,
			original_content = excluded.original_content,
			simplified_content = excluded.simplified_content,
			category = excluded.category,
			source = excluded.source,
			url = excluded.url,
			is_new = excluded.is_new,
			updated_at = excluded.updated_at`,
		stored.ID, stored.Date, stored.Title, stored.OriginalContent, stored.SimplifiedContent,
		stored.Category, stored.Source, stored.URL, stored.IsNew, now, now)
	if err != nil {
		return nil, fmt.Errorf("upsert %s: %w", stored.ID, err)
	}
	return &stored, nil
}

const selectColumns = `SELECT id, date, title, original_content, simplified_content, category, source, url, is_new FROM articles`

// Get returns the article with the given ID, or ErrNotFound.
func (s *Store) Get(id string) (*Article, error) {
	row := s.db.QueryRow(selectColumns+` WHERE id = ?`, id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return a, nil
}

// List returns every article in list order.
func (s *Store) List() ([]*Article, error) {
	rows, err := s.db.Query(selectColumns + ` ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var out []*Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an article, or returns ErrNotFound.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of stored articles.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*Article, error) {
	var a Article
	if err := row.Scan(&a.ID, &a.Date, &a.Title, &a.OriginalContent, &a.SimplifiedContent,
		&a.Category, &a.Source, &a.URL, &a.IsNew); err != nil {
		return nil, err
	}
	return &a, nil
}
