// Package store persists assembled codebooks in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
)

// Meta keys written alongside the codes.
const (
	MetaScheme      = "scheme"
	MetaVersion     = "version"
	MetaFingerprint = "fingerprint"
	MetaCount       = "count"
)

// Codebook is a SQLite file holding one assembled codebook.
type Codebook struct {
	db *sql.DB
}

// Open creates or opens the codebook database at path.
func Open(path string) (*Codebook, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Codebook{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return c, nil
}

// Close closes the database.
func (c *Codebook) Close() error {
	return c.db.Close()
}

func (c *Codebook) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS codes (
			word TEXT NOT NULL,
			code TEXT NOT NULL,
			frequency INTEGER NOT NULL,
			PRIMARY KEY (word, code)
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_codes_code ON codes(code);`,
	}
	for _, q := range queries {
		if _, err := c.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint hashes entries in their given order.
func Fingerprint(entries []chai.CodeEntry) uint64 {
	var buf []byte
	for _, e := range entries {
		buf = append(buf, e.Word...)
		buf = append(buf, '\t')
		buf = append(buf, e.Code...)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, e.Frequency, 10)
		buf = append(buf, '\n')
	}
	return chai.Fingerprint(buf)
}

// merge sums the frequencies of entries sharing a word and code. The first
// occurrence keeps its position.
func merge(entries []chai.CodeEntry) []chai.CodeEntry {
	type key struct{ word, code string }
	at := make(map[key]int, len(entries))
	out := make([]chai.CodeEntry, 0, len(entries))
	for _, e := range entries {
		k := key{e.Word, e.Code}
		if i, ok := at[k]; ok {
			out[i].Frequency += e.Frequency
			continue
		}
		at[k] = len(out)
		out = append(out, e)
	}
	return out
}

// Write replaces the stored codebook with entries. Entries sharing a word
// and code are stored once with their frequencies summed. meta is stored as
// given, plus the count and fingerprint of the stored entries.
func (c *Codebook) Write(ctx context.Context, entries []chai.CodeEntry, meta map[string]string) error {
	entries = merge(entries)

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{`DELETE FROM codes`, `DELETE FROM meta`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clearing codebook: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO codes (word, code, frequency) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Word, e.Code, e.Frequency); err != nil {
			return fmt.Errorf("inserting %s: %w", e.Word, err)
		}
	}

	all := make(map[string]string, len(meta)+2)
	for k, v := range meta {
		all[k] = v
	}
	all[MetaCount] = strconv.Itoa(len(entries))
	all[MetaFingerprint] = strconv.FormatUint(Fingerprint(entries), 16)
	for k, v := range all {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("writing meta %s: %w", k, err)
		}
	}

	return tx.Commit()
}

// Entries returns every stored entry sorted like assemble.SortEntries.
func (c *Codebook) Entries(ctx context.Context) ([]chai.CodeEntry, error) {
	return c.query(ctx, `SELECT word, code, frequency FROM codes ORDER BY frequency DESC, word, code`)
}

// Lookup returns the entries typed with code, most frequent first.
func (c *Codebook) Lookup(ctx context.Context, code string) ([]chai.CodeEntry, error) {
	return c.query(ctx, `SELECT word, code, frequency FROM codes WHERE code = ? ORDER BY frequency DESC, word`, code)
}

// Codes returns the entries of word, most frequent first.
func (c *Codebook) Codes(ctx context.Context, word string) ([]chai.CodeEntry, error) {
	return c.query(ctx, `SELECT word, code, frequency FROM codes WHERE word = ? ORDER BY frequency DESC, code`, word)
}

func (c *Codebook) query(ctx context.Context, q string, args ...any) ([]chai.CodeEntry, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying codes: %w", err)
	}
	defer rows.Close()

	var out []chai.CodeEntry
	for rows.Next() {
		var e chai.CodeEntry
		if err := rows.Scan(&e.Word, &e.Code, &e.Frequency); err != nil {
			return nil, fmt.Errorf("scanning code: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Meta returns the stored value of key.
func (c *Codebook) Meta(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading meta %s: %w", key, err)
	}
	return v, true, nil
}
