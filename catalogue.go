package dmgvram

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/bodgit/dmgvram/vram"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no catalogued dump matches
	ErrNotFound = errors.New("dump not found")
	// ErrAmbiguous is returned when more than one catalogued dump matches
	ErrAmbiguous = errors.New("ambiguous dump checksum")
)

// Catalogue is a SQLite database of dumps, the paths they were loaded from
// and PNG snapshots of them decoded with various options.
type Catalogue struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Entry describes a catalogued dump.
type Entry struct {
	SHA1      string
	CRC       string
	Size      int
	Paths     []string
	Snapshots []string
}

// NewCatalogue opens or creates the catalogue in file.
func NewCatalogue(file string) (*Catalogue, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	for _, stmt := range []string{
		"CREATE TABLE IF NOT EXISTS dump (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, size INTEGER NOT NULL, data BLOB NOT NULL)",
		"CREATE TABLE IF NOT EXISTS path (dump_id INTEGER NOT NULL, path TEXT NOT NULL UNIQUE, FOREIGN KEY(dump_id) REFERENCES dump(id))",
		"CREATE TABLE IF NOT EXISTS snapshot (id INTEGER PRIMARY KEY NOT NULL, dump_id INTEGER NOT NULL, options TEXT NOT NULL, image BLOB NOT NULL, UNIQUE(dump_id, options), FOREIGN KEY(dump_id) REFERENCES dump(id))",
	} {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Catalogue{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close closes the database.
func (c *Catalogue) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		c.db.Close()
		return err
	}
	return c.db.Close()
}

func (c *Catalogue) addDump(b []byte) (int64, string, error) {
	sha, crc := checksum(b)

	var id int64
	switch err := c.db.QueryRow("SELECT id FROM dump WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT INTO dump (sha1, crc, size, data) VALUES (?, ?, ?, ?)", sha, crc, len(b), c.enc.EncodeAll(b, nil))
		if err != nil {
			return 0, "", err
		}
		id, err = result.LastInsertId()
		return id, sha, err
	case nil:
		return id, sha, nil
	default:
		return 0, "", err
	}
}

func (c *Catalogue) addPath(dump int64, path string) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO path (dump_id, path) VALUES (?, ?)", dump, path); err != nil {
		return err
	}
	return nil
}

func (c *Catalogue) addSnapshot(dump int64, buf *vram.Buffer, opts *vram.Options) error {
	b := new(bytes.Buffer)
	if err := png.Encode(b, buf.Frame(opts)); err != nil {
		return err
	}
	if _, err := c.db.Exec("INSERT OR REPLACE INTO snapshot (dump_id, options, image) VALUES (?, ?, ?)", dump, opts.String(), b.Bytes()); err != nil {
		return err
	}
	return nil
}

// Record stores buf, the path it was loaded from and a snapshot decoded with
// opts, and returns the SHA-1 of the dump. Recording the same dump again
// only adds the path and snapshot.
func (c *Catalogue) Record(path string, buf *vram.Buffer, opts *vram.Options) (string, error) {
	id, sha, err := c.addDump(buf.Bytes())
	if err != nil {
		return "", err
	}

	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if err := c.addPath(id, path); err != nil {
			return "", err
		}
	}

	if err := c.addSnapshot(id, buf, opts); err != nil {
		return "", err
	}

	return sha, nil
}

// Find returns the dump whose SHA-1 starts with prefix, along with its full
// SHA-1.
func (c *Catalogue) Find(prefix string) (*vram.Buffer, string, error) {
	prefix = strings.ToUpper(prefix)
	if prefix == "" || strings.Trim(prefix, "0123456789ABCDEF") != "" {
		return nil, "", fmt.Errorf("invalid checksum %q", prefix)
	}

	rows, err := c.db.Query("SELECT sha1, data FROM dump WHERE sha1 LIKE ? LIMIT 2", prefix+"%")
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var (
		sha  string
		data []byte
		n    int
	)
	for rows.Next() {
		if err := rows.Scan(&sha, &data); err != nil {
			return nil, "", err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	switch n {
	case 0:
		return nil, "", ErrNotFound
	case 1:
	default:
		return nil, "", ErrAmbiguous
	}

	b, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, "", err
	}

	buf, err := vram.NewBuffer(b)
	if err != nil {
		return nil, "", err
	}

	return buf, sha, nil
}

func (c *Catalogue) column(query string, args ...interface{}) ([]string, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var s []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		s = append(s, v)
	}
	return s, rows.Err()
}

// Entries returns every catalogued dump in the order they were added.
func (c *Catalogue) Entries() ([]Entry, error) {
	rows, err := c.db.Query("SELECT id, sha1, crc, size FROM dump ORDER BY id")
	if err != nil {
		return nil, err
	}

	var (
		ids     []int64
		entries []Entry
	)
	for rows.Next() {
		var (
			id int64
			e  Entry
		)
		if err := rows.Scan(&id, &e.SHA1, &e.CRC, &e.Size); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i, id := range ids {
		if entries[i].Paths, err = c.column("SELECT path FROM path WHERE dump_id = ? ORDER BY path", id); err != nil {
			return nil, err
		}
		if entries[i].Snapshots, err = c.column("SELECT options FROM snapshot WHERE dump_id = ? ORDER BY options", id); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// Snapshot returns the PNG snapshot of the dump with the given SHA-1 that
// was decoded with options.
func (c *Catalogue) Snapshot(sha, options string) ([]byte, error) {
	var b []byte
	switch err := c.db.QueryRow("SELECT s.image FROM snapshot AS s JOIN dump AS d ON s.dump_id = d.id WHERE d.sha1 = ? AND s.options = ?", strings.ToUpper(sha), options).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		return b, nil
	default:
		return nil, err
	}
}
