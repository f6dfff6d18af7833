package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NickyBoy89/cfc/symbol"
	_ "modernc.org/sqlite"
)

// DefaultPath is where the index is stored, relative to the project
const DefaultPath = ".cfc/index.db"

// ErrClassNotFound is returned when querying a class that was never indexed
var ErrClassNotFound = errors.New("class not indexed")

// Store handles persistence of compiled class hierarchies to SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates or opens an index database at the given path, creating its
// directory if necessary.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys and WAL mode for better performance
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	// Create schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DBPath returns the path to the database file.
func (s *Store) DBPath() string {
	return s.dbPath
}

// Clear removes all data from the database (for re-indexing).
func (s *Store) Clear() error {
	tables := []string{"method_slots", "member_vars", "classes", "parcels", "metadata"}
	for _, table := range tables {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing table %s: %w", table, err)
		}
	}
	return nil
}

// SaveHierarchy stores every class of a ladder, along with its parcel, method
// table, and member variables. The classes must have been grown, and are
// stored in the order given
func (s *Store) SaveHierarchy(ladder []*symbol.Class) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	batch := &BatchTx{tx: tx}
	for position, class := range ladder {
		if err := batch.InsertClass(class, position); err != nil {
			tx.Rollback()
			return fmt.Errorf("saving %s: %w", class.Name(), err)
		}
	}
	return tx.Commit()
}

// BatchTx wraps a transaction for batch inserts.
type BatchTx struct {
	tx *sql.Tx
}

// InsertParcel inserts or updates a parcel within the batch.
func (b *BatchTx) InsertParcel(parcel *symbol.Parcel) error {
	_, err := b.tx.Exec(`
		INSERT INTO parcels (name, nickname, prefix, upper_prefix, caps_prefix, included)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			nickname = excluded.nickname,
			prefix = excluded.prefix,
			upper_prefix = excluded.upper_prefix,
			caps_prefix = excluded.caps_prefix,
			included = excluded.included
	`, parcel.Name(), parcel.Nickname(), parcel.Prefix(), parcel.UpperPrefix(), parcel.CapsPrefix(), parcel.Included())
	return err
}

// InsertClass inserts a grown class, its parcel, its method table, and its
// member variables within the batch.
func (b *BatchTx) InsertClass(class *symbol.Class, position int) error {
	if !class.TreeGrown() {
		return fmt.Errorf("class %s has not been grown", class.Name())
	}
	if err := b.InsertParcel(class.Parcel()); err != nil {
		return err
	}

	var parent any
	if p := class.Parent(); p != nil {
		parent = p.Name()
	}
	if _, err := b.tx.Exec(`
		INSERT INTO classes (name, parcel, position, parent, nickname, full_struct_sym,
			full_vtable_var, full_ivars_offset, include_h, final, inert)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, class.Name(), class.Parcel().Name(), position, parent, class.Nickname(), class.FullStructSym(),
		class.FullVtableVar(), class.FullIvarsOffset(), class.IncludeH(), class.Final(), class.Inert()); err != nil {
		return err
	}

	for ind, slot := range class.MethodTable() {
		method := slot.Method
		declarer := declaringClass(class, method)
		if declarer == nil {
			return fmt.Errorf("no ancestor of %s declares %s", class.Name(), method)
		}
		if _, err := b.tx.Exec(`
			INSERT INTO method_slots (class, slot, macro_sym, kind, declared_in, full_method_sym,
				imp_func, final, abstract)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, class.Name(), ind, method.MacroSym(), slot.Kind.String(), declarer.Name(),
			method.FullMethodSym(class), method.ImpFunc(declarer), method.Final(), method.Abstract()); err != nil {
			return err
		}
	}

	for ind, variable := range class.MemberVars() {
		if _, err := b.tx.Exec(`
			INSERT INTO member_vars (class, position, name, type, declared_in)
			VALUES (?, ?, ?, ?, ?)
		`, class.Name(), ind, variable.MicroSym(), variable.Type(), variable.ClassName()); err != nil {
			return err
		}
	}
	return nil
}

// declaringClass finds the class that declared a method, starting from a class
// that has it in its method table
func declaringClass(class *symbol.Class, method *symbol.Method) *symbol.Class {
	for ; class != nil; class = class.Parent() {
		if class.Name() == method.ClassName() {
			return class
		}
	}
	return nil
}

// Ladder returns every indexed class, in ladder order.
func (s *Store) Ladder() ([]Class, error) {
	rows, err := s.db.Query(`
		SELECT name, parcel, position, COALESCE(parent, ''), nickname, full_struct_sym,
			full_vtable_var, full_ivars_offset, include_h, final, inert
		FROM classes ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	defer rows.Close()

	classes := []Class{}
	for rows.Next() {
		var c Class
		if err := rows.Scan(&c.Name, &c.Parcel, &c.Position, &c.Parent, &c.Nickname, &c.FullStructSym,
			&c.FullVtableVar, &c.FullIvarsOffset, &c.IncludeH, &c.Final, &c.Inert); err != nil {
			return nil, fmt.Errorf("scanning class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Parcels returns every indexed parcel, by name.
func (s *Store) Parcels() ([]Parcel, error) {
	rows, err := s.db.Query(`
		SELECT name, nickname, prefix, upper_prefix, caps_prefix, included
		FROM parcels ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying parcels: %w", err)
	}
	defer rows.Close()

	parcels := []Parcel{}
	for rows.Next() {
		var p Parcel
		if err := rows.Scan(&p.Name, &p.Nickname, &p.Prefix, &p.UpperPrefix, &p.CapsPrefix, &p.Included); err != nil {
			return nil, fmt.Errorf("scanning parcel: %w", err)
		}
		parcels = append(parcels, p)
	}
	return parcels, rows.Err()
}

// hasClass reports whether a class was indexed.
func (s *Store) hasClass(className string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM classes WHERE name = ?", className).Scan(&count)
	return count > 0, err
}

// MethodTable returns a class's method table, in slot order.
func (s *Store) MethodTable(className string) ([]MethodSlot, error) {
	if found, err := s.hasClass(className); err != nil {
		return nil, err
	} else if !found {
		return nil, fmt.Errorf("%s: %w", className, ErrClassNotFound)
	}

	rows, err := s.db.Query(`
		SELECT class, slot, macro_sym, kind, declared_in, full_method_sym, imp_func, final, abstract
		FROM method_slots WHERE class = ? ORDER BY slot
	`, className)
	if err != nil {
		return nil, fmt.Errorf("querying method slots: %w", err)
	}
	defer rows.Close()

	slots := []MethodSlot{}
	for rows.Next() {
		var m MethodSlot
		if err := rows.Scan(&m.Class, &m.Slot, &m.MacroSym, &m.Kind, &m.DeclaredIn, &m.FullMethodSym,
			&m.ImpFunc, &m.Final, &m.Abstract); err != nil {
			return nil, fmt.Errorf("scanning method slot: %w", err)
		}
		slots = append(slots, m)
	}
	return slots, rows.Err()
}

// MemberVars returns a class's member variables, in layout order.
func (s *Store) MemberVars(className string) ([]MemberVar, error) {
	if found, err := s.hasClass(className); err != nil {
		return nil, err
	} else if !found {
		return nil, fmt.Errorf("%s: %w", className, ErrClassNotFound)
	}

	rows, err := s.db.Query(`
		SELECT class, position, name, type, declared_in
		FROM member_vars WHERE class = ? ORDER BY position
	`, className)
	if err != nil {
		return nil, fmt.Errorf("querying member vars: %w", err)
	}
	defer rows.Close()

	vars := []MemberVar{}
	for rows.Next() {
		var v MemberVar
		if err := rows.Scan(&v.Class, &v.Position, &v.Name, &v.Type, &v.DeclaredIn); err != nil {
			return nil, fmt.Errorf("scanning member var: %w", err)
		}
		vars = append(vars, v)
	}
	return vars, rows.Err()
}

// SetMetadata stores a key-value pair in the metadata table.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// GetMetadata retrieves a value from the metadata table.
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	return value, err
}
