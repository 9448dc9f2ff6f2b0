package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface.
type Storage struct {
	db *sql.DB
}

// Open opens (and if necessary bootstraps) a SQLite store at the given
// path. The path ":memory:" opens a transient database, useful for tests.
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// The store is single-writer by design; a single connection also
	// sidesteps SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Storage{db: db}
	if err := s.bootstrap(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	uuid INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	currency INTEGER NOT NULL DEFAULT 0,
	logged_status INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS inventory (
	uuid INTEGER NOT NULL REFERENCES users(uuid),
	item_name TEXT NOT NULL,
	item_type TEXT NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_inventory_user_type ON inventory(uuid, item_type);

CREATE TABLE IF NOT EXISTS placed_furniture (
	uuid INTEGER NOT NULL REFERENCES users(uuid),
	name TEXT NOT NULL,
	orientation_index INTEGER NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	z INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_placed_user ON placed_furniture(uuid);

CREATE TABLE IF NOT EXISTS equipped_clothes (
	uuid INTEGER PRIMARY KEY REFERENCES users(uuid),
	head TEXT,
	torso TEXT,
	legs TEXT,
	feet TEXT
);
`

func (s *Storage) bootstrap() error {
	_, err := s.db.Exec(schema)
	return err
}

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string, currency int, layout []*model.PlacedInstance) (model.UserID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create user: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (username, password, currency, logged_status) VALUES (?, ?, ?, 0)`,
		username, passwordHash, currency,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user id: %w", err)
	}
	uuid := model.UserID(id)

	for _, inst := range layout {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO placed_furniture (uuid, name, orientation_index, x, y, z) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid, string(inst.Name), inst.OrientationIndex, inst.X, inst.Y, inst.Z,
		); err != nil {
			return 0, fmt.Errorf("seed layout: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO equipped_clothes (uuid, head, torso, legs, feet) VALUES (?, NULL, NULL, NULL, NULL)`,
		uuid,
	); err != nil {
		return 0, fmt.Errorf("seed equipped row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create user: %w", err)
	}
	return uuid, nil
}

func (s *Storage) GetUser(ctx context.Context, uuid model.UserID) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT uuid, username, password, currency, logged_status FROM users WHERE uuid = ?`, uuid)
	return scanUser(row)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT uuid, username, password, currency, logged_status FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var logged int
	if err := row.Scan(&user.UUID, &user.Username, &user.PasswordHash, &user.Currency, &logged); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.LoggedIn = logged != 0
	return &user, nil
}

func (s *Storage) SetLoggedStatus(ctx context.Context, uuid model.UserID, loggedIn bool) error {
	status := 0
	if loggedIn {
		status = 1
	}
	return s.execForUser(ctx, `UPDATE users SET logged_status = ? WHERE uuid = ?`, status, uuid)
}

func (s *Storage) SaveCurrency(ctx context.Context, uuid model.UserID, currency int) error {
	return s.execForUser(ctx, `UPDATE users SET currency = ? WHERE uuid = ?`, currency, uuid)
}

func (s *Storage) LoadCurrency(ctx context.Context, uuid model.UserID) (int, error) {
	var currency int
	err := s.db.QueryRowContext(ctx, `SELECT currency FROM users WHERE uuid = ?`, uuid).Scan(&currency)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, model.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load currency: %w", err)
	}
	return currency, nil
}

// execForUser runs an UPDATE keyed by uuid and maps zero affected rows to
// ErrUserNotFound.
func (s *Storage) execForUser(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (s *Storage) SaveFurniture(ctx context.Context, uuid model.UserID, inventory []model.ItemName, placed []*model.PlacedInstance) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save furniture: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM inventory WHERE uuid = ? AND item_type = ?`, uuid, string(model.KindFurniture)); err != nil {
		return fmt.Errorf("clear furniture inventory: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM placed_furniture WHERE uuid = ?`, uuid); err != nil {
		return fmt.Errorf("clear placed furniture: %w", err)
	}

	counts := model.CompressInventory(inventory)
	names := make([]model.ItemName, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (uuid, item_name, item_type, quantity) VALUES (?, ?, ?, ?)`,
			uuid, string(name), string(model.KindFurniture), counts[name],
		); err != nil {
			return fmt.Errorf("insert furniture inventory: %w", err)
		}
	}

	for _, inst := range placed {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO placed_furniture (uuid, name, orientation_index, x, y, z) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid, string(inst.Name), inst.OrientationIndex, inst.X, inst.Y, inst.Z,
		); err != nil {
			return fmt.Errorf("insert placed furniture: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save furniture: %w", err)
	}
	return nil
}

func (s *Storage) LoadFurniture(ctx context.Context, uuid model.UserID) ([]model.ItemName, []*model.PlacedInstance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_name, quantity FROM inventory WHERE uuid = ? AND item_type = ? ORDER BY item_name`,
		uuid, string(model.KindFurniture))
	if err != nil {
		return nil, nil, fmt.Errorf("query furniture inventory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.ItemName]int)
	for rows.Next() {
		var name string
		var quantity int
		if err := rows.Scan(&name, &quantity); err != nil {
			return nil, nil, fmt.Errorf("scan furniture inventory: %w", err)
		}
		counts[model.ItemName(name)] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate furniture inventory: %w", err)
	}
	inventory := model.ExpandInventory(counts)

	placedRows, err := s.db.QueryContext(ctx,
		`SELECT name, orientation_index, x, y, z FROM placed_furniture WHERE uuid = ? ORDER BY z, rowid`,
		uuid)
	if err != nil {
		return nil, nil, fmt.Errorf("query placed furniture: %w", err)
	}
	defer func() { _ = placedRows.Close() }()

	var placed []*model.PlacedInstance
	for placedRows.Next() {
		inst := &model.PlacedInstance{}
		var name string
		if err := placedRows.Scan(&name, &inst.OrientationIndex, &inst.X, &inst.Y, &inst.Z); err != nil {
			return nil, nil, fmt.Errorf("scan placed furniture: %w", err)
		}
		inst.Name = model.ItemName(name)
		placed = append(placed, inst)
	}
	if err := placedRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate placed furniture: %w", err)
	}

	return inventory, placed, nil
}

func (s *Storage) SaveClothes(ctx context.Context, uuid model.UserID, inventory []model.ItemName, equipped map[model.Category]model.ItemName) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save clothes: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM inventory WHERE uuid = ? AND item_type = ?`, uuid, string(model.KindClothing)); err != nil {
		return fmt.Errorf("clear clothing inventory: %w", err)
	}
	for _, name := range inventory {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (uuid, item_name, item_type, quantity) VALUES (?, ?, ?, 1)`,
			uuid, string(name), string(model.KindClothing),
		); err != nil {
			return fmt.Errorf("insert clothing inventory: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE equipped_clothes SET head = ?, torso = ?, legs = ?, feet = ? WHERE uuid = ?`,
		nullable(equipped[model.CategoryHead]),
		nullable(equipped[model.CategoryTorso]),
		nullable(equipped[model.CategoryLegs]),
		nullable(equipped[model.CategoryFeet]),
		uuid,
	); err != nil {
		return fmt.Errorf("update equipped clothes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save clothes: %w", err)
	}
	return nil
}

func (s *Storage) LoadClothes(ctx context.Context, uuid model.UserID) ([]model.ItemName, map[model.Category]model.ItemName, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_name FROM inventory WHERE uuid = ? AND item_type = ? ORDER BY rowid`,
		uuid, string(model.KindClothing))
	if err != nil {
		return nil, nil, fmt.Errorf("query clothing inventory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var inventory []model.ItemName
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, nil, fmt.Errorf("scan clothing inventory: %w", err)
		}
		inventory = append(inventory, model.ItemName(name))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate clothing inventory: %w", err)
	}

	equipped := model.EmptyOutfit()
	var head, torso, legs, feet sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT head, torso, legs, feet FROM equipped_clothes WHERE uuid = ?`, uuid).
		Scan(&head, &torso, &legs, &feet)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("query equipped clothes: %w", err)
	}
	if err == nil {
		equipped[model.CategoryHead] = model.ItemName(head.String)
		equipped[model.CategoryTorso] = model.ItemName(torso.String)
		equipped[model.CategoryLegs] = model.ItemName(legs.String)
		equipped[model.CategoryFeet] = model.ItemName(feet.String)
	}

	return inventory, equipped, nil
}

// nullable maps the empty slot value to NULL.
func nullable(name model.ItemName) sql.NullString {
	if name == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(name), Valid: true}
}

// isUniqueViolation detects a UNIQUE constraint failure without tying the
// code to the driver's error type.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
