package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/weekplan/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteGateway stores each record as one JSON blob keyed by name.
type SQLiteGateway struct {
	db *sql.DB
}

func NewSQLiteGateway(db *sql.DB) (*SQLiteGateway, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteGateway{db: db}, nil
}

// OpenSQLite opens the database at path and applies migrations.
func OpenSQLite(path string) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	gw, err := NewSQLiteGateway(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return gw, nil
}

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

type storedWeek map[string][]model.Task

func (g *SQLiteGateway) SaveStore(snapshot map[model.Weekday][]model.Task) error {
	week := make(storedWeek, len(snapshot))
	for day, tasks := range snapshot {
		week[string(day)] = tasks
	}
	payload, err := json.Marshal(week)
	if err != nil {
		return fmt.Errorf("encode task store: %w", err)
	}
	return g.putRecord(keyTasks, payload)
}

// LoadStore reads the persisted week. A missing record yields an empty
// but fully populated week; a record that will not decode returns
// ErrCorrupt.
func (g *SQLiteGateway) LoadStore() (map[model.Weekday][]model.Task, error) {
	out := make(map[model.Weekday][]model.Task, 7)
	for _, day := range model.AllWeekdays() {
		out[day] = make([]model.Task, 0)
	}

	payload, err := g.getRecord(keyTasks)
	if errors.Is(err, ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	var week storedWeek
	if err := json.Unmarshal(payload, &week); err != nil {
		return nil, fmt.Errorf("%w: task store: %v", ErrCorrupt, err)
	}
	for raw, tasks := range week {
		day, parseErr := model.ParseWeekday(raw)
		if parseErr != nil {
			continue
		}
		out[day] = tasks
	}
	return out, nil
}

type storedSound struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

func (g *SQLiteGateway) SaveSound(s model.AlarmSound) error {
	payload, err := json.Marshal(storedSound{Name: s.Name, Data: s.Data})
	if err != nil {
		return fmt.Errorf("encode alarm sound: %w", err)
	}
	return g.putRecord(keyAlarmSound, payload)
}

func (g *SQLiteGateway) LoadSound() (model.AlarmSound, error) {
	payload, err := g.getRecord(keyAlarmSound)
	if err != nil {
		return model.AlarmSound{}, err
	}
	var s storedSound
	if err := json.Unmarshal(payload, &s); err != nil {
		return model.AlarmSound{}, fmt.Errorf("%w: alarm sound: %v", ErrCorrupt, err)
	}
	return model.AlarmSound{Name: s.Name, Data: s.Data}, nil
}

// DeleteSound removes the sound record; zero rows is fine.
func (g *SQLiteGateway) DeleteSound() error {
	_, err := g.db.Exec(`DELETE FROM records WHERE key = ?`, keyAlarmSound)
	return err
}

func (g *SQLiteGateway) putRecord(key string, value []byte) error {
	_, err := g.db.Exec(`
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("put record %s: %w", key, err)
	}
	return nil
}

func (g *SQLiteGateway) getRecord(key string) ([]byte, error) {
	row := g.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key)
	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record %s: %w", key, err)
	}
	return value, nil
}
