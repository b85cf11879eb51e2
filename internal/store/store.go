// Package store persists book snapshots to a local sqlite database. The
// in-memory book is the source of truth; the store writes whole snapshots
// and never edits individual rows.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tallybook/tallybook-cli/internal/book"
	"github.com/tallybook/tallybook-cli/internal/config"
	"github.com/tallybook/tallybook-cli/internal/model"
)

// Store wraps the sqlite database holding the persisted snapshot.
type Store struct {
	db *gorm.DB
}

type contactRecord struct {
	ID           uuid.UUID      `gorm:"primaryKey;type:uuid"`
	Position     int            `gorm:"not null;index"`
	Name         string         `gorm:"not null"`
	Phone        string         `gorm:"not null"`
	Email        string         `gorm:"not null"`
	Address      string         `gorm:"not null"`
	PostalCode   string         `gorm:"not null"`
	DebtCents    int64          `gorm:"not null"`
	Interest     string
	Deadline     string
	DateBorrowed time.Time
	Tags         datatypes.JSON
	Blacklisted  bool `gorm:"not null"`
	Whitelisted  bool `gorm:"not null"`
}

func (contactRecord) TableName() string { return "contacts" }

type tagRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name      string    `gorm:"not null;unique"`
	CreatedAt time.Time
}

func (tagRecord) TableName() string { return "tags" }

// Open opens (creating if needed) the database at the configured path and
// runs migrations.
func Open(cfg *config.Config) (*Store, error) {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&contactRecord{}, &tagRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load reads the persisted snapshot. An empty database yields an empty
// snapshot. Duplicates inside the stored data surface when the book resets
// from it and indicate a corrupt database file.
func (s *Store) Load() (book.Snapshot, error) {
	var contacts []contactRecord
	if err := s.db.Order("position asc").Find(&contacts).Error; err != nil {
		return book.Snapshot{}, fmt.Errorf("failed to load contacts: %w", err)
	}
	var tags []tagRecord
	if err := s.db.Order("created_at asc").Find(&tags).Error; err != nil {
		return book.Snapshot{}, fmt.Errorf("failed to load tags: %w", err)
	}

	snap := book.Snapshot{}
	for _, r := range contacts {
		p, err := recordToPerson(r)
		if err != nil {
			return book.Snapshot{}, fmt.Errorf("corrupt contact row %s: %w", r.ID, err)
		}
		snap.Persons = append(snap.Persons, p)
	}
	for _, r := range tags {
		snap.Tags = append(snap.Tags, model.Tag{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt})
	}
	return snap, nil
}

// Save replaces the persisted snapshot with snap in one transaction.
func (s *Store) Save(snap book.Snapshot) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&contactRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear contacts: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&tagRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear tags: %w", err)
		}
		for i, p := range snap.Persons {
			r, err := personToRecord(p, i)
			if err != nil {
				return err
			}
			if err := tx.Create(&r).Error; err != nil {
				return fmt.Errorf("failed to save contact %s: %w", p.Name, err)
			}
		}
		for _, t := range snap.Tags {
			r := tagRecord{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
			if err := tx.Create(&r).Error; err != nil {
				return fmt.Errorf("failed to save tag %s: %w", t.Name, err)
			}
		}
		return nil
	})
}

func personToRecord(p *model.Person, position int) (contactRecord, error) {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return contactRecord{}, fmt.Errorf("failed to encode tags: %w", err)
	}
	return contactRecord{
		ID:           p.ID,
		Position:     position,
		Name:         string(p.Name),
		Phone:        string(p.Phone),
		Email:        string(p.Email),
		Address:      string(p.Address),
		PostalCode:   string(p.PostalCode),
		DebtCents:    p.Debt.Cents(),
		Interest:     string(p.Interest),
		Deadline:     string(p.Deadline),
		DateBorrowed: p.DateBorrowed,
		Tags:         datatypes.JSON(tags),
		Blacklisted:  p.Blacklisted,
		Whitelisted:  p.Whitelisted,
	}, nil
}

func recordToPerson(r contactRecord) (*model.Person, error) {
	var tags []string
	if len(r.Tags) > 0 {
		if err := json.Unmarshal(r.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	return &model.Person{
		ID:           r.ID,
		Name:         model.Name(r.Name),
		Phone:        model.Phone(r.Phone),
		Email:        model.Email(r.Email),
		Address:      model.Address(r.Address),
		PostalCode:   model.PostalCode(r.PostalCode),
		Debt:         model.Debt(r.DebtCents),
		Interest:     model.Interest(r.Interest),
		Deadline:     model.Deadline(r.Deadline),
		DateBorrowed: r.DateBorrowed,
		Tags:         tags,
		Blacklisted:  r.Blacklisted,
		Whitelisted:  r.Whitelisted,
	}, nil
}
