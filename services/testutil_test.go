package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/Hapidzfadli/arsip-desa/models"
	"github.com/Hapidzfadli/arsip-desa/utils/events"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	return openTestDB(t, ":memory:")
}

// newTestDBStrictFK menyalakan penegakan foreign key, seperti MySQL di
// produksi. SQLite mematikannya secara default.
func newTestDBStrictFK(t *testing.T) *gorm.DB {
	return openTestDB(t, "file::memory:?_foreign_keys=1")
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Bagian{},
		&models.SuratMasuk{},
		&models.SuratKeluar{},
		&models.Lampiran{},
	))

	t.Cleanup(drainEvents)
	return db
}

// drainEvents mengosongkan bus supaya event sisa satu test tidak bocor ke
// test berikutnya.
func drainEvents() {
	for {
		select {
		case <-events.SuratEventBus:
		default:
			return
		}
	}
}

// memBlob adalah BlobStore dalam memori untuk test.
type memBlob struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failStore  bool
	failDelete bool
}

func newMemBlob() *memBlob {
	return &memBlob{objects: make(map[string][]byte)}
}

func (m *memBlob) Store(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if m.failStore {
		return errors.New("storage down")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memBlob) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memBlob) Delete(_ context.Context, key string) error {
	if m.failDelete {
		return errors.New("storage down")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memBlob) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memBlob) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func seedUser(t *testing.T, db *gorm.DB, username string, level models.Level) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		NamaLengkap:  "Test " + username,
		Email:        username + "@desa.id",
		PasswordHash: "x",
		Level:        level,
		Status:       "aktif",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBagian(t *testing.T, db *gorm.DB, owner *models.User, nama string) *models.Bagian {
	t.Helper()

	bagian := &models.Bagian{NamaBagian: nama, UserID: owner.ID}
	require.NoError(t, db.Create(bagian).Error)
	return bagian
}

func testUpload(name, content string) *Upload {
	return &Upload{
		Name:        name,
		Size:        int64(len(content)),
		ContentType: "application/pdf",
		Content:     bytes.NewReader([]byte(content)),
	}
}
