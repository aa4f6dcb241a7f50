package utils

import (
	"testing"
	"time"

	"github.com/Hapidzfadli/arsip-desa/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNextNoSurat(t *testing.T) {
	cases := []struct {
		last string
		want string
	}{
		{"SKm/001", "SKm/002"},
		{"SKm/009", "SKm/010"},
		{"SKm/057", "SKm/058"},
		{"SKm/099", "SKm/100"},
		{"SKm/999", "SKm/1000"},
		// baris yang diedit manual: ambil digit di ekor
		{"SKm/ARS-12", "SKm/013"},
		{"nomor aneh 7", "SKm/008"},
		// tidak ada digit sama sekali: mulai ulang dari 1
		{"tanpa angka", "SKm/001"},
		{"", "SKm/001"},
	}

	for _, c := range cases {
		if got := NextNoSurat(c.last); got != c.want {
			t.Errorf("NextNoSurat(%q) = %q, want %q", c.last, got, c.want)
		}
	}
}

func TestGenerateNoSurat(t *testing.T) {
	db := newNomorTestDB(t)

	tx := db.Begin()
	defer tx.Rollback()

	no, err := GenerateNoSurat(tx)
	if err != nil {
		t.Fatalf("GenerateNoSurat on empty table: %v", err)
	}
	if no != "SKm/001" {
		t.Fatalf("first number = %q, want SKm/001", no)
	}

	insertSuratKeluar(t, tx, no)

	no, err = GenerateNoSurat(tx)
	if err != nil {
		t.Fatalf("GenerateNoSurat after first insert: %v", err)
	}
	if no != "SKm/002" {
		t.Fatalf("second number = %q, want SKm/002", no)
	}
}

func TestGenerateNoSuratFollowsCreationOrderNotMaximum(t *testing.T) {
	db := newNomorTestDB(t)

	insertSuratKeluar(t, db, "SKm/005")
	insertSuratKeluar(t, db, "SKm/002")

	// baris terakhir menang meskipun angkanya lebih kecil
	no, err := GenerateNoSurat(db)
	if err != nil {
		t.Fatalf("GenerateNoSurat: %v", err)
	}
	if no != "SKm/003" {
		t.Fatalf("number = %q, want SKm/003", no)
	}
}

func newNomorTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.SuratKeluar{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func insertSuratKeluar(t *testing.T, db *gorm.DB, noSurat string) {
	t.Helper()

	now := time.Now()
	token, err := RandomToken(TokenLampiranLength)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	surat := models.SuratKeluar{
		NoSurat:       noSurat,
		TglNS:         &now,
		Perihal:       "uji nomor",
		BagianID:      1,
		TokenLampiran: token,
		UserID:        1,
		TglSK:         &now,
	}
	if err := db.Create(&surat).Error; err != nil {
		t.Fatalf("insert surat %s: %v", noSurat, err)
	}
}
