package main

import (
	"errors"
	"log"

	"github.com/Hapidzfadli/arsip-desa/config"
	"github.com/Hapidzfadli/arsip-desa/models"
	"github.com/Hapidzfadli/arsip-desa/utils"

	"gorm.io/gorm"
)

func main() {
	db := config.ConnectDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Bagian{},
		&models.SuratMasuk{},
		&models.SuratKeluar{},
		&models.Lampiran{},
		&models.PasswordResetToken{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("✅ Migration completed")

	if err := seed(db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("✅ Seed completed")
}

// seed membuat akun awal kepala desa dan sekretaris desa. Aman dijalankan
// berulang: user yang sudah ada tidak disentuh.
func seed(db *gorm.DB) error {
	accounts := []struct {
		user   models.User
		bagian string
	}{
		{
			user: models.User{
				Username:    "kepaladesa",
				NamaLengkap: "Kepala Desa",
				Email:       "kepaladesa@desa.id",
				Level:       models.LevelAdmin,
				Status:      "aktif",
			},
			bagian: "kades",
		},
		{
			user: models.User{
				Username:    "admindesa",
				NamaLengkap: "Sekretaris Desa",
				Email:       "admindesa@desa.id",
				Level:       models.LevelAdmin,
				Status:      "aktif",
			},
			bagian: "sekdes",
		},
	}

	for _, acc := range accounts {
		var existing models.User
		err := db.Where("username = ?", acc.user.Username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := utils.HashPassword("password")
		if err != nil {
			return err
		}
		acc.user.PasswordHash = hash

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&acc.user).Error; err != nil {
				return err
			}
			return tx.Create(&models.Bagian{
				NamaBagian: acc.bagian,
				UserID:     acc.user.ID,
			}).Error
		})
		if err != nil {
			return err
		}
		log.Printf("seeded user %s (bagian %s)", acc.user.Username, acc.bagian)
	}

	return nil
}
