package models

import "time"

// Bagian adalah unit kerja milik satu pengguna, dipakai sebagai tujuan
// surat keluar dan target disposisi.
type Bagian struct {
	ID         uint `gorm:"primaryKey;autoIncrement:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	NamaBagian string `gorm:"type:varchar(150);not null;index"`
	UserID     uint   `gorm:"not null;index"`

	User *User `gorm:"foreignKey:UserID"`
}

func (Bagian) TableName() string {
	return "bagian"
}
