package models

import "time"

// Lampiran adalah metadata berkas yang menempel pada surat melalui
// TokenLampiran. Satu token dapat memiliki banyak lampiran.
type Lampiran struct {
	ID            uint `gorm:"primaryKey;autoIncrement:true"`
	CreatedAt     time.Time
	NamaBerkas    string `gorm:"type:varchar(255);not null"`
	Ukuran        int64  `gorm:"not null"`
	TokenLampiran string `gorm:"type:varchar(40);not null;index"`
}

func (Lampiran) TableName() string {
	return "lampiran"
}
