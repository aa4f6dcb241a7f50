package models

import "time"

// SuratMasuk adalah surat yang diterima dari pihak luar dan dicatat oleh
// sekretaris desa untuk diteruskan ke penerima internal.
type SuratMasuk struct {
	ID        uint `gorm:"primaryKey;autoIncrement:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	NoSurat   string     `gorm:"type:varchar(100);index;not null"`
	TglNS     *time.Time `gorm:"type:date"`
	NoAsal    string     `gorm:"type:varchar(100);not null"`
	TglNoAsal *time.Time `gorm:"type:date;not null"`
	Pengirim  string     `gorm:"type:varchar(150);not null"`
	Penerima  uint       `gorm:"not null;index"`
	Perihal   string     `gorm:"type:text;not null"`

	TokenLampiran string     `gorm:"type:varchar(40);uniqueIndex;not null"`
	UserID        uint       `gorm:"not null;index"`
	Dibaca        bool       `gorm:"not null;default:false"`
	Disposisi     bool       `gorm:"not null;default:false"`
	TglSM         *time.Time `gorm:"type:date"`

	User     *User      `gorm:"foreignKey:UserID"`
	// constraint:- : token hanya kunci pengelompokan, lihat catatan di
	// SuratKeluar.Lampiran.
	Lampiran []Lampiran `gorm:"foreignKey:TokenLampiran;references:TokenLampiran;constraint:-"`
}

func (SuratMasuk) TableName() string {
	return "surat_masuk"
}
