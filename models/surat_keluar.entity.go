package models

import "time"

// SuratKeluar adalah surat yang dibuat oleh perangkat desa. NoSurat diisi
// oleh generator nomor berurutan (SKm/NNN), bukan oleh pengguna.
type SuratKeluar struct {
	ID        uint `gorm:"primaryKey;autoIncrement:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	NoSurat  string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	TglNS    *time.Time `gorm:"type:date;not null"`
	Perihal  string     `gorm:"type:text;not null"`
	BagianID uint       `gorm:"not null;index"`

	TokenLampiran string `gorm:"type:varchar(40);uniqueIndex;not null"`
	UserID        uint   `gorm:"not null;index"`
	Dibaca        bool   `gorm:"not null;default:false"`
	// Disposisi berisi nama bagian tujuan, string kosong berarti belum
	// didisposisikan.
	Disposisi  string     `gorm:"type:varchar(150);default:''"`
	Peringatan bool       `gorm:"not null;default:false"`
	TglSK      *time.Time `gorm:"type:date"`

	User     *User      `gorm:"foreignKey:UserID"`
	Bagian   *Bagian    `gorm:"foreignKey:BagianID"`
	// Token adalah kunci pengelompokan buram, bukan relasi kepemilikan di
	// level database: lampiran juga digantung ke surat_masuk lewat kolom
	// yang sama, jadi constraint FK ganda justru menolak setiap insert.
	Lampiran []Lampiran `gorm:"foreignKey:TokenLampiran;references:TokenLampiran;constraint:-"`
}

func (SuratKeluar) TableName() string {
	return "surat_keluar"
}
