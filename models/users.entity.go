package models

import "gorm.io/gorm"

type Level string

const (
	LevelSuperAdmin Level = "s_admin"
	LevelAdmin      Level = "admin"
	LevelUser       Level = "user"
)

type User struct {
	gorm.Model
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	NamaLengkap  string `gorm:"type:varchar(150);not null"`
	Email        string `gorm:"type:varchar(191);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Alamat       string `gorm:"type:text"`
	Telp         string `gorm:"type:varchar(30)"`
	Level        Level  `gorm:"type:varchar(20);not null;index"`
	Status       string `gorm:"type:varchar(20);default:'aktif'"`
}

func (User) TableName() string {
	return "users"
}

// --- Helper Methods ---

func (u *User) IsSuperAdmin() bool  { return u.Level == LevelSuperAdmin }
func (u *User) IsAdmin() bool       { return u.Level == LevelAdmin }
func (u *User) IsRegularUser() bool { return u.Level == LevelUser }

func (l Level) IsValid() bool {
	switch l {
	case LevelSuperAdmin, LevelAdmin, LevelUser:
		return true
	default:
		return false
	}
}
