package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPasswordResetTokenExpired = errors.New("password reset token expired")
	ErrPasswordResetTokenUsed    = errors.New("password reset token already used")
)

// PasswordResetTokenTTL adalah umur tautan reset sejak diminta.
const PasswordResetTokenTTL = time.Hour

// PasswordResetToken menyimpan hash token reset sekali pakai. Token mentah
// hanya hidup di tautan email; database tidak pernah menyimpannya.
type PasswordResetToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index"`
	TokenHash string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	UsedAt    *time.Time

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t PasswordResetToken) IsExpired(now time.Time) bool {
	if now.IsZero() {
		now = time.Now()
	}
	return !now.Before(t.ExpiresAt)
}

// Validate menolak token yang sudah terpakai atau kedaluwarsa.
func (t PasswordResetToken) Validate(now time.Time) error {
	if now.IsZero() {
		now = time.Now()
	}
	if t.Used {
		return ErrPasswordResetTokenUsed
	}
	if t.IsExpired(now) {
		return ErrPasswordResetTokenExpired
	}
	return nil
}

// Consume menandai token terpakai. Update bersyarat pada used dan expires_at
// membuat dua permintaan reset yang berlomba hanya lolos satu; yang kalah
// mendapat error yang menjelaskan kenapa.
func (t *PasswordResetToken) Consume(tx *gorm.DB, now time.Time) error {
	if now.IsZero() {
		now = time.Now()
	}

	if err := t.Validate(now); err != nil {
		return err
	}

	usedAt := now
	res := tx.Model(&PasswordResetToken{}).
		Where("id = ? AND used = ? AND expires_at > ?", t.ID, false, now).
		Updates(map[string]any{"used": true, "used_at": &usedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return t.loseReason(tx, now)
	}

	t.Used = true
	t.UsedAt = &usedAt
	return nil
}

// loseReason membaca ulang baris untuk membedakan kalah lomba karena sudah
// terpakai atau karena kedaluwarsa.
func (t *PasswordResetToken) loseReason(tx *gorm.DB, now time.Time) error {
	var latest PasswordResetToken
	if err := tx.First(&latest, t.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPasswordResetTokenUsed
		}
		return err
	}
	if !latest.Used && latest.IsExpired(now) {
		return ErrPasswordResetTokenExpired
	}
	return ErrPasswordResetTokenUsed
}
