package services

import (
	"github.com/Hapidzfadli/arsip-desa/models"

	"gorm.io/gorm"
)

// Operation names one intent a caller can have on a letter.
type Operation string

const (
	OpView       Operation = "view"
	OpCreate     Operation = "create"
	OpEdit       Operation = "edit"
	OpDelete     Operation = "delete"
	OpDisposisi  Operation = "manage-disposisi"
	OpPeringatan Operation = "toggle-peringatan"
)

// PermissionService gates every letter operation by the caller's level.
//
// Level semantics:
//   - s_admin melihat semuanya tapi tidak pernah membuat/mengubah/menghapus.
//   - admin melihat semua surat dan memegang disposisi; untuk surat masuk
//     hanya sekretaris desa (admin pemilik bagian "sekdes") yang boleh
//     mencatat, mengubah, dan menghapus.
//   - user hanya menyentuh surat keluar miliknya sendiri.
type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// IsSekdes - Cek apakah user adalah sekretaris desa: akun level admin yang
// memiliki bagian bernama "sekdes".
func (ps *PermissionService) IsSekdes(user *models.User) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if !user.IsAdmin() {
		return false, nil
	}

	var count int64
	err := ps.db.Model(&models.Bagian{}).
		Where("user_id = ? AND nama_bagian = ?", user.ID, "sekdes").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanKeluar - Cek izin op pada surat keluar. surat boleh nil untuk OpCreate.
func (ps *PermissionService) CanKeluar(user *models.User, op Operation, surat *models.SuratKeluar) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}

	switch op {
	case OpCreate:
		return !user.IsSuperAdmin(), nil
	case OpView:
		return ps.VisibleKeluar(user, surat), nil
	case OpEdit, OpDelete:
		return user.IsRegularUser() && surat != nil && surat.UserID == user.ID, nil
	case OpDisposisi:
		return user.IsAdmin(), nil
	case OpPeringatan:
		if user.IsAdmin() {
			return true, nil
		}
		return user.IsRegularUser() && surat != nil && surat.UserID == user.ID, nil
	default:
		return false, nil
	}
}

// VisibleKeluar - Predikat visibilitas baris untuk surat keluar.
func (ps *PermissionService) VisibleKeluar(user *models.User, surat *models.SuratKeluar) bool {
	if user == nil || surat == nil {
		return false
	}
	switch user.Level {
	case models.LevelSuperAdmin, models.LevelAdmin:
		return true
	case models.LevelUser:
		return surat.UserID == user.ID
	default:
		return false
	}
}

// CanMasuk - Cek izin op pada surat masuk. surat boleh nil untuk OpCreate.
func (ps *PermissionService) CanMasuk(user *models.User, op Operation, surat *models.SuratMasuk) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}

	switch op {
	case OpCreate, OpEdit, OpDelete:
		return ps.IsSekdes(user)
	case OpView:
		return ps.VisibleMasuk(user, surat), nil
	case OpDisposisi:
		return user.IsAdmin(), nil
	default:
		return false, nil
	}
}

// VisibleMasuk - Predikat visibilitas baris untuk surat masuk.
func (ps *PermissionService) VisibleMasuk(user *models.User, surat *models.SuratMasuk) bool {
	if user == nil || surat == nil {
		return false
	}
	switch user.Level {
	case models.LevelSuperAdmin, models.LevelAdmin:
		return true
	case models.LevelUser:
		return surat.UserID == user.ID
	default:
		return false
	}
}
