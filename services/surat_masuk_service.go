package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Hapidzfadli/arsip-desa/dto/letters"
	"github.com/Hapidzfadli/arsip-desa/models"
	"github.com/Hapidzfadli/arsip-desa/utils"
	"github.com/Hapidzfadli/arsip-desa/utils/events"

	"gorm.io/gorm"
)

// SuratMasukService mengelola surat masuk: pencatatan oleh sekretaris desa,
// penandaan dibaca oleh penerima, dan disposisi oleh admin.
type SuratMasukService struct {
	db       *gorm.DB
	perm     *PermissionService
	lampiran *LampiranService
}

func NewSuratMasukService(db *gorm.DB, perm *PermissionService, lampiran *LampiranService) *SuratMasukService {
	return &SuratMasukService{db: db, perm: perm, lampiran: lampiran}
}

// Create mencatat surat masuk. Nomor surat disalin verbatim dari nomor asal
// pengirim; pengirim diisi nama lengkap pencatat dan kepemilikan baris jatuh
// ke penerima.
func (s *SuratMasukService) Create(ctx context.Context, user *models.User, req letters.CreateSuratMasukRequest, up *Upload) (*models.SuratMasuk, error) {
	ok, err := s.perm.CanMasuk(user, OpCreate, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if errMap := req.Validate(); len(errMap) > 0 {
		return nil, NewValidationError(errMap)
	}
	tglNoAsal, _ := letters.ParseTanggal(req.TglNoAsal)

	var penerima models.User
	if err := s.db.First(&penerima, req.Penerima).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: penerima %d", ErrReference, req.Penerima)
		}
		return nil, err
	}

	// Identitas dari token hanya memuat id dan level; nama lengkap pencatat
	// diambil dari database.
	var pencatat models.User
	if err := s.db.First(&pencatat, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	token, err := utils.RandomToken(utils.TokenLampiranLength)
	if err != nil {
		return nil, err
	}

	tglSM := today()
	surat := &models.SuratMasuk{
		NoSurat:       strings.TrimSpace(req.NoAsal),
		TglNS:         &tglNoAsal,
		NoAsal:        strings.TrimSpace(req.NoAsal),
		TglNoAsal:     &tglNoAsal,
		Pengirim:      pencatat.NamaLengkap,
		Penerima:      penerima.ID,
		Perihal:       strings.TrimSpace(req.Perihal),
		TokenLampiran: token,
		UserID:        penerima.ID,
		Dibaca:        false,
		Disposisi:     false,
		TglSM:         &tglSM,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(surat).Error; err != nil {
			return fmt.Errorf("create surat masuk: %w", err)
		}
		if up != nil {
			if _, err := s.lampiran.Put(ctx, tx, token, *up); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.SuratEventBus <- events.SuratEvent{
		Type:     events.SuratMasukCreated,
		SuratID:  surat.ID,
		NoSurat:  surat.NoSurat,
		Perihal:  surat.Perihal,
		Penerima: surat.Penerima,
	}

	return surat, nil
}

// List mengembalikan surat masuk yang boleh dilihat user, terbaru dulu.
func (s *SuratMasukService) List(ctx context.Context, user *models.User) ([]models.SuratMasuk, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	q := s.db.WithContext(ctx).
		Preload("User").Preload("Lampiran").
		Order("id DESC")
	if user.IsRegularUser() {
		q = q.Where("user_id = ?", user.ID)
	}

	var surat []models.SuratMasuk
	if err := q.Find(&surat).Error; err != nil {
		return nil, err
	}
	return surat, nil
}

// View mengambil satu surat. Penerima yang membukanya menandai dibaca;
// status itu tidak pernah kembali ke belum dibaca.
func (s *SuratMasukService) View(ctx context.Context, user *models.User, id uint) (*models.SuratMasuk, error) {
	surat, err := s.get(ctx, id, true)
	if err != nil {
		return nil, err
	}

	ok, err := s.perm.CanMasuk(user, OpView, surat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if user.ID == surat.UserID && !surat.Dibaca {
		if err := s.db.WithContext(ctx).Model(surat).Update("dibaca", true).Error; err != nil {
			return nil, fmt.Errorf("mark surat masuk read: %w", err)
		}
	}

	return surat, nil
}

// Update mengubah tanggal asal, penerima, dan perihal. Mengganti penerima
// memindahkan kepemilikan baris ke penerima baru.
func (s *SuratMasukService) Update(ctx context.Context, user *models.User, id uint, req letters.UpdateSuratMasukRequest) (*models.SuratMasuk, error) {
	surat, err := s.get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	ok, err := s.perm.CanMasuk(user, OpEdit, surat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if errMap := req.Validate(); len(errMap) > 0 {
		return nil, NewValidationError(errMap)
	}
	tglNoAsal, _ := letters.ParseTanggal(req.TglNoAsal)

	var penerima models.User
	if err := s.db.First(&penerima, req.Penerima).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: penerima %d", ErrReference, req.Penerima)
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"tgl_no_asal": &tglNoAsal,
		"penerima":    penerima.ID,
		"perihal":     strings.TrimSpace(req.Perihal),
		"user_id":     penerima.ID,
	}
	if err := s.db.WithContext(ctx).Model(surat).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update surat masuk: %w", err)
	}

	return surat, nil
}

// ToggleDisposisi membalik penanda disposisi surat masuk. Nilai dari caller
// diabaikan: disposisi surat masuk adalah saklar, bukan label.
func (s *SuratMasukService) ToggleDisposisi(ctx context.Context, user *models.User, id uint) (*models.SuratMasuk, error) {
	surat, err := s.get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	ok, err := s.perm.CanMasuk(user, OpDisposisi, surat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if err := s.db.WithContext(ctx).Model(surat).Update("disposisi", !surat.Disposisi).Error; err != nil {
		return nil, fmt.Errorf("update disposisi: %w", err)
	}

	return surat, nil
}

// Delete menghapus surat masuk dan seluruh lampirannya dalam satu transaksi.
func (s *SuratMasukService) Delete(ctx context.Context, user *models.User, id uint) error {
	surat, err := s.get(ctx, id, false)
	if err != nil {
		return err
	}

	ok, err := s.perm.CanMasuk(user, OpDelete, surat)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lampiran.DeleteByToken(ctx, tx, surat.TokenLampiran); err != nil {
			return err
		}
		return tx.Delete(&models.SuratMasuk{}, surat.ID).Error
	})
}

// DownloadLampiran membuka lampiran pertama surat untuk diunduh.
func (s *SuratMasukService) DownloadLampiran(ctx context.Context, user *models.User, id uint) (*models.Lampiran, io.ReadCloser, error) {
	surat, err := s.get(ctx, id, false)
	if err != nil {
		return nil, nil, err
	}

	ok, err := s.perm.CanMasuk(user, OpView, surat)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrForbidden
	}

	lampiran, err := s.lampiran.FirstByToken(surat.TokenLampiran)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.lampiran.Open(ctx, lampiran)
	if err != nil {
		return nil, nil, err
	}
	return lampiran, rc, nil
}

func (s *SuratMasukService) get(ctx context.Context, id uint, preload bool) (*models.SuratMasuk, error) {
	q := s.db.WithContext(ctx)
	if preload {
		q = q.Preload("User").Preload("Lampiran")
	}

	var surat models.SuratMasuk
	if err := q.First(&surat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: surat masuk %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &surat, nil
}
