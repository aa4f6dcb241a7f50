package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Hapidzfadli/arsip-desa/dto/letters"
	"github.com/Hapidzfadli/arsip-desa/models"
	"github.com/Hapidzfadli/arsip-desa/utils"
	"github.com/Hapidzfadli/arsip-desa/utils/events"

	"gorm.io/gorm"
)

// SuratKeluarService adalah satu-satunya jalur mutasi surat keluar. Semua
// operasi berjalan atas nama identitas eksplisit, tidak ada user global.
type SuratKeluarService struct {
	db       *gorm.DB
	perm     *PermissionService
	lampiran *LampiranService
}

func NewSuratKeluarService(db *gorm.DB, perm *PermissionService, lampiran *LampiranService) *SuratKeluarService {
	return &SuratKeluarService{db: db, perm: perm, lampiran: lampiran}
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Create mencatat surat keluar baru. Nomor surat dan penyimpanan lampiran
// terjadi dalam satu transaksi: gagal upload berarti tidak ada baris surat.
func (s *SuratKeluarService) Create(ctx context.Context, user *models.User, req letters.CreateSuratKeluarRequest, up *Upload) (*models.SuratKeluar, error) {
	ok, err := s.perm.CanKeluar(user, OpCreate, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if errMap := req.Validate(); len(errMap) > 0 {
		return nil, NewValidationError(errMap)
	}
	tglNS, _ := letters.ParseTanggal(req.TglNS)

	bagian, err := s.resolveBagian(user, req.BagianID)
	if err != nil {
		return nil, err
	}

	token, err := utils.RandomToken(utils.TokenLampiranLength)
	if err != nil {
		return nil, err
	}

	tglSK := today()
	surat := &models.SuratKeluar{
		TglNS:         &tglNS,
		Perihal:       strings.TrimSpace(req.Perihal),
		BagianID:      bagian.ID,
		TokenLampiran: token,
		UserID:        user.ID,
		Dibaca:        false,
		Disposisi:     "",
		Peringatan:    false,
		TglSK:         &tglSK,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		noSurat, err := utils.GenerateNoSurat(tx)
		if err != nil {
			return fmt.Errorf("generate no_surat: %w", err)
		}
		surat.NoSurat = noSurat

		if err := tx.Create(surat).Error; err != nil {
			return fmt.Errorf("create surat keluar: %w", err)
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
		Type:    events.SuratKeluarCreated,
		SuratID: surat.ID,
		NoSurat: surat.NoSurat,
		Perihal: surat.Perihal,
	}

	return surat, nil
}

// List mengembalikan surat keluar yang boleh dilihat user, terbaru dulu.
func (s *SuratKeluarService) List(ctx context.Context, user *models.User) ([]models.SuratKeluar, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	q := s.db.WithContext(ctx).
		Preload("User").Preload("Bagian").Preload("Lampiran").
		Order("id DESC")
	if user.IsRegularUser() {
		q = q.Where("user_id = ?", user.ID)
	}

	var surat []models.SuratKeluar
	if err := q.Find(&surat).Error; err != nil {
		return nil, err
	}
	return surat, nil
}

// View mengambil satu surat. Admin yang membukanya menandai dibaca; transisi
// itu hanya terjadi sekali, kunjungan berikutnya tidak mengubah apa pun.
func (s *SuratKeluarService) View(ctx context.Context, user *models.User, id uint) (*models.SuratKeluar, error) {
	surat, err := s.get(ctx, id, true)
	if err != nil {
		return nil, err
	}

	ok, err := s.perm.CanKeluar(user, OpView, surat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if user.IsAdmin() && !surat.Dibaca {
		if err := s.db.WithContext(ctx).Model(surat).Update("dibaca", true).Error; err != nil {
			return nil, fmt.Errorf("mark surat keluar read: %w", err)
		}
	}

	return surat, nil
}

// Update mengubah field yang boleh diubah saja: tanggal, bagian, perihal.
func (s *SuratKeluarService) Update(ctx context.Context, user *models.User, id uint, req letters.UpdateSuratKeluarRequest) (*models.SuratKeluar, error) {
	surat, err := s.get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	ok, err := s.perm.CanKeluar(user, OpEdit, surat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if errMap := req.Validate(); len(errMap) > 0 {
		return nil, NewValidationError(errMap)
	}
	tglNS, _ := letters.ParseTanggal(req.TglNS)

	bagian, err := s.resolveBagian(user, req.BagianID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"tgl_ns":    &tglNS,
		"bagian_id": bagian.ID,
		"perihal":   strings.TrimSpace(req.Perihal),
	}
	if err := s.db.WithContext(ctx).Model(surat).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update surat keluar: %w", err)
	}

	return surat, nil
}

// ToggleDisposisi menetapkan disposisi ke label bagian, atau mengosongkannya
// kembali bila bagian nil. Berbeda dengan status baca, disposisi bisa dicabut.
func (s *SuratKeluarService) ToggleDisposisi(ctx context.Context, user *models.User, id uint, bagian *string) (*models.SuratKeluar, error) {
	surat, err := s.get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	ok, err := s.perm.CanKeluar(user, OpDisposisi, surat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	value := ""
	if bagian != nil {
		value = strings.TrimSpace(*bagian)
	}

	if err := s.db.WithContext(ctx).Model(surat).Update("disposisi", value).Error; err != nil {
		return nil, fmt.Errorf("update disposisi: %w", err)
	}

	return surat, nil
}

// TogglePeringatan membalik penanda peringatan.
func (s *SuratKeluarService) TogglePeringatan(ctx context.Context, user *models.User, id uint) (*models.SuratKeluar, error) {
	surat, err := s.get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	ok, err := s.perm.CanKeluar(user, OpPeringatan, surat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if err := s.db.WithContext(ctx).Model(surat).Update("peringatan", !surat.Peringatan).Error; err != nil {
		return nil, fmt.Errorf("update peringatan: %w", err)
	}

	return surat, nil
}

// Delete menghapus surat beserta seluruh lampirannya dalam satu transaksi.
// Kalau pembersihan berkas gagal, baris surat tetap utuh.
func (s *SuratKeluarService) Delete(ctx context.Context, user *models.User, id uint) error {
	surat, err := s.get(ctx, id, false)
	if err != nil {
		return err
	}

	ok, err := s.perm.CanKeluar(user, OpDelete, surat)
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
		return tx.Delete(&models.SuratKeluar{}, surat.ID).Error
	})
}

// DownloadLampiran membuka lampiran pertama surat untuk diunduh.
func (s *SuratKeluarService) DownloadLampiran(ctx context.Context, user *models.User, id uint) (*models.Lampiran, io.ReadCloser, error) {
	surat, err := s.get(ctx, id, false)
	if err != nil {
		return nil, nil, err
	}

	ok, err := s.perm.CanKeluar(user, OpView, surat)
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

func (s *SuratKeluarService) get(ctx context.Context, id uint, preload bool) (*models.SuratKeluar, error) {
	q := s.db.WithContext(ctx)
	if preload {
		q = q.Preload("User").Preload("Bagian").Preload("Lampiran")
	}

	var surat models.SuratKeluar
	if err := q.First(&surat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: surat keluar %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &surat, nil
}

// resolveBagian memastikan bagian ada; pengguna biasa hanya boleh memakai
// bagian miliknya sendiri.
func (s *SuratKeluarService) resolveBagian(user *models.User, id uint) (*models.Bagian, error) {
	var bagian models.Bagian
	if err := s.db.First(&bagian, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bagian %d", ErrReference, id)
		}
		return nil, err
	}

	if !user.IsAdmin() && !user.IsSuperAdmin() && bagian.UserID != user.ID {
		return nil, fmt.Errorf("%w: bagian %d does not belong to user %d", ErrReference, id, user.ID)
	}
	return &bagian, nil
}
