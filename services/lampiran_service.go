package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Hapidzfadli/arsip-desa/models"

	"gorm.io/gorm"
)

// LampiranService is the attachment store: it keeps lampiran metadata in the
// database and delegates byte I/O to a BlobStore. Attachments are grouped by
// the owning letter's token; one token may hold many files.
type LampiranService struct {
	db   *gorm.DB
	blob BlobStore
}

func NewLampiranService(db *gorm.DB, blob BlobStore) *LampiranService {
	return &LampiranService{db: db, blob: blob}
}

// ObjectKey maps a (token, file name) pair to its blob key.
func ObjectKey(token, namaBerkas string) string {
	return token + "/" + namaBerkas
}

// Put stores one file under token. tx may be the surrounding letter-creation
// transaction; pass nil to use the service's own connection.
func (ls *LampiranService) Put(ctx context.Context, tx *gorm.DB, token string, up Upload) (*models.Lampiran, error) {
	name := filepath.Base(strings.TrimSpace(up.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, NewValidationError(map[string]string{"lampiran": "file name is required"})
	}
	if up.Size > MaxLampiranSize {
		return nil, NewValidationError(map[string]string{"lampiran": "file exceeds the 10 MB limit"})
	}

	if err := ls.blob.Store(ctx, ObjectKey(token, name), up.Content, up.Size, up.ContentType); err != nil {
		return nil, fmt.Errorf("%w: store %s: %v", ErrStorage, name, err)
	}

	lampiran := &models.Lampiran{
		NamaBerkas:    name,
		Ukuran:        up.Size,
		TokenLampiran: token,
	}

	if tx == nil {
		tx = ls.db
	}
	if err := tx.WithContext(ctx).Create(lampiran).Error; err != nil {
		return nil, fmt.Errorf("create lampiran record: %w", err)
	}

	return lampiran, nil
}

// ListByToken returns all attachments for token, ordered by file name.
func (ls *LampiranService) ListByToken(token string) ([]models.Lampiran, error) {
	var lampiran []models.Lampiran
	err := ls.db.Where("token_lampiran = ?", token).
		Order("nama_berkas ASC").
		Find(&lampiran).Error
	if err != nil {
		return nil, err
	}
	return lampiran, nil
}

// FirstByToken returns the first attachment for token.
func (ls *LampiranService) FirstByToken(token string) (*models.Lampiran, error) {
	var lampiran models.Lampiran
	err := ls.db.Where("token_lampiran = ?", token).
		Order("id ASC").
		First(&lampiran).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lampiran for token", ErrNotFound)
		}
		return nil, err
	}
	return &lampiran, nil
}

// DeleteByToken removes every attachment sharing token, blobs first. It must
// run inside the letter-deletion transaction: a blob deletion failure returns
// ErrStorage so the caller rolls back and the letter record survives.
// Deleting a token with no attachments is a no-op.
func (ls *LampiranService) DeleteByToken(ctx context.Context, tx *gorm.DB, token string) error {
	if tx == nil {
		tx = ls.db
	}

	var lampiran []models.Lampiran
	if err := tx.WithContext(ctx).Where("token_lampiran = ?", token).Find(&lampiran).Error; err != nil {
		return err
	}

	for _, l := range lampiran {
		if err := ls.blob.Delete(ctx, ObjectKey(token, l.NamaBerkas)); err != nil {
			return fmt.Errorf("%w: delete %s: %v", ErrStorage, l.NamaBerkas, err)
		}
	}

	return tx.WithContext(ctx).Where("token_lampiran = ?", token).Delete(&models.Lampiran{}).Error
}

// Open streams the backing bytes of one attachment. Missing bytes are
// reported as ErrNotFound, an unreachable store as ErrStorage.
func (ls *LampiranService) Open(ctx context.Context, lampiran *models.Lampiran) (io.ReadCloser, error) {
	key := ObjectKey(lampiran.TokenLampiran, lampiran.NamaBerkas)

	ok, err := ls.blob.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrStorage, lampiran.NamaBerkas, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: file %s missing from storage", ErrNotFound, lampiran.NamaBerkas)
	}

	rc, err := ls.blob.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorage, lampiran.NamaBerkas, err)
	}
	return rc, nil
}
