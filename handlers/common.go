package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Hapidzfadli/arsip-desa/models"
	"github.com/Hapidzfadli/arsip-desa/services"
	"github.com/Hapidzfadli/arsip-desa/utils"

	"github.com/gofiber/fiber/v2"
)

// Presigner membuat URL berbatas waktu untuk berkas lampiran.
type Presigner interface {
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

const presignTTL = 15 * time.Minute

// serviceError memetakan taksonomi error services ke respons HTTP.
func serviceError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return utils.BadRequest(c, "Validasi gagal", ve.Fields)
	case errors.Is(err, services.ErrUnauthorized):
		return utils.Unauthorized(c, "Unauthorized")
	case errors.Is(err, services.ErrForbidden):
		return utils.Forbidden(c, "Anda tidak memiliki izin untuk operasi ini")
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound(c, "Data tidak ditemukan")
	case errors.Is(err, services.ErrReference):
		return utils.UnprocessableEntity(c, "Referensi tidak valid", err.Error())
	case errors.Is(err, services.ErrStorage):
		log.Printf("storage error: %v", err)
		return utils.BadGateway(c, "Penyimpanan berkas sedang tidak tersedia")
	default:
		log.Printf("internal error: %v", err)
		return utils.InternalServerError(c, "Terjadi kesalahan pada server")
	}
}

// uploadFromForm mengambil berkas "lampiran" dari form-data; nil bila caller
// tidak melampirkan berkas.
func uploadFromForm(c *fiber.Ctx) (*services.Upload, error) {
	fileHeader, err := c.FormFile("lampiran")
	if err != nil {
		return nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}

	return &services.Upload{
		Name:        fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     f,
	}, nil
}

// lampiranURLs membuat presigned URL per nama berkas agar frontend bisa
// menampilkan tautan unduh langsung.
func lampiranURLs(ctx context.Context, presign Presigner, lampiran []models.Lampiran) map[string]string {
	if presign == nil || len(lampiran) == 0 {
		return nil
	}

	urls := make(map[string]string, len(lampiran))
	for _, l := range lampiran {
		url, err := presign.PresignedURL(ctx, services.ObjectKey(l.TokenLampiran, l.NamaBerkas), presignTTL)
		if err != nil {
			log.Printf("presign %s: %v", l.NamaBerkas, err)
			continue
		}
		urls[l.NamaBerkas] = url
	}
	return urls
}
