package handlers

import (
	"github.com/Hapidzfadli/arsip-desa/dto/letters"
	"github.com/Hapidzfadli/arsip-desa/middleware"
	"github.com/Hapidzfadli/arsip-desa/services"
	"github.com/Hapidzfadli/arsip-desa/utils"

	"github.com/gofiber/fiber/v2"
)

type SuratKeluarHandler struct {
	svc     *services.SuratKeluarService
	presign Presigner
}

func NewSuratKeluarHandler(svc *services.SuratKeluarService, presign Presigner) *SuratKeluarHandler {
	return &SuratKeluarHandler{svc: svc, presign: presign}
}

// Create - Handler untuk membuat surat keluar baru. Nomor surat dibuat oleh
// generator, bukan dikirim caller.
func (h *SuratKeluarHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req letters.CreateSuratKeluarRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	up, err := uploadFromForm(c)
	if err != nil {
		return utils.BadRequest(c, "Berkas lampiran tidak terbaca", err.Error())
	}

	surat, err := h.svc.Create(c.Context(), user, req, up)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Created(c, "Surat keluar berhasil ditambahkan", surat)
}

// List - Daftar surat keluar sesuai visibilitas user.
func (h *SuratKeluarHandler) List(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	surat, err := h.svc.List(c.Context(), user)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "List surat keluar berhasil diambil", surat)
}

// Get - Detail satu surat keluar; admin yang membuka menandai dibaca.
func (h *SuratKeluarHandler) Get(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, _ := c.ParamsInt("id")
	surat, err := h.svc.View(c.Context(), user, uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "Detail surat keluar berhasil diambil", fiber.Map{
		"surat":         surat,
		"lampiran_urls": lampiranURLs(c.Context(), h.presign, surat.Lampiran),
	})
}

// Update - Edit field yang boleh diubah.
func (h *SuratKeluarHandler) Update(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req letters.UpdateSuratKeluarRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	id, _ := c.ParamsInt("id")
	surat, err := h.svc.Update(c.Context(), user, uint(id), req)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "Surat keluar berhasil diupdate", surat)
}

type toggleDisposisiRequest struct {
	Disposisi bool   `json:"disposisi" form:"disposisi"`
	Bagian    string `json:"bagian" form:"bagian"`
}

// ToggleDisposisi - Set label disposisi atau kosongkan kembali.
func (h *SuratKeluarHandler) ToggleDisposisi(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req toggleDisposisiRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	var bagian *string
	if req.Disposisi {
		bagian = &req.Bagian
	}

	id, _ := c.ParamsInt("id")
	surat, err := h.svc.ToggleDisposisi(c.Context(), user, uint(id), bagian)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "Disposisi surat keluar diperbarui", surat)
}

// TogglePeringatan - Balik penanda peringatan.
func (h *SuratKeluarHandler) TogglePeringatan(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, _ := c.ParamsInt("id")
	surat, err := h.svc.TogglePeringatan(c.Context(), user, uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "Peringatan surat keluar diperbarui", surat)
}

// Delete - Hapus surat beserta lampirannya.
func (h *SuratKeluarHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, _ := c.ParamsInt("id")
	if err := h.svc.Delete(c.Context(), user, uint(id)); err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "Surat keluar berhasil dihapus", nil)
}

// Download - Alirkan lampiran pertama surat ke caller.
func (h *SuratKeluarHandler) Download(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, _ := c.ParamsInt("id")
	lampiran, rc, err := h.svc.DownloadLampiran(c.Context(), user, uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+lampiran.NamaBerkas+`"`)
	return c.SendStream(rc, int(lampiran.Ukuran))
}
