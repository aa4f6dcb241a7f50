package handlers

import (
	"github.com/Hapidzfadli/arsip-desa/dto/letters"
	"github.com/Hapidzfadli/arsip-desa/middleware"
	"github.com/Hapidzfadli/arsip-desa/services"
	"github.com/Hapidzfadli/arsip-desa/utils"

	"github.com/gofiber/fiber/v2"
)

type SuratMasukHandler struct {
	svc     *services.SuratMasukService
	presign Presigner
}

func NewSuratMasukHandler(svc *services.SuratMasukService, presign Presigner) *SuratMasukHandler {
	return &SuratMasukHandler{svc: svc, presign: presign}
}

// Create - Pencatatan surat masuk oleh sekretaris desa.
func (h *SuratMasukHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req letters.CreateSuratMasukRequest
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

	return utils.Created(c, "Surat masuk berhasil ditambahkan", surat)
}

// List - Daftar surat masuk sesuai visibilitas user.
func (h *SuratMasukHandler) List(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	surat, err := h.svc.List(c.Context(), user)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "List surat masuk berhasil diambil", surat)
}

// Get - Detail satu surat masuk; penerima yang membuka menandai dibaca.
func (h *SuratMasukHandler) Get(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, _ := c.ParamsInt("id")
	surat, err := h.svc.View(c.Context(), user, uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "Detail surat masuk berhasil diambil", fiber.Map{
		"surat":         surat,
		"lampiran_urls": lampiranURLs(c.Context(), h.presign, surat.Lampiran),
	})
}

// Update - Edit surat masuk; mengganti penerima memindahkan kepemilikan.
func (h *SuratMasukHandler) Update(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req letters.UpdateSuratMasukRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	id, _ := c.ParamsInt("id")
	surat, err := h.svc.Update(c.Context(), user, uint(id), req)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "Surat masuk berhasil diupdate", surat)
}

// ToggleDisposisi - Balik penanda disposisi surat masuk.
func (h *SuratMasukHandler) ToggleDisposisi(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, _ := c.ParamsInt("id")
	surat, err := h.svc.ToggleDisposisi(c.Context(), user, uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "Disposisi surat masuk diperbarui", surat)
}

// Delete - Hapus surat masuk beserta lampirannya.
func (h *SuratMasukHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, _ := c.ParamsInt("id")
	if err := h.svc.Delete(c.Context(), user, uint(id)); err != nil {
		return serviceError(c, err)
	}

	return utils.OK(c, "Surat masuk berhasil dihapus", nil)
}

// Download - Alirkan lampiran pertama surat ke caller.
func (h *SuratMasukHandler) Download(c *fiber.Ctx) error {
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
