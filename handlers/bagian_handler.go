package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Hapidzfadli/arsip-desa/middleware"
	"github.com/Hapidzfadli/arsip-desa/models"
	"github.com/Hapidzfadli/arsip-desa/services"
	"github.com/Hapidzfadli/arsip-desa/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BagianHandler - CRUD bagian. Bagian terikat ke pemiliknya: setiap user
// hanya melihat dan mengelola bagian miliknya sendiri.
type BagianHandler struct {
	db *gorm.DB
}

func NewBagianHandler(db *gorm.DB) *BagianHandler {
	return &BagianHandler{db: db}
}

type bagianRequest struct {
	NamaBagian string `json:"nama_bagian" form:"nama_bagian"`
}

func (h *BagianHandler) List(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var bagian []models.Bagian
	if err := h.db.Where("user_id = ?", user.ID).
		Order("nama_bagian ASC").
		Find(&bagian).Error; err != nil {
		return utils.InternalServerError(c, "Gagal mengambil data bagian")
	}

	return utils.OK(c, "List bagian berhasil diambil", bagian)
}

func (h *BagianHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req bagianRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	nama := strings.TrimSpace(req.NamaBagian)
	if nama == "" {
		return utils.BadRequest(c, "Validasi gagal", map[string]string{"nama_bagian": "nama_bagian is required"})
	}

	bagian := models.Bagian{NamaBagian: nama, UserID: user.ID}
	if err := h.db.Create(&bagian).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menyimpan bagian")
	}

	return utils.Created(c, "Bagian berhasil ditambahkan", bagian)
}

func (h *BagianHandler) Update(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, _ := c.ParamsInt("id")
	bagian, err := h.ownedBagian(user, uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	var req bagianRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	nama := strings.TrimSpace(req.NamaBagian)
	if nama == "" {
		return utils.BadRequest(c, "Validasi gagal", map[string]string{"nama_bagian": "nama_bagian is required"})
	}

	if err := h.db.Model(bagian).Update("nama_bagian", nama).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memperbarui bagian")
	}

	return utils.OK(c, "Bagian berhasil diupdate", bagian)
}

func (h *BagianHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, _ := c.ParamsInt("id")
	bagian, err := h.ownedBagian(user, uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	// Bagian yang masih dirujuk surat keluar tidak boleh hilang.
	var count int64
	if err := h.db.Model(&models.SuratKeluar{}).
		Where("bagian_id = ?", bagian.ID).
		Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Gagal memeriksa pemakaian bagian")
	}
	if count > 0 {
		return utils.Conflict(c, "Bagian masih dipakai oleh surat keluar")
	}

	if err := h.db.Delete(bagian).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menghapus bagian")
	}

	return utils.OK(c, "Bagian berhasil dihapus", nil)
}

func (h *BagianHandler) ownedBagian(user *models.User, id uint) (*models.Bagian, error) {
	var bagian models.Bagian
	err := h.db.Where("id = ? AND user_id = ?", id, user.ID).First(&bagian).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bagian %d", services.ErrNotFound, id)
		}
		return nil, err
	}
	return &bagian, nil
}
