package handlers

import (
	"github.com/Hapidzfadli/arsip-desa/models"
	"github.com/Hapidzfadli/arsip-desa/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type userSummary struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	NamaLengkap string `json:"nama_lengkap"`
}

// List - Daftar user untuk dropdown penerima surat masuk.
func (h *UserHandler) List(c *fiber.Ctx) error {
	var users []models.User
	if err := h.db.Order("nama_lengkap ASC").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Gagal mengambil data user")
	}

	summaries := make([]userSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, userSummary{
			ID:          u.ID,
			Username:    u.Username,
			NamaLengkap: u.NamaLengkap,
		})
	}

	return utils.OK(c, "List user berhasil diambil", summaries)
}
