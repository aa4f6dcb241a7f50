package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/mail"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Hapidzfadli/arsip-desa/models"
	"github.com/Hapidzfadli/arsip-desa/utils"
	"github.com/Hapidzfadli/arsip-desa/utils/mailer"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db   *gorm.DB
	mail *mailer.Client
}

func NewAuthHandler(db *gorm.DB, mail *mailer.Client) *AuthHandler {
	return &AuthHandler{db: db, mail: mail}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return utils.BadRequest(c, "Username dan password wajib diisi", nil)
	}

	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Username atau password salah")
		}
		return utils.InternalServerError(c, "Gagal memproses login")
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return utils.Unauthorized(c, "Username atau password salah")
	}

	if user.Status != "aktif" {
		return utils.Forbidden(c, "Akun Anda tidak aktif")
	}

	accessToken, _, err := utils.GenerateAccessToken(user)
	if err != nil {
		return utils.InternalServerError(c, "Gagal membuat token")
	}
	refreshToken, _, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return utils.InternalServerError(c, "Gagal membuat token")
	}

	return utils.OK(c, "Login berhasil", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"nama_lengkap": user.NamaLengkap,
			"email":        user.Email,
			"level":        user.Level,
		},
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	claims, err := utils.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return utils.Unauthorized(c, "Refresh token tidak valid")
	}

	var user models.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		return utils.Unauthorized(c, "Akun tidak ditemukan")
	}

	accessToken, _, err := utils.GenerateAccessToken(user)
	if err != nil {
		return utils.InternalServerError(c, "Gagal membuat token")
	}

	return utils.OK(c, "Token diperbarui", fiber.Map{"access_token": accessToken})
}

type passwordResetRequest struct {
	Email string `json:"email" form:"email"`
}

func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req passwordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return utils.BadRequest(c, "Email wajib diisi", nil)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return utils.BadRequest(c, "Format email tidak valid", nil)
	}

	// Respons selalu sama, ada atau tidak akunnya.
	neutral := "Jika email terdaftar, tautan reset sudah dikirim"

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.OK(c, neutral, nil)
		}
		return utils.InternalServerError(c, "Gagal memproses permintaan")
	}

	rawToken, tokenHash, err := generateResetToken()
	if err != nil {
		return utils.InternalServerError(c, "Gagal membuat token reset")
	}

	resetToken := models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(models.PasswordResetTokenTTL),
	}
	if err := h.db.Create(&resetToken).Error; err != nil {
		return utils.InternalServerError(c, "Gagal menyimpan token reset")
	}

	if err := h.mail.SendPasswordResetEmail(user.Email, buildResetLink(rawToken)); err != nil {
		return utils.InternalServerError(c, "Gagal mengirim email reset")
	}

	return utils.OK(c, neutral, nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token" form:"token"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Format data tidak valid", err.Error())
	}

	if strings.TrimSpace(req.Token) == "" || len(req.Password) < 8 {
		return utils.BadRequest(c, "Token dan password (minimal 8 karakter) wajib diisi", nil)
	}

	sum := sha256.Sum256([]byte(strings.TrimSpace(req.Token)))
	tokenHash := hex.EncodeToString(sum[:])

	var resetToken models.PasswordResetToken
	if err := h.db.Where("token_hash = ?", tokenHash).First(&resetToken).Error; err != nil {
		return utils.BadRequest(c, "Token reset tidak valid", nil)
	}

	newHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.InternalServerError(c, "Gagal memproses password")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := resetToken.Consume(tx, time.Now()); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", resetToken.UserID).
			Update("password_hash", newHash).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrPasswordResetTokenExpired) || errors.Is(err, models.ErrPasswordResetTokenUsed) {
			return utils.BadRequest(c, "Token reset sudah kedaluwarsa atau terpakai", nil)
		}
		return utils.InternalServerError(c, "Gagal mengatur ulang password")
	}

	return utils.OK(c, "Password berhasil diatur ulang", nil)
}

func generateResetToken() (string, string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", err
	}
	raw := hex.EncodeToString(tokenBytes)
	sum := sha256.Sum256([]byte(raw))
	return raw, hex.EncodeToString(sum[:]), nil
}

func buildResetLink(token string) string {
	base := os.Getenv("PASSWORD_RESET_URL")
	if base == "" {
		base = "/auth/reset-password"
	}

	escapedToken := url.QueryEscape(token)
	if strings.Contains(base, "?") {
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			return base + "token=" + escapedToken
		}
		return base + "&token=" + escapedToken
	}
	return base + "?token=" + escapedToken
}
