package routes

import (
	"github.com/Hapidzfadli/arsip-desa/handlers"
	"github.com/Hapidzfadli/arsip-desa/middleware"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	SuratMasuk  *handlers.SuratMasukHandler
	SuratKeluar *handlers.SuratKeluarHandler
	Bagian      *handlers.BagianHandler
	User        *handlers.UserHandler
}

func Register(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	// Auth
	api.Post("/auth/login", h.Auth.Login)
	api.Post("/auth/refresh", h.Auth.Refresh)
	api.Post("/auth/forgot-password", h.Auth.RequestPasswordReset)
	api.Post("/auth/reset-password", h.Auth.ResetPassword)

	auth := api.Group("", middleware.RequireAuth())

	// Surat masuk
	masuk := auth.Group("/surat-masuk")
	masuk.Get("/", h.SuratMasuk.List)
	masuk.Post("/", h.SuratMasuk.Create)
	masuk.Get("/:id", h.SuratMasuk.Get)
	masuk.Put("/:id", h.SuratMasuk.Update)
	masuk.Delete("/:id", h.SuratMasuk.Delete)
	masuk.Patch("/:id/disposisi", middleware.RequireAdmin(), h.SuratMasuk.ToggleDisposisi)
	masuk.Get("/:id/lampiran", h.SuratMasuk.Download)

	// Surat keluar
	keluar := auth.Group("/surat-keluar")
	keluar.Get("/", h.SuratKeluar.List)
	keluar.Post("/", h.SuratKeluar.Create)
	keluar.Get("/:id", h.SuratKeluar.Get)
	keluar.Put("/:id", h.SuratKeluar.Update)
	keluar.Delete("/:id", h.SuratKeluar.Delete)
	keluar.Patch("/:id/disposisi", middleware.RequireAdmin(), h.SuratKeluar.ToggleDisposisi)
	keluar.Patch("/:id/peringatan", h.SuratKeluar.TogglePeringatan)
	keluar.Get("/:id/lampiran", h.SuratKeluar.Download)

	// Bagian milik user
	bagian := auth.Group("/bagian")
	bagian.Get("/", h.Bagian.List)
	bagian.Post("/", h.Bagian.Create)
	bagian.Put("/:id", h.Bagian.Update)
	bagian.Delete("/:id", h.Bagian.Delete)

	// Dropdown penerima
	auth.Get("/users", h.User.List)
}
