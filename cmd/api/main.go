package main

import (
	"context"
	"log"
	"os"

	"github.com/Hapidzfadli/arsip-desa/config"
	"github.com/Hapidzfadli/arsip-desa/handlers"
	"github.com/Hapidzfadli/arsip-desa/routes"
	"github.com/Hapidzfadli/arsip-desa/services"
	"github.com/Hapidzfadli/arsip-desa/utils/mailer"
	"github.com/Hapidzfadli/arsip-desa/utils/notifier"
	"github.com/Hapidzfadli/arsip-desa/utils/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	if err := config.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db := config.ConnectDB()

	blob, err := storage.NewS3Store(context.Background())
	if err != nil {
		log.Fatalf("storage error: %v", err)
	}

	perm := services.NewPermissionService(db)
	lampiran := services.NewLampiranService(db, blob)
	masukSvc := services.NewSuratMasukService(db, perm, lampiran)
	keluarSvc := services.NewSuratKeluarService(db, perm, lampiran)

	mailClient := mailer.NewClient(config.LoadEmailConfig())
	go notifier.Run(db, mailClient)

	app := fiber.New(fiber.Config{
		BodyLimit: services.MaxLampiranSize + 1<<20, // ruang untuk field form lain
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Register(app, routes.Handlers{
		Auth:        handlers.NewAuthHandler(db, mailClient),
		SuratMasuk:  handlers.NewSuratMasukHandler(masukSvc, blob),
		SuratKeluar: handlers.NewSuratKeluarHandler(keluarSvc, blob),
		Bagian:      handlers.NewBagianHandler(db),
		User:        handlers.NewUserHandler(db),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 API running on :" + port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
