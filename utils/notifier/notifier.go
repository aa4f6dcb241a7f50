package notifier

import (
	"log"

	"github.com/Hapidzfadli/arsip-desa/models"
	"github.com/Hapidzfadli/arsip-desa/utils/events"
	"github.com/Hapidzfadli/arsip-desa/utils/mailer"

	"gorm.io/gorm"
)

// Run mengonsumsi SuratEventBus dan mengirim email pemberitahuan. Dijalankan
// sebagai goroutine dari cmd/api; kegagalan kirim hanya dicatat, tidak pernah
// menggagalkan operasi surat.
func Run(db *gorm.DB, mail *mailer.Client) {
	for ev := range events.SuratEventBus {
		switch ev.Type {
		case events.SuratMasukCreated:
			var penerima models.User
			if err := db.First(&penerima, ev.Penerima).Error; err != nil {
				log.Printf("notifier: penerima %d tidak ditemukan: %v", ev.Penerima, err)
				continue
			}
			if err := mail.SendSuratMasukEmail(penerima.Email, ev.NoSurat, ev.Perihal); err != nil {
				log.Printf("notifier: gagal kirim email ke %s: %v", penerima.Email, err)
			}
		default:
			log.Printf("notifier: event %s untuk surat %s", ev.Type, ev.NoSurat)
		}
	}
}
