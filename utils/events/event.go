package events

// SuratEventType mendefinisikan jenis event siklus hidup surat.
type SuratEventType string

const (
	// SuratMasukCreated dipublikasikan saat surat masuk selesai dicatat,
	// dipakai notifier untuk mengabari penerima.
	SuratMasukCreated SuratEventType = "SuratMasukCreated"

	// SuratKeluarCreated dipublikasikan saat surat keluar mendapat nomor.
	SuratKeluarCreated SuratEventType = "SuratKeluarCreated"
)

// SuratEvent adalah payload event surat.
type SuratEvent struct {
	Type     SuratEventType
	SuratID  uint
	NoSurat  string
	Perihal  string
	Penerima uint // user id penerima, hanya terisi untuk surat masuk
}

// SuratEventBus menyalurkan event surat ke notifier. Channel di-buffer agar
// publikasi tidak memblokir alur pembuatan surat.
var SuratEventBus = make(chan SuratEvent, 100)
