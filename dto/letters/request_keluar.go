package letters

import "strings"

// CreateSuratKeluarRequest - Req untuk membuat surat keluar baru.
// NoSurat tidak diterima dari caller, nomor dibuat oleh generator.
type CreateSuratKeluarRequest struct {
	TglNS    string `json:"tgl_ns" form:"tgl_ns"` // DD-MM-YYYY
	BagianID uint   `json:"bagian_id" form:"bagian_id"`
	Perihal  string `json:"perihal" form:"perihal"`
}

// UpdateSuratKeluarRequest - Req untuk edit. Nomor surat, token lampiran dan
// status baca tidak pernah bisa diubah lewat jalur ini.
type UpdateSuratKeluarRequest struct {
	TglNS    string `json:"tgl_ns" form:"tgl_ns"`
	BagianID uint   `json:"bagian_id" form:"bagian_id"`
	Perihal  string `json:"perihal" form:"perihal"`
}

func (r *CreateSuratKeluarRequest) Validate() map[string]string {
	errors := make(map[string]string)

	requireTanggal(errors, "tgl_ns", r.TglNS)
	if r.BagianID == 0 {
		errors["bagian_id"] = "bagian_id is required"
	}
	if strings.TrimSpace(r.Perihal) == "" {
		errors["perihal"] = "perihal is required"
	}

	return errors
}

func (r *UpdateSuratKeluarRequest) Validate() map[string]string {
	errors := make(map[string]string)

	requireTanggal(errors, "tgl_ns", r.TglNS)
	if r.BagianID == 0 {
		errors["bagian_id"] = "bagian_id is required"
	}
	if strings.TrimSpace(r.Perihal) == "" {
		errors["perihal"] = "perihal is required"
	}

	return errors
}
