package letters

import "strings"

// CreateSuratMasukRequest - Req khusus untuk surat masuk. NoAsal disalin apa
// adanya menjadi nomor surat, tidak lewat generator.
type CreateSuratMasukRequest struct {
	NoAsal    string `json:"no_asal" form:"no_asal"`
	TglNoAsal string `json:"tgl_no_asal" form:"tgl_no_asal"` // DD-MM-YYYY
	Penerima  uint   `json:"penerima" form:"penerima"`
	Perihal   string `json:"perihal" form:"perihal"`
}

// UpdateSuratMasukRequest - Req untuk edit surat masuk. Mengganti penerima
// juga memindahkan kepemilikan baris (pengecualian yang disengaja).
type UpdateSuratMasukRequest struct {
	TglNoAsal string `json:"tgl_no_asal" form:"tgl_no_asal"`
	Penerima  uint   `json:"penerima" form:"penerima"`
	Perihal   string `json:"perihal" form:"perihal"`
}

func (r *CreateSuratMasukRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.NoAsal) == "" {
		errors["no_asal"] = "no_asal is required"
	}
	requireTanggal(errors, "tgl_no_asal", r.TglNoAsal)
	if r.Penerima == 0 {
		errors["penerima"] = "penerima is required"
	}
	if strings.TrimSpace(r.Perihal) == "" {
		errors["perihal"] = "perihal is required"
	}

	return errors
}

func (r *UpdateSuratMasukRequest) Validate() map[string]string {
	errors := make(map[string]string)

	requireTanggal(errors, "tgl_no_asal", r.TglNoAsal)
	if r.Penerima == 0 {
		errors["penerima"] = "penerima is required"
	}
	if strings.TrimSpace(r.Perihal) == "" {
		errors["perihal"] = "perihal is required"
	}

	return errors
}
