package services

import (
	"context"
	"io"
	"testing"

	"github.com/Hapidzfadli/arsip-desa/dto/letters"
	"github.com/Hapidzfadli/arsip-desa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureUsers struct {
	admin       *models.User
	bagianAdmin *models.Bagian
	warga       *models.User
	bagianWarga *models.Bagian
	superAdmin  *models.User
	other       *models.User
}

func newKeluarFixture(t *testing.T) (*SuratKeluarService, *memBlob, *fixtureUsers) {
	t.Helper()

	db := newTestDB(t)
	blob := newMemBlob()
	perm := NewPermissionService(db)
	lampiran := NewLampiranService(db, blob)
	svc := NewSuratKeluarService(db, perm, lampiran)

	admin := seedUser(t, db, "kepaladesa", models.LevelAdmin)
	warga := seedUser(t, db, "warga", models.LevelUser)

	return svc, blob, &fixtureUsers{
		admin:       admin,
		bagianAdmin: seedBagian(t, db, admin, "kades"),
		warga:       warga,
		bagianWarga: seedBagian(t, db, warga, "pelayanan"),
		superAdmin:  seedUser(t, db, "pengawas", models.LevelSuperAdmin),
		other:       seedUser(t, db, "oranglain", models.LevelUser),
	}
}

func keluarReq(bagianID uint, perihal string) letters.CreateSuratKeluarRequest {
	return letters.CreateSuratKeluarRequest{
		TglNS:    "17-08-2026",
		BagianID: bagianID,
		Perihal:  perihal,
	}
}

func TestSuratKeluarCreateSequentialNumbers(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "undangan rapat"), nil)
	require.NoError(t, err)
	assert.Equal(t, "SKm/001", first.NoSurat)
	assert.False(t, first.Dibaca)
	assert.Empty(t, first.Disposisi)
	assert.Len(t, first.TokenLampiran, 40)

	second, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "pengumuman"), nil)
	require.NoError(t, err)
	assert.Equal(t, "SKm/002", second.NoSurat)
	assert.NotEqual(t, first.TokenLampiran, second.TokenLampiran)
}

func TestSuratKeluarCreateWithLampiran(t *testing.T) {
	svc, blob, fx := newKeluarFixture(t)
	ctx := context.Background()

	surat, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "undangan"),
		testUpload("undangan.pdf", "isi"))
	require.NoError(t, err)

	ok, err := blob.Exists(ctx, ObjectKey(surat.TokenLampiran, "undangan.pdf"))
	require.NoError(t, err)
	assert.True(t, ok)

	lampiran, rc, err := svc.DownloadLampiran(ctx, fx.warga, surat.ID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "undangan.pdf", lampiran.NamaBerkas)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "isi", string(data))
}

func TestSuratKeluarCreateValidation(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, fx.warga, letters.CreateSuratKeluarRequest{}, nil)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "tgl_ns")
	assert.Contains(t, ve.Fields, "bagian_id")
	assert.Contains(t, ve.Fields, "perihal")

	// format tanggal salah
	_, err = svc.Create(ctx, fx.warga, letters.CreateSuratKeluarRequest{
		TglNS:    "2026-08-17",
		BagianID: fx.bagianWarga.ID,
		Perihal:  "x",
	}, nil)
	ve, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "tgl_ns")
}

func TestSuratKeluarCreateBadBagian(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, fx.warga, keluarReq(9999, "x"), nil)
	assert.ErrorIs(t, err, ErrReference)

	// bagian milik user lain
	_, err = svc.Create(ctx, fx.warga, keluarReq(fx.bagianAdmin.ID, "x"), nil)
	assert.ErrorIs(t, err, ErrReference)

	// admin bebas memakai bagian siapa pun
	_, err = svc.Create(ctx, fx.admin, keluarReq(fx.bagianWarga.ID, "x"), nil)
	assert.NoError(t, err)
}

func TestSuratKeluarCreateForbiddenForSuperAdmin(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)

	_, err := svc.Create(context.Background(), fx.superAdmin, keluarReq(fx.bagianWarga.ID, "x"), nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSuratKeluarCreateRollsBackOnStorageFailure(t *testing.T) {
	svc, blob, fx := newKeluarFixture(t)
	blob.failStore = true

	_, err := svc.Create(context.Background(), fx.warga, keluarReq(fx.bagianWarga.ID, "x"),
		testUpload("a.pdf", "isi"))
	assert.ErrorIs(t, err, ErrStorage)

	// gagal upload berarti tidak ada baris surat sama sekali
	list, err := svc.List(context.Background(), fx.admin)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSuratKeluarViewMarksReadOnceForAdmin(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	surat, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "undangan"), nil)
	require.NoError(t, err)

	// pemilik membuka: status baca tidak berubah
	viewed, err := svc.View(ctx, fx.warga, surat.ID)
	require.NoError(t, err)
	assert.False(t, viewed.Dibaca)

	// admin membuka: transisi sekali
	viewed, err = svc.View(ctx, fx.admin, surat.ID)
	require.NoError(t, err)
	assert.True(t, viewed.Dibaca)

	// kunjungan kedua tidak mengubah apa pun
	viewed, err = svc.View(ctx, fx.admin, surat.ID)
	require.NoError(t, err)
	assert.True(t, viewed.Dibaca)
}

func TestSuratKeluarViewForbiddenForStranger(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	surat, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "x"), nil)
	require.NoError(t, err)

	_, err = svc.View(ctx, fx.other, surat.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSuratKeluarViewNotFound(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)

	_, err := svc.View(context.Background(), fx.admin, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuratKeluarUpdateKeepsImmutableFields(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	surat, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "lama"), nil)
	require.NoError(t, err)

	// admin menandai dibaca dulu
	_, err = svc.View(ctx, fx.admin, surat.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, fx.warga, surat.ID, letters.UpdateSuratKeluarRequest{
		TglNS:    "01-09-2026",
		BagianID: fx.bagianWarga.ID,
		Perihal:  "baru",
	})
	require.NoError(t, err)
	assert.Equal(t, "baru", updated.Perihal)

	// nomor, token, dan status baca tidak tersentuh
	fresh, err := svc.View(ctx, fx.admin, surat.ID)
	require.NoError(t, err)
	assert.Equal(t, surat.NoSurat, fresh.NoSurat)
	assert.Equal(t, surat.TokenLampiran, fresh.TokenLampiran)
	assert.True(t, fresh.Dibaca)
	assert.Equal(t, "baru", fresh.Perihal)
}

func TestSuratKeluarUpdateForbiddenForAdmin(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	surat, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "x"), nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, fx.admin, surat.ID, letters.UpdateSuratKeluarRequest{
		TglNS:    "01-09-2026",
		BagianID: fx.bagianWarga.ID,
		Perihal:  "y",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSuratKeluarToggleDisposisi(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	surat, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "x"), nil)
	require.NoError(t, err)

	bagian := "keuangan"
	updated, err := svc.ToggleDisposisi(ctx, fx.admin, surat.ID, &bagian)
	require.NoError(t, err)
	assert.Equal(t, "keuangan", updated.Disposisi)

	// nil mencabut disposisi
	updated, err = svc.ToggleDisposisi(ctx, fx.admin, surat.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, updated.Disposisi)

	// pemilik bukan admin: ditolak
	_, err = svc.ToggleDisposisi(ctx, fx.warga, surat.ID, &bagian)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSuratKeluarTogglePeringatan(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	surat, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "x"), nil)
	require.NoError(t, err)

	updated, err := svc.TogglePeringatan(ctx, fx.warga, surat.ID)
	require.NoError(t, err)
	assert.True(t, updated.Peringatan)

	updated, err = svc.TogglePeringatan(ctx, fx.admin, surat.ID)
	require.NoError(t, err)
	assert.False(t, updated.Peringatan)

	_, err = svc.TogglePeringatan(ctx, fx.other, surat.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSuratKeluarDeleteCascadesLampiran(t *testing.T) {
	svc, blob, fx := newKeluarFixture(t)
	ctx := context.Background()

	surat, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "x"),
		testUpload("a.pdf", "isi"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, fx.warga, surat.ID))

	_, err = svc.View(ctx, fx.admin, surat.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.DownloadLampiran(ctx, fx.admin, surat.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 0, blob.count())
}

func TestSuratKeluarDeleteKeepsRecordOnStorageFailure(t *testing.T) {
	svc, blob, fx := newKeluarFixture(t)
	ctx := context.Background()

	surat, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "x"),
		testUpload("a.pdf", "isi"))
	require.NoError(t, err)

	blob.failDelete = true
	err = svc.Delete(ctx, fx.warga, surat.ID)
	assert.ErrorIs(t, err, ErrStorage)

	// transaksi dibatalkan: surat dan lampirannya masih ada
	fresh, err := svc.View(ctx, fx.admin, surat.ID)
	require.NoError(t, err)
	assert.Len(t, fresh.Lampiran, 1)
}

func TestSuratKeluarListVisibility(t *testing.T) {
	svc, _, fx := newKeluarFixture(t)
	ctx := context.Background()

	bagianOther := seedBagianFor(t, svc, fx.other)

	_, err := svc.Create(ctx, fx.warga, keluarReq(fx.bagianWarga.ID, "milik warga"), nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, fx.other, keluarReq(bagianOther.ID, "milik orang lain"), nil)
	require.NoError(t, err)

	// admin melihat semuanya, terbaru dulu
	list, err := svc.List(ctx, fx.admin)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "SKm/002", list[0].NoSurat)

	// user biasa hanya melihat miliknya
	list, err = svc.List(ctx, fx.warga)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "milik warga", list[0].Perihal)

	_, err = svc.List(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func seedBagianFor(t *testing.T, svc *SuratKeluarService, owner *models.User) *models.Bagian {
	t.Helper()
	bagian := &models.Bagian{NamaBagian: "bagian-" + owner.Username, UserID: owner.ID}
	require.NoError(t, svc.db.Create(bagian).Error)
	return bagian
}
