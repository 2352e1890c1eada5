package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/model"
	"sistem-desa/internal/usecase"
)

const testSecret = "rahasia_test"

const desaWilayah = `{"type":"polygon","coordinates":[[[100.36,-0.95],[100.38,-0.95],[100.38,-0.93],[100.36,-0.93],[100.36,-0.95]]]}`

type testApp struct {
	app  *fiber.App
	db   *gorm.DB
	deps *Deps
}

func newTestApp(t *testing.T, opts ...func(*Deps)) *testApp {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	app := fiber.New()
	deps := &Deps{DB: db, JWTSecret: testSecret}
	for _, opt := range opts {
		opt(deps)
	}
	Setup(app, deps)
	return &testApp{app: app, db: db, deps: deps}
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := usecase.NewTokenUsecase(testSecret, time.Hour).Issue("1", "Petugas", role)
	require.NoError(t, err)
	return tok
}

func (a *testApp) do(t *testing.T, method, path, body, tok string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if strings.Contains(resp.Header.Get("Content-Type"), "json") && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func (a *testApp) createDesa(t *testing.T) {
	t.Helper()
	resp, _ := a.do(t, "POST", "/api/admin/batas", `{"nama":"Desa Sukamaju","jenis":"desa","wilayah":`+desaWilayah+`}`, token(t, usecase.RoleAdmin))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func data(body map[string]interface{}) map[string]interface{} {
	d, _ := body["data"].(map[string]interface{})
	return d
}

func TestAuthGating(t *testing.T) {
	a := newTestApp(t)
	body := `{"nama":"SD 01","kategori":"sekolah","lokasi":{"type":"point","coordinates":[100.37,-0.94]}}`

	resp, res := a.do(t, "POST", "/api/admin/fasilitas", body, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token tidak ditemukan", res["error"])

	resp, _ = a.do(t, "POST", "/api/admin/fasilitas", body, "bukan-token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = a.do(t, "POST", "/api/admin/fasilitas", body, token(t, usecase.RoleViewer))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = a.do(t, "POST", "/api/admin/fasilitas", body, token(t, usecase.RoleOperator))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// viewer boleh membaca data pribadi tapi tidak mengubahnya
	resp, _ = a.do(t, "GET", "/api/admin/penduduk", "", token(t, usecase.RoleViewer))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = a.do(t, "POST", "/api/admin/kk", `{}`, token(t, usecase.RoleViewer))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = a.do(t, "GET", "/api/peta/rumah", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// data publik tanpa login
	resp, res = a.do(t, "GET", "/api/fasilitas", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, res["data"], 1)
}

func TestLocationRules(t *testing.T) {
	a := newTestApp(t)
	op := token(t, usecase.RoleOperator)

	// belum ada batas desa: lokasi di mana pun diterima
	resp, _ := a.do(t, "POST", "/api/admin/poi", `{"nama":"Pos Ronda","kategori":"pos_ronda","latitude":-0.5,"longitude":100.1}`, op)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// koordinat yang tidak dikirim tidak dianggap (0,0)
	resp, res := a.do(t, "POST", "/api/admin/poi", `{"nama":"Pos Ronda","kategori":"pos_ronda"}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "latitude", res["detail"].(map[string]interface{})["field"])
	resp, res = a.do(t, "POST", "/api/admin/rumah", `{"no_rumah":"7","latitude":0}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "longitude", res["detail"].(map[string]interface{})["field"])
	resp, _ = a.do(t, "POST", "/api/admin/rumah", `{"no_rumah":"7","latitude":null,"longitude":100.1}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp, _ = a.do(t, "POST", "/api/admin/rumah", `{"no_rumah":"7","latitude":0,"longitude":0}`, op)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, "explicit zero is a real coordinate")

	a.createDesa(t)

	resp, res = a.do(t, "POST", "/api/admin/fasilitas", `{"nama":"Pasar","kategori":"pasar","lokasi":{"type":"point","coordinates":[100.50,-0.94]}}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Lokasi berada di luar batas wilayah desa", res["error"])

	resp, res = a.do(t, "POST", "/api/admin/fasilitas", `{"nama":"Pasar","kategori":"pasar","lokasi":{"type":"point","coordinates":[100.37,95]}}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotNil(t, res["detail"])

	resp, _ = a.do(t, "POST", "/api/admin/fasilitas", `{"nama":"Pasar","kategori":"pasar","lokasi":{"type":"segitiga"}}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = a.do(t, "POST", "/api/admin/fasilitas", `{"nama":"Pasar","kategori":"pasar","lokasi":`, op)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// batas RT harus poligon
	resp, _ = a.do(t, "POST", "/api/admin/batas", `{"nama":"RT 1","jenis":"rt","wilayah":{"type":"point","coordinates":[100.37,-0.94]}}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, res = a.do(t, "POST", "/api/admin/fasilitas", `{"nama":"Pasar Nagari","kategori":"Pasar","rt":"1","rw":"2","lokasi":{"type":"radius","coordinates":[100.37,-0.94],"radius":50}}`, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	f := data(res)
	assert.Equal(t, "pasar", f["kategori"])
	assert.Equal(t, "001", f["rt"])
	assert.Equal(t, "002", f["rw"])
	assert.InDelta(t, 7853.98, f["luas_m2"], 0.01)
	assert.Equal(t, "BAIK", f["kondisi"])
}

func TestBencanaCRUD(t *testing.T) {
	a := newTestApp(t)
	op := token(t, usecase.RoleOperator)
	a.createDesa(t)

	resp, res := a.do(t, "POST", "/api/admin/bencana", `{"jenis":"Tanah Longsor","tanggal":"2024-11-20","lokasi":{"type":"point","coordinates":[100.37,-0.94]}}`, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	b := data(res)
	assert.Equal(t, "tanah_longsor", b["jenis"])
	assert.Equal(t, model.StatusAktif, b["status"])
	assert.Len(t, b["kode"], 36)
	id := int(b["ID"].(float64))

	resp, _ = a.do(t, "POST", "/api/admin/bencana", `{"jenis":"banjir","tanggal":"20-11-2024","lokasi":{"type":"point","coordinates":[100.37,-0.94]}}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp, _ = a.do(t, "POST", "/api/admin/bencana", `{"jenis":"banjir","status":"BESAR","lokasi":{"type":"point","coordinates":[100.37,-0.94]}}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, res = a.do(t, "GET", "/api/peta/bencana", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, res["features"], 1)

	// update tanpa lokasi mempertahankan lokasi lama; status SELESAI hilang dari peta
	resp, res = a.do(t, "PUT", fmt.Sprintf("/api/admin/bencana/%d", id), `{"jenis":"tanah_longsor","status":"SELESAI"}`, op)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, data(res)["lokasi"])

	resp, res = a.do(t, "GET", "/api/peta/bencana", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, res["features"])

	resp, res = a.do(t, "GET", "/api/bencana?status=SELESAI", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, res["data"], 1)

	resp, _ = a.do(t, "GET", "/api/bencana/abc", "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(t, "DELETE", fmt.Sprintf("/api/admin/bencana/%d", id), "", op)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, res = a.do(t, "GET", fmt.Sprintf("/api/bencana/%d", id), "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Data tidak ditemukan", res["error"])
}

func TestPetaLayer(t *testing.T) {
	a := newTestApp(t)
	op := token(t, usecase.RoleOperator)
	a.createDesa(t)

	resp, _ := a.do(t, "POST", "/api/admin/fasilitas", `{"nama":"SD 01","kategori":"sekolah","lokasi":{"type":"point","coordinates":[100.37,-0.94]}}`, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, _ = a.do(t, "POST", "/api/admin/bencana", `{"jenis":"banjir","lokasi":{"type":"radius","coordinates":[100.368,-0.942],"radius":200}}`, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, res := a.do(t, "GET", "/api/peta/fasilitas", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	assert.Equal(t, "FeatureCollection", res["type"])
	features := res["features"].([]interface{})
	require.Len(t, features, 1)
	props := features[0].(map[string]interface{})["properties"].(map[string]interface{})
	assert.Equal(t, "school", props["icon"])
	assert.Equal(t, "sekolah", props["kategori"])

	resp, res = a.do(t, "GET", "/api/peta/bencana?circle=polygon", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	geom := res["features"].([]interface{})[0].(map[string]interface{})["geometry"].(map[string]interface{})
	assert.Equal(t, "Polygon", geom["type"])

	resp, res = a.do(t, "GET", "/api/peta/semua", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, res["features"], 3)

	resp, _ = a.do(t, "GET", "/api/peta/rahasia", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = a.do(t, "POST", "/api/admin/rumah", `{"no_rumah":"12","pemilik":"Budi","latitude":-0.94,"longitude":100.37}`, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, res = a.do(t, "GET", "/api/peta/rumah", "", token(t, usecase.RoleViewer))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, res["features"], 1)
}

func TestPetaLayerCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rc.Close() })
	a := newTestApp(t, func(d *Deps) { d.Cache = maplayer.NewCache(rc, time.Minute) })
	op := token(t, usecase.RoleOperator)

	resp, _ := a.do(t, "POST", "/api/admin/fasilitas", `{"nama":"SD 01","kategori":"sekolah","lokasi":{"type":"point","coordinates":[100.37,-0.94]}}`, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, res := a.do(t, "GET", "/api/peta/fasilitas", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	assert.Len(t, res["features"], 1)
	resp, _ = a.do(t, "GET", "/api/peta/semua", "", "")
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	resp, _ = a.do(t, "GET", "/api/peta/bencana", "", "")
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))

	resp, res = a.do(t, "GET", "/api/peta/fasilitas", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))
	assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))
	assert.Len(t, res["features"], 1)
	assert.True(t, mr.Exists(maplayer.Key(maplayer.LayerFasilitas, "point")))

	// varian polygon disimpan terpisah
	resp, _ = a.do(t, "GET", "/api/peta/fasilitas?circle=polygon", "", "")
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))

	// penulisan fasilitas menghapus cache fasilitas dan semua, layer lain tetap
	resp, _ = a.do(t, "POST", "/api/admin/fasilitas", `{"nama":"Puskesmas","kategori":"kesehatan","lokasi":{"type":"point","coordinates":[100.371,-0.941]}}`, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.False(t, mr.Exists(maplayer.Key(maplayer.LayerFasilitas, "point")))
	assert.False(t, mr.Exists(maplayer.Key(maplayer.LayerFasilitas, "polygon")))
	assert.False(t, mr.Exists(maplayer.Key(maplayer.LayerSemua, "point")))
	assert.True(t, mr.Exists(maplayer.Key(maplayer.LayerBencana, "point")))

	resp, res = a.do(t, "GET", "/api/peta/fasilitas", "", "")
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	assert.Len(t, res["features"], 2)
	resp, _ = a.do(t, "GET", "/api/peta/bencana", "", "")
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))
}

func TestLokasiDanSekitar(t *testing.T) {
	a := newTestApp(t)
	op := token(t, usecase.RoleOperator)
	a.createDesa(t)
	resp, _ := a.do(t, "POST", "/api/admin/fasilitas", `{"nama":"SD 01","kategori":"sekolah","lokasi":{"type":"point","coordinates":[100.3701,-0.9401]}}`, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, res := a.do(t, "GET", "/api/peta/lokasi?lat=-0.94&lon=100.37", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d := data(res)
	assert.Equal(t, true, d["dalam_desa"])
	assert.Len(t, d["wilayah"], 1)

	resp, res = a.do(t, "GET", "/api/peta/lokasi?lat=-0.5&lon=100.37", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, data(res)["dalam_desa"])

	resp, _ = a.do(t, "GET", "/api/peta/lokasi?lat=-0.94", "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = a.do(t, "GET", "/api/peta/lokasi?lat=abc&lon=100", "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, res = a.do(t, "GET", "/api/peta/sekitar?lat=-0.94&lon=100.37&layer=fasilitas", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	hits := res["data"].([]interface{})
	require.Len(t, hits, 1)
	assert.Equal(t, "SD 01", hits[0].(map[string]interface{})["nama"])

	resp, res = a.do(t, "GET", "/api/peta/sekitar?lat=-0.94&lon=100.37&k=5", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, res["data"], 2, "desa dan SD 01")
	resp, _ = a.do(t, "GET", "/api/peta/sekitar?lat=-0.94&lon=100.37&k=500", "", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp, _ = a.do(t, "GET", "/api/peta/sekitar?lat=-0.94&lon=100.37&k=dua", "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(t, "GET", "/api/peta/sekitar?lat=-0.94&lon=100.37&radius=100000", "", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp, _ = a.do(t, "GET", "/api/peta/sekitar?lat=-0.94&lon=100.37&layer=rumah", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGeoUkurDanCek(t *testing.T) {
	a := newTestApp(t)

	resp, res := a.do(t, "POST", "/api/geo/ukur", `{"type":"radius","coordinates":[100.37,-0.94],"radius":100}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d := data(res)
	assert.Equal(t, true, d["valid"])
	assert.InDelta(t, 31415.93, d["luas_m2"], 0.01)

	resp, _ = a.do(t, "POST", "/api/geo/ukur", `null`, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	a.createDesa(t)
	var batas model.BatasWilayah
	require.NoError(t, a.db.First(&batas).Error)

	resp, res = a.do(t, "POST", "/api/geo/cek", fmt.Sprintf(`{"batas_id":%d,"lat":-0.94,"lon":100.37}`, batas.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, data(res)["di_dalam"])
	assert.Equal(t, "desa", data(res)["jenis"])

	resp, res = a.do(t, "POST", "/api/geo/cek", fmt.Sprintf(`{"batas_id":%d,"lat":-0.5,"lon":100.37}`, batas.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, data(res)["di_dalam"])

	resp, _ = a.do(t, "POST", "/api/geo/cek", `{"batas_id":999,"lat":-0.94,"lon":100.37}`, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = a.do(t, "POST", "/api/geo/cek", `{"lat":-0.94,"lon":100.37}`, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp, res = a.do(t, "POST", "/api/geo/cek", fmt.Sprintf(`{"batas_id":%d,"lon":100.37}`, batas.ID), "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "lat", res["detail"].(map[string]interface{})["field"])
}

func TestKependudukan(t *testing.T) {
	a := newTestApp(t)
	op := token(t, usecase.RoleOperator)

	resp, res := a.do(t, "POST", "/api/admin/kk", `{"no_kk":"1371010101240001","kepala_keluarga":"Budi","rt":"3","rw":"1"}`, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	kkID := int(data(res)["ID"].(float64))

	resp, _ = a.do(t, "POST", "/api/admin/kk", `{"no_kk":"1371010101240001","kepala_keluarga":"Andi"}`, op)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp, _ = a.do(t, "POST", "/api/admin/kk", `{"no_kk":"123","kepala_keluarga":"Andi"}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body := fmt.Sprintf(`{"nik":"1371010101800001","nama":"Budi","jenis_kelamin":"L","tanggal_lahir":"1980-01-01","kartu_keluarga_id":%d}`, kkID)
	resp, res = a.do(t, "POST", "/api/admin/penduduk", body, op)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	p := data(res)
	assert.Equal(t, "003", p["rt"], "RT diambil dari kartu keluarga")
	assert.Equal(t, "001", p["rw"])
	assert.Equal(t, true, p["is_active"])
	pID := int(p["ID"].(float64))

	resp, _ = a.do(t, "POST", "/api/admin/penduduk", body, op)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp, _ = a.do(t, "POST", "/api/admin/penduduk", `{"nik":"1371010101800002","nama":"X","jenis_kelamin":"W"}`, op)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, res = a.do(t, "PUT", fmt.Sprintf("/api/admin/penduduk/%d", pID), fmt.Sprintf(`{"nik":"1371010101800001","nama":"Budi Santoso","jenis_kelamin":"L","kartu_keluarga_id":%d}`, kkID), op)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, data(res)["is_active"], "is_active yang tidak dikirim tidak berubah")

	resp, res = a.do(t, "GET", fmt.Sprintf("/api/admin/kk/%d", kkID), "", op)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, data(res)["anggota"], 1)

	resp, _ = a.do(t, "DELETE", fmt.Sprintf("/api/admin/kk/%d", kkID), "", op)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = a.do(t, "GET", "/api/admin/penduduk/export?rt=3", "", op)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "penduduk_")

	resp, res = a.do(t, "GET", "/api/statistik", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, data(res)["total_penduduk"])
	assert.Equal(t, 1.0, data(res)["total_kk"])
}

func TestDesaProfil(t *testing.T) {
	a := newTestApp(t)
	admin := token(t, usecase.RoleAdmin)

	resp, _ := a.do(t, "GET", "/api/desa", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = a.do(t, "PUT", "/api/admin/desa", `{"nama":"Sukamaju","zoom":30}`, admin)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = a.do(t, "PUT", "/api/admin/desa", `{"nama":"Sukamaju","center_lat":-0.94,"center_lon":100.37}`, admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, res := a.do(t, "GET", "/api/desa", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sukamaju", data(res)["nama"])
	assert.Equal(t, 15.0, data(res)["zoom"])
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t)

	resp, res := a.do(t, "GET", "/api/health", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", res["status"])
	assert.Equal(t, 0.0, res["index_items"])

	a.createDesa(t)
	_, res = a.do(t, "GET", "/api/health", "", "")
	assert.Equal(t, 1.0, res["index_items"])

	req := httptest.NewRequest("GET", "/metrics", nil)
	mresp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, mresp.StatusCode)
}
