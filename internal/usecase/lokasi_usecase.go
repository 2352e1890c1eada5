package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"sistem-desa/internal/geo"
	"sistem-desa/internal/logger"
	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/metrics"
	"sistem-desa/internal/model"
	"sistem-desa/internal/spatial"
)

var ErrOutsideBoundary = errors.New("lokasi berada di luar batas wilayah desa")

const reasonOutsideBoundary = "outside_boundary"

// MaxNearest adalah batas jumlah hasil pencarian terdekat.
const MaxNearest = 50

// BoundaryFinder mencari batas wilayah desa.
type BoundaryFinder interface {
	FindDesa() (*model.BatasWilayah, error)
	GetByID(id uint) (*model.BatasWilayah, error)
}

// LokasiUsecase menerapkan aturan lokasi pada setiap data berlokasi:
// normalisasi, validasi, cek batas desa, hitung luas, lalu sinkron ke indeks dan cache peta.
type LokasiUsecase struct {
	batas         BoundaryFinder
	index         *spatial.Index
	cache         *maplayer.Cache
	boundaryCheck bool
}

func NewLokasiUsecase(batas BoundaryFinder, index *spatial.Index, cache *maplayer.Cache, boundaryCheck bool) *LokasiUsecase {
	return &LokasiUsecase{batas: batas, index: index, cache: cache, boundaryCheck: boundaryCheck}
}

// Prepare menormalkan dan memvalidasi shape, mengembalikan shape siap simpan beserta luasnya (m², 2 desimal).
func (u *LokasiUsecase) Prepare(s geo.Shape) (geo.Shape, float64, error) {
	return u.prepare(s, u.boundaryCheck)
}

// PrepareBatas sama dengan Prepare untuk batas wilayah. Wilayah wajib berupa poligon,
// dan batas desa sendiri tidak dicek terhadap batas desa.
func (u *LokasiUsecase) PrepareBatas(jenis string, s geo.Shape) (geo.Shape, float64, error) {
	if s.Type != geo.ShapePolygon {
		metrics.GeometryRejectedTotal.WithLabelValues(geo.ReasonUnknownType).Inc()
		return s, 0, &geo.ValidationError{Field: "type", Code: geo.ReasonUnknownType, Reason: "wilayah harus berupa polygon"}
	}
	return u.prepare(s, u.boundaryCheck && maplayer.NormalizeKey(jenis) != model.JenisDesa)
}

func (u *LokasiUsecase) prepare(s geo.Shape, checkBoundary bool) (geo.Shape, float64, error) {
	s = geo.Normalize(s)
	if err := geo.Validate(s); err != nil {
		var verr *geo.ValidationError
		if errors.As(err, &verr) {
			metrics.GeometryRejectedTotal.WithLabelValues(verr.Code).Inc()
		}
		return s, 0, err
	}

	if checkBoundary {
		inside, err := u.insideDesa(s.Center())
		if err != nil {
			return s, 0, err
		}
		if !inside {
			metrics.GeometryRejectedTotal.WithLabelValues(reasonOutsideBoundary).Inc()
			return s, 0, ErrOutsideBoundary
		}
	}

	return s, roundLuas(s.Area()), nil
}

// insideDesa bernilai true jika batas desa belum dibuat.
func (u *LokasiUsecase) insideDesa(p geo.Point) (bool, error) {
	desa, err := u.batas.FindDesa()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if desa.Wilayah.IsZero() {
		return true, nil
	}
	return desa.Wilayah.Contains(p), nil
}

// Stored dipanggil setelah data berlokasi tersimpan.
func (u *LokasiUsecase) Stored(ctx context.Context, item spatial.Item) {
	if err := u.index.Upsert(item); err != nil {
		log := logger.For("usecase")
		log.Warn().Err(err).Str(logger.LAYER, item.Layer).Uint(logger.ID, item.ID).Msg("data tidak masuk indeks spasial")
	}
	metrics.SpatialIndexItems.Set(float64(u.index.Size()))
	u.cache.Invalidate(ctx, item.Layer)
}

// Removed dipanggil setelah data berlokasi dihapus (atau tidak lagi ditampilkan di indeks).
func (u *LokasiUsecase) Removed(ctx context.Context, layer string, id uint) {
	u.index.Remove(layer, id)
	metrics.SpatialIndexItems.Set(float64(u.index.Size()))
	u.cache.Invalidate(ctx, layer)
}

// Invalidate hanya menghapus cache layer, untuk data yang tidak diindeks (misalnya rumah).
func (u *LokasiUsecase) Invalidate(ctx context.Context, layer string) {
	u.cache.Invalidate(ctx, layer)
}

type Ukuran struct {
	Valid     bool                 `json:"valid"`
	Error     *geo.ValidationError `json:"error,omitempty"`
	Lokasi    geo.Shape            `json:"lokasi"`
	LuasM2    float64              `json:"luas_m2"`
	KelilingM float64              `json:"keliling_m"`
	Pusat     geo.Point            `json:"pusat"`
	BBox      geo.BBox             `json:"bbox"`
	DalamDesa *bool                `json:"dalam_desa,omitempty"`
}

// Measure mengukur shape tanpa menyimpannya. Shape yang tidak valid tetap dilaporkan, bukan error.
func (u *LokasiUsecase) Measure(s geo.Shape) (*Ukuran, error) {
	s = geo.Normalize(s)
	out := &Ukuran{Lokasi: s}
	if err := geo.Validate(s); err != nil {
		var verr *geo.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		out.Error = verr
		return out, nil
	}

	inside, err := u.insideDesa(s.Center())
	if err != nil {
		return nil, err
	}
	out.Valid = true
	out.LuasM2 = roundLuas(s.Area())
	out.KelilingM = roundLuas(s.Perimeter())
	out.Pusat = s.Center()
	out.BBox = s.Bounds()
	out.DalamDesa = &inside
	return out, nil
}

type LokasiTitik struct {
	Titik     geo.Point     `json:"titik"`
	DalamDesa bool          `json:"dalam_desa"`
	Wilayah   []spatial.Hit `json:"wilayah"`
	Bencana   []spatial.Hit `json:"bencana"`
}

// Locate mencari batas wilayah dan area bencana aktif yang memuat p.
func (u *LokasiUsecase) Locate(p geo.Point) (*LokasiTitik, error) {
	wilayah, err := u.index.Containing(p, maplayer.LayerBatas)
	if err != nil {
		return nil, err
	}
	bencana, err := u.index.Containing(p, maplayer.LayerBencana)
	if err != nil {
		return nil, err
	}

	out := &LokasiTitik{Titik: p, Wilayah: wilayah, Bencana: bencana}
	for _, h := range wilayah {
		if h.Category == model.JenisDesa {
			out.DalamDesa = true
			break
		}
	}
	return out, nil
}

// Nearby mencari data publik dalam radius meter dari p.
func (u *LokasiUsecase) Nearby(p geo.Point, radius float64, layers ...string) ([]spatial.Hit, error) {
	if math.IsNaN(radius) || radius <= 0 || radius > geo.MaxRadius {
		return nil, &geo.ValidationError{Field: "radius", Code: geo.ReasonRadiusRange, Reason: "radius harus lebih dari 0 dan maksimal 50000 meter"}
	}
	if len(layers) == 0 {
		layers = maplayer.PublicLayers
	}
	return u.index.WithinRadius(p, radius, layers...)
}

// NearestK mengembalikan k data publik terdekat dari p.
func (u *LokasiUsecase) NearestK(p geo.Point, k int, layers ...string) ([]spatial.Hit, error) {
	if k <= 0 || k > MaxNearest {
		return nil, &geo.ValidationError{Field: "k", Code: geo.ReasonOutOfRange, Reason: fmt.Sprintf("k harus antara 1 dan %d", MaxNearest)}
	}
	if len(layers) == 0 {
		layers = maplayer.PublicLayers
	}
	return u.index.Nearest(p, k, layers...), nil
}

// InBatas menguji apakah p berada di dalam batas wilayah dengan id tertentu.
func (u *LokasiUsecase) InBatas(id uint, p geo.Point) (bool, *model.BatasWilayah, error) {
	batas, err := u.batas.GetByID(id)
	if err != nil {
		return false, nil, err
	}
	return batas.Wilayah.Contains(p), batas, nil
}

func roundLuas(v float64) float64 {
	return math.Round(v*100) / 100
}
