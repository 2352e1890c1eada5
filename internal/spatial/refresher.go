package spatial

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"sistem-desa/internal/logger"
	"sistem-desa/internal/metrics"
)

// Loader mengambil semua item satu layer dari penyimpanan.
type Loader func() ([]Item, error)

// Refresher membangun ulang indeks dari penyimpanan, saat aplikasi mulai dan secara berkala.
type Refresher struct {
	index   *Index
	loaders map[string]Loader
}

func NewRefresher(index *Index) *Refresher {
	return &Refresher{index: index, loaders: make(map[string]Loader)}
}

// Register menambahkan sumber data untuk satu layer.
func (r *Refresher) Register(layer string, load Loader) {
	r.loaders[layer] = load
}

// Refresh memuat semua layer lalu mengganti isi indeks sekaligus. Perubahan inkremental yang
// masuk selama pemuatan tetap berlaku. Jika satu layer gagal dimuat, indeks lama dipertahankan.
func (r *Refresher) Refresh() error {
	log := logger.For("spatial")

	since := r.index.BeginRebuild()
	var items []Item
	for layer, load := range r.loaders {
		loaded, err := load()
		if err != nil {
			r.index.AbortRebuild()
			metrics.SpatialIndexRebuildsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("muat layer %s: %w", layer, err)
		}
		items = append(items, loaded...)
	}

	skipped := r.index.CommitRebuild(since, items)
	metrics.SpatialIndexRebuildsTotal.WithLabelValues("ok").Inc()
	metrics.SpatialIndexItems.Set(float64(r.index.Size()))

	log.Info().Str(logger.EVENT, "index_rebuilt").
		Int("items", r.index.Size()).
		Int("skipped", skipped).
		Msg("indeks spasial dibangun ulang")
	return nil
}

// Schedule mendaftarkan Refresh ke cron (misalnya jadwal "@every 10m").
func (r *Refresher) Schedule(c *cron.Cron, jadwal string) (cron.EntryID, error) {
	return c.AddFunc(jadwal, func() {
		if err := r.Refresh(); err != nil {
			log := logger.For("spatial")
			log.Error().Err(err).Str(logger.EVENT, "index_refresh_failed").Msg("gagal membangun ulang indeks spasial")
		}
	})
}
