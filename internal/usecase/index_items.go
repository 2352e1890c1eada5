package usecase

import (
	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
	"sistem-desa/internal/spatial"
)

func BatasItem(b *model.BatasWilayah) spatial.Item {
	return spatial.Item{Layer: maplayer.LayerBatas, ID: b.ID, Name: b.Nama, Category: b.Jenis, Shape: b.Wilayah}
}

func BencanaItem(b *model.Bencana) spatial.Item {
	return spatial.Item{Layer: maplayer.LayerBencana, ID: b.ID, Name: b.Jenis, Category: b.Jenis, Shape: b.Lokasi}
}

// BencanaIndexed menentukan apakah bencana masuk indeks: hanya yang belum selesai dan punya lokasi.
func BencanaIndexed(b *model.Bencana) bool {
	return b.Status != model.StatusSelesai && !b.Lokasi.IsZero()
}

func FasilitasItem(f *model.Fasilitas) spatial.Item {
	return spatial.Item{Layer: maplayer.LayerFasilitas, ID: f.ID, Name: f.Nama, Category: f.Kategori, Shape: f.Lokasi}
}

func POIItem(p *model.TempatPenting) spatial.Item {
	return spatial.Item{Layer: maplayer.LayerPOI, ID: p.ID, Name: p.Nama, Category: p.Kategori, Shape: p.Lokasi()}
}

// RegisterLoaders mendaftarkan sumber data layer publik ke refresher indeks.
func RegisterLoaders(r *spatial.Refresher,
	batas repository.BatasRepository,
	bencana repository.BencanaRepository,
	fasilitas repository.FasilitasRepository,
	poi repository.TempatPentingRepository,
) {
	r.Register(maplayer.LayerBatas, func() ([]spatial.Item, error) {
		list, err := batas.GetAll(repository.BatasFilter{})
		if err != nil {
			return nil, err
		}
		items := make([]spatial.Item, 0, len(list))
		for i := range list {
			items = append(items, BatasItem(&list[i]))
		}
		return items, nil
	})
	r.Register(maplayer.LayerBencana, func() ([]spatial.Item, error) {
		list, err := bencana.GetAll(repository.BencanaFilter{})
		if err != nil {
			return nil, err
		}
		items := make([]spatial.Item, 0, len(list))
		for i := range list {
			if BencanaIndexed(&list[i]) {
				items = append(items, BencanaItem(&list[i]))
			}
		}
		return items, nil
	})
	r.Register(maplayer.LayerFasilitas, func() ([]spatial.Item, error) {
		list, err := fasilitas.GetAll(repository.FasilitasFilter{})
		if err != nil {
			return nil, err
		}
		items := make([]spatial.Item, 0, len(list))
		for i := range list {
			if !list[i].Lokasi.IsZero() {
				items = append(items, FasilitasItem(&list[i]))
			}
		}
		return items, nil
	})
	r.Register(maplayer.LayerPOI, func() ([]spatial.Item, error) {
		list, err := poi.GetAll("", "")
		if err != nil {
			return nil, err
		}
		items := make([]spatial.Item, 0, len(list))
		for i := range list {
			items = append(items, POIItem(&list[i]))
		}
		return items, nil
	})
}
