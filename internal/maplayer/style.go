// Package maplayer menyusun data berlokasi menjadi lapisan peta GeoJSON
// lengkap dengan ikon dan warna per kategori.
package maplayer

import "strings"

// Nama layer peta.
const (
	LayerBatas     = "batas"
	LayerBencana   = "bencana"
	LayerFasilitas = "fasilitas"
	LayerRumah     = "rumah"
	LayerPOI       = "poi"
	LayerSemua     = "semua"
)

// PublicLayers adalah layer yang boleh dilihat tanpa login, sesuai urutan gambar di peta.
var PublicLayers = []string{LayerBatas, LayerBencana, LayerFasilitas, LayerPOI}

type Style struct {
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
}

type Registry struct {
	defaults map[string]Style
	styles   map[string]map[string]Style
}

func NewRegistry() *Registry {
	return &Registry{
		defaults: make(map[string]Style),
		styles:   make(map[string]map[string]Style),
	}
}

// NormalizeKey menyeragamkan penulisan kategori: "Tanah Longsor" dan "tanah-longsor" menjadi "tanah_longsor".
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

func (r *Registry) SetDefault(layer string, s Style) {
	r.defaults[layer] = s
}

func (r *Registry) Set(layer, category string, s Style) {
	if r.styles[layer] == nil {
		r.styles[layer] = make(map[string]Style)
	}
	r.styles[layer][NormalizeKey(category)] = s
}

// Lookup mengembalikan style kategori, atau style default layer jika kategori tidak dikenal.
func (r *Registry) Lookup(layer, category string) Style {
	if s, ok := r.styles[layer][NormalizeKey(category)]; ok {
		return s
	}
	if s, ok := r.defaults[layer]; ok {
		return s
	}
	return Style{Icon: "marker", Color: "#607d8b", FillColor: "#607d8b", FillOpacity: 0.2}
}

// Categories mengembalikan kategori yang terdaftar untuk layer.
func (r *Registry) Categories(layer string) []string {
	out := make([]string, 0, len(r.styles[layer]))
	for k := range r.styles[layer] {
		out = append(out, k)
	}
	return out
}

// Known mengembalikan true jika kategori terdaftar untuk layer.
func (r *Registry) Known(layer, category string) bool {
	_, ok := r.styles[layer][NormalizeKey(category)]
	return ok
}

// DefaultRegistry berisi style bawaan aplikasi.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.SetDefault(LayerBencana, Style{Icon: "warning", Color: "#e53935", FillColor: "#e53935", FillOpacity: 0.3})
	r.Set(LayerBencana, "banjir", Style{Icon: "flood", Color: "#1e88e5", FillColor: "#42a5f5", FillOpacity: 0.35})
	r.Set(LayerBencana, "tanah_longsor", Style{Icon: "landslide", Color: "#6d4c41", FillColor: "#8d6e63", FillOpacity: 0.35})
	r.Set(LayerBencana, "gempa_bumi", Style{Icon: "earthquake", Color: "#8e24aa", FillColor: "#ab47bc", FillOpacity: 0.3})
	r.Set(LayerBencana, "kebakaran", Style{Icon: "fire", Color: "#f4511e", FillColor: "#ff7043", FillOpacity: 0.35})
	r.Set(LayerBencana, "angin_puting_beliung", Style{Icon: "tornado", Color: "#546e7a", FillColor: "#78909c", FillOpacity: 0.3})
	r.Set(LayerBencana, "kekeringan", Style{Icon: "drought", Color: "#f9a825", FillColor: "#fdd835", FillOpacity: 0.3})
	r.Set(LayerBencana, "tsunami", Style{Icon: "tsunami", Color: "#0d47a1", FillColor: "#1565c0", FillOpacity: 0.35})

	r.SetDefault(LayerFasilitas, Style{Icon: "building", Color: "#3949ab", FillColor: "#5c6bc0", FillOpacity: 0.25})
	r.Set(LayerFasilitas, "sekolah", Style{Icon: "school", Color: "#1565c0", FillColor: "#42a5f5", FillOpacity: 0.25})
	r.Set(LayerFasilitas, "kesehatan", Style{Icon: "hospital", Color: "#c62828", FillColor: "#ef5350", FillOpacity: 0.25})
	r.Set(LayerFasilitas, "tempat_ibadah", Style{Icon: "mosque", Color: "#2e7d32", FillColor: "#66bb6a", FillOpacity: 0.25})
	r.Set(LayerFasilitas, "kantor_pemerintahan", Style{Icon: "government", Color: "#4e342e", FillColor: "#8d6e63", FillOpacity: 0.25})
	r.Set(LayerFasilitas, "pasar", Style{Icon: "market", Color: "#ef6c00", FillColor: "#ffa726", FillOpacity: 0.25})
	r.Set(LayerFasilitas, "jalan", Style{Icon: "road", Color: "#424242", FillColor: "#757575", FillOpacity: 0.2})
	r.Set(LayerFasilitas, "jembatan", Style{Icon: "bridge", Color: "#5d4037", FillColor: "#a1887f", FillOpacity: 0.2})
	r.Set(LayerFasilitas, "olahraga", Style{Icon: "stadium", Color: "#00897b", FillColor: "#4db6ac", FillOpacity: 0.25})
	r.Set(LayerFasilitas, "air_bersih", Style{Icon: "water", Color: "#0288d1", FillColor: "#4fc3f7", FillOpacity: 0.25})

	r.SetDefault(LayerBatas, Style{Icon: "boundary", Color: "#455a64", FillColor: "#90a4ae", FillOpacity: 0.1})
	r.Set(LayerBatas, "desa", Style{Icon: "boundary", Color: "#212121", FillColor: "#ffffff", FillOpacity: 0.05})
	r.Set(LayerBatas, "dusun", Style{Icon: "boundary", Color: "#37474f", FillColor: "#b0bec5", FillOpacity: 0.1})
	r.Set(LayerBatas, "rw", Style{Icon: "boundary", Color: "#5e35b1", FillColor: "#b39ddb", FillOpacity: 0.1})
	r.Set(LayerBatas, "rt", Style{Icon: "boundary", Color: "#3949ab", FillColor: "#9fa8da", FillOpacity: 0.1})
	r.Set(LayerBatas, "pemukiman", Style{Icon: "home", Color: "#ff8f00", FillColor: "#ffca28", FillOpacity: 0.2})
	r.Set(LayerBatas, "pertanian", Style{Icon: "farm", Color: "#7cb342", FillColor: "#aed581", FillOpacity: 0.25})
	r.Set(LayerBatas, "perkebunan", Style{Icon: "tree", Color: "#558b2f", FillColor: "#9ccc65", FillOpacity: 0.25})
	r.Set(LayerBatas, "hutan", Style{Icon: "forest", Color: "#1b5e20", FillColor: "#388e3c", FillOpacity: 0.3})

	r.SetDefault(LayerRumah, Style{Icon: "home", Color: "#6d4c41", FillColor: "#a1887f", FillOpacity: 0.2})

	r.SetDefault(LayerPOI, Style{Icon: "star", Color: "#d81b60", FillColor: "#f06292", FillOpacity: 0.2})
	r.Set(LayerPOI, "wisata", Style{Icon: "camera", Color: "#d81b60", FillColor: "#f06292", FillOpacity: 0.2})
	r.Set(LayerPOI, "makam", Style{Icon: "cemetery", Color: "#616161", FillColor: "#9e9e9e", FillOpacity: 0.2})
	r.Set(LayerPOI, "pos_ronda", Style{Icon: "guard", Color: "#f57f17", FillColor: "#ffb300", FillOpacity: 0.2})
	r.Set(LayerPOI, "bank_sampah", Style{Icon: "recycle", Color: "#388e3c", FillColor: "#81c784", FillOpacity: 0.2})

	return r
}
