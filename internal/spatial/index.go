// Package spatial menyediakan indeks R-Tree di memori untuk semua data berlokasi,
// dipakai untuk pencarian "titik ini termasuk wilayah mana" dan "apa saja di sekitar titik ini".
package spatial

import (
	"math"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"sistem-desa/internal/geo"
)

const (
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
	// minExtent menjaga kotak titik tetap memiliki panjang sisi positif.
	minExtent = 1e-9
)

// Item adalah satu data berlokasi di indeks.
type Item struct {
	Layer    string    `json:"layer"`
	ID       uint      `json:"id"`
	Name     string    `json:"nama"`
	Category string    `json:"kategori"`
	Shape    geo.Shape `json:"lokasi"`
}

// Hit adalah hasil pencarian beserta jarak dari titik query (meter).
type Hit struct {
	Item
	Distance float64 `json:"jarak_m"`
}

type key struct {
	layer string
	id    uint
}

type entry struct {
	item Item
	rect *rtreego.Rect
}

func (e *entry) Bounds() *rtreego.Rect {
	return e.rect
}

// change adalah satu Upsert (e != nil) atau Remove (e == nil) yang terjadi selama rebuild berjalan.
type change struct {
	seq uint64
	k   key
	e   *entry
}

// Index aman dipakai bersamaan oleh banyak goroutine.
type Index struct {
	mu      sync.RWMutex
	tree    *rtreego.Rtree
	entries map[key]*entry

	// seq bertambah pada setiap Upsert dan Remove. Selama building > 0 perubahan dicatat di journal
	// agar tidak hilang saat tree hasil rebuild dipasang.
	seq      uint64
	building int
	journal  []change
}

func NewIndex() *Index {
	return &Index{
		tree:    rtreego.NewTree(dimensions, minChildren, maxChildren),
		entries: make(map[key]*entry),
	}
}

// Size mengembalikan jumlah item di indeks.
func (x *Index) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Upsert menambah atau mengganti item dengan Layer dan ID yang sama.
func (x *Index) Upsert(item Item) error {
	e, err := newEntry(item)
	if err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	k := key{item.Layer, item.ID}
	put(x.tree, x.entries, k, e)
	x.record(k, e)
	return nil
}

// Remove menghapus item, mengembalikan false jika tidak ada.
func (x *Index) Remove(layer string, id uint) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	k := key{layer, id}
	old, ok := x.entries[k]
	if !ok {
		return false
	}
	x.tree.Delete(old)
	delete(x.entries, k)
	x.record(k, nil)
	return true
}

func (x *Index) record(k key, e *entry) {
	x.seq++
	if x.building > 0 {
		x.journal = append(x.journal, change{seq: x.seq, k: k, e: e})
	}
}

func put(tree *rtreego.Rtree, entries map[key]*entry, k key, e *entry) {
	if old, ok := entries[k]; ok {
		tree.Delete(old)
	}
	tree.Insert(e)
	entries[k] = e
}

// BeginRebuild dipanggil sebelum snapshot diambil dari penyimpanan. Nilai kembaliannya diteruskan
// ke CommitRebuild; setiap BeginRebuild harus diakhiri CommitRebuild atau AbortRebuild.
func (x *Index) BeginRebuild() uint64 {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.building++
	return x.seq
}

// AbortRebuild membatalkan rebuild tanpa mengubah isi indeks.
func (x *Index) AbortRebuild() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.endRebuild()
}

func (x *Index) endRebuild() {
	if x.building > 0 {
		x.building--
	}
	if x.building == 0 {
		x.journal = nil
	}
}

// Rebuild mengganti seluruh isi indeks dengan items.
func (x *Index) Rebuild(items []Item) (skipped int) {
	return x.CommitRebuild(x.BeginRebuild(), items)
}

// CommitRebuild mengganti seluruh isi indeks dengan snapshot items, lalu menerapkan ulang
// Upsert dan Remove yang terjadi setelah BeginRebuild mengembalikan since.
// Item dengan shape tidak valid dilewati dan dihitung di skipped.
func (x *Index) CommitRebuild(since uint64, items []Item) (skipped int) {
	entries := make(map[key]*entry, len(items))
	spatials := make([]rtreego.Spatial, 0, len(items))
	for _, item := range items {
		e, err := newEntry(item)
		if err != nil {
			skipped++
			continue
		}
		k := key{item.Layer, item.ID}
		if _, dup := entries[k]; dup {
			skipped++
			continue
		}
		entries[k] = e
		spatials = append(spatials, e)
	}

	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for _, s := range spatials {
		tree.Insert(s)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	for _, c := range x.journal {
		if c.seq <= since {
			continue
		}
		if c.e == nil {
			if old, ok := entries[c.k]; ok {
				tree.Delete(old)
				delete(entries, c.k)
			}
			continue
		}
		put(tree, entries, c.k, c.e)
	}
	x.tree = tree
	x.entries = entries
	x.endRebuild()
	return skipped
}

// Containing mengembalikan item yang shape-nya memuat p, diurutkan dari luas terkecil
// sehingga wilayah paling spesifik (misalnya RT) muncul lebih dulu.
func (x *Index) Containing(p geo.Point, layers ...string) ([]Hit, error) {
	query, err := rectFor(geo.BBox{MinLat: p.Lat, MinLon: p.Lon, MaxLat: p.Lat, MaxLon: p.Lon})
	if err != nil {
		return nil, err
	}

	x.mu.RLock()
	results := x.tree.SearchIntersect(query)
	x.mu.RUnlock()

	filter := layerFilter(layers)
	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		e := r.(*entry)
		if !filter(e.item.Layer) || !e.item.Shape.Contains(p) {
			continue
		}
		hits = append(hits, Hit{Item: e.item, Distance: geo.Distance(p, e.item.Shape.Center())})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Shape.Area() < hits[j].Shape.Area()
	})
	return hits, nil
}

// WithinRadius mengembalikan item yang titik pusatnya berjarak paling jauh radius meter dari center,
// diurutkan dari yang terdekat.
func (x *Index) WithinRadius(center geo.Point, radius float64, layers ...string) ([]Hit, error) {
	query, err := rectFor(geo.NewRadius(center.Lat, center.Lon, radius).Bounds())
	if err != nil {
		return nil, err
	}

	x.mu.RLock()
	results := x.tree.SearchIntersect(query)
	x.mu.RUnlock()

	filter := layerFilter(layers)
	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		e := r.(*entry)
		if !filter(e.item.Layer) {
			continue
		}
		d := geo.Distance(center, e.item.Shape.Center())
		if d <= radius {
			hits = append(hits, Hit{Item: e.item, Distance: d})
		}
	}
	sortByDistance(hits)
	return hits, nil
}

// Nearest mengembalikan k item terdekat dari p berdasarkan titik pusatnya.
// R-Tree mengurutkan menurut jarak ke kotak pembatas, jadi k kandidat pertama hanya dipakai untuk
// menentukan jari-jari pencarian; hasil akhirnya diurutkan ulang menurut jarak haversine ke pusat.
func (x *Index) Nearest(p geo.Point, k int, layers ...string) []Hit {
	if k <= 0 {
		return nil
	}
	filter := layerFilter(layers)
	refuse := func(_ []rtreego.Spatial, obj rtreego.Spatial) (bool, bool) {
		return !filter(obj.(*entry).item.Layer), false
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	candidates := x.tree.NearestNeighbors(k, rtreego.Point{p.Lat, p.Lon}, refuse)
	hits := make([]Hit, 0, len(candidates))
	reach := 0.0
	for _, c := range candidates {
		if c == nil {
			continue
		}
		e := c.(*entry)
		d := geo.Distance(p, e.item.Shape.Center())
		reach = math.Max(reach, d)
		hits = append(hits, Hit{Item: e.item, Distance: d})
	}

	// kurang dari k kandidat berarti semua item yang lolos filter sudah terambil
	if len(hits) == k {
		query, err := rectFor(geo.NewRadius(p.Lat, p.Lon, reach).Bounds())
		if err == nil {
			hits = hits[:0]
			for _, r := range x.tree.SearchIntersect(query) {
				e := r.(*entry)
				if !filter(e.item.Layer) {
					continue
				}
				if d := geo.Distance(p, e.item.Shape.Center()); d <= reach {
					hits = append(hits, Hit{Item: e.item, Distance: d})
				}
			}
		}
	}

	sortByDistance(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func sortByDistance(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance == hits[j].Distance {
			if hits[i].Layer == hits[j].Layer {
				return hits[i].ID < hits[j].ID
			}
			return hits[i].Layer < hits[j].Layer
		}
		return hits[i].Distance < hits[j].Distance
	})
}

func layerFilter(layers []string) func(string) bool {
	if len(layers) == 0 {
		return func(string) bool { return true }
	}
	allowed := make(map[string]struct{}, len(layers))
	for _, l := range layers {
		allowed[l] = struct{}{}
	}
	return func(layer string) bool {
		_, ok := allowed[layer]
		return ok
	}
}

func newEntry(item Item) (*entry, error) {
	if err := geo.Validate(item.Shape); err != nil {
		return nil, err
	}
	rect, err := rectFor(item.Shape.Bounds())
	if err != nil {
		return nil, err
	}
	return &entry{item: item, rect: rect}, nil
}

// rectFor membuat kotak R-Tree dengan urutan dimensi (lintang, bujur).
func rectFor(b geo.BBox) (*rtreego.Rect, error) {
	lengths := []float64{
		b.MaxLat - b.MinLat + minExtent,
		b.MaxLon - b.MinLon + minExtent,
	}
	origin := rtreego.Point{b.MinLat - minExtent/2, b.MinLon - minExtent/2}
	return rtreego.NewRect(origin, lengths)
}
