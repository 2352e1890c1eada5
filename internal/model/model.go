package model

// All berisi semua model untuk AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Desa{},
		&BatasWilayah{},
		&Rumah{},
		&KartuKeluarga{},
		&Penduduk{},
		&Bencana{},
		&Fasilitas{},
		&TempatPenting{},
	}
}
