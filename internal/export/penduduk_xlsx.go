// Package export menulis data kependudukan ke berkas spreadsheet.
package export

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"sistem-desa/internal/model"
)

const SheetPenduduk = "Penduduk"

var pendudukHeader = []interface{}{
	"No", "NIK", "Nama", "Jenis Kelamin", "Tempat Lahir", "Tanggal Lahir", "Agama",
	"Pendidikan", "Pekerjaan", "Status Perkawinan", "Hubungan Keluarga", "No KK", "RT", "RW",
}

// PendudukXLSX menulis daftar penduduk ke satu sheet. NIK dan No KK ditulis sebagai teks.
func PendudukXLSX(list []model.Penduduk) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPenduduk); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(SheetPenduduk, "A1", &pendudukHeader); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(pendudukHeader), 1)
	if err := f.SetCellStyle(SheetPenduduk, "A1", last, bold); err != nil {
		return nil, err
	}

	for i, p := range list {
		row := i + 2
		noKK := ""
		if p.KartuKeluarga != nil {
			noKK = p.KartuKeluarga.NoKK
		}
		values := []interface{}{
			i + 1, p.NIK, p.Nama, p.JenisKelamin, p.TempatLahir, p.TanggalLahir, p.Agama,
			p.Pendidikan, p.Pekerjaan, p.StatusPerkawinan, p.HubunganKeluarga, noKK, p.RT, p.RW,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if s, ok := v.(string); ok {
				err = f.SetCellStr(SheetPenduduk, cell, s)
			} else {
				err = f.SetCellValue(SheetPenduduk, cell, v)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(SheetPenduduk, "B", "C", 22); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}
