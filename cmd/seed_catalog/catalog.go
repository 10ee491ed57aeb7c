package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Tipos de fila del catálogo.
const (
	rowFeed   = "alimento"
	rowSupply = "insumo"
)

// catalogRow una fila del CSV exportado desde la hoja de cálculo de la granja:
// tipo;nombre;marca_o_categoria;unidad;stock;reorden;costo;proveedor
type catalogRow struct {
	Line     int
	Kind     string
	Name     string
	Group    string // marca (alimento) o categoría (insumo)
	Unit     string
	Stock    decimal.Decimal
	Reorder  decimal.Decimal
	UnitCost decimal.Decimal
	Supplier string
}

// readCatalog lee el CSV separado por ';'. Con latin1=true decodifica ISO-8859-1,
// que es lo que produce Excel en Windows con configuración regional en español.
func readCatalog(r io.Reader, latin1 bool) ([]catalogRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	var rows []catalogRow
	for i, rec := range records {
		line := i + 1
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "tipo") {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 7 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 7 columnas, hay %d", line, len(rec))
		}
		row := catalogRow{
			Line:  line,
			Kind:  strings.ToLower(strings.TrimSpace(rec[0])),
			Name:  strings.TrimSpace(rec[1]),
			Group: strings.TrimSpace(rec[2]),
			Unit:  strings.TrimSpace(rec[3]),
		}
		if row.Kind != rowFeed && row.Kind != rowSupply {
			return nil, fmt.Errorf("línea %d: tipo %q desconocido (alimento | insumo)", line, rec[0])
		}
		if row.Name == "" {
			return nil, fmt.Errorf("línea %d: nombre vacío", line)
		}
		for _, f := range []struct {
			dst  *decimal.Decimal
			raw  string
			name string
		}{
			{&row.Stock, rec[4], "stock"},
			{&row.Reorder, rec[5], "reorden"},
			{&row.UnitCost, rec[6], "costo"},
		} {
			v, err := parseAmount(f.raw)
			if err != nil {
				return nil, fmt.Errorf("línea %d: %s: %w", line, f.name, err)
			}
			*f.dst = v
		}
		if len(rec) > 7 {
			row.Supplier = strings.TrimSpace(rec[7])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseAmount acepta "1234.5", "1234,5" y "1.234,5". Vacío es cero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
