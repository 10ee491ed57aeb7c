// seed_catalog carga proveedores, alimento e insumos iniciales desde un CSV exportado de Excel.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv] [utf8]
// Por defecto busca catalogo.csv en el directorio actual y lo lee como ISO-8859-1.
// Las filas que ya existen (mismo nombre) se omiten, así que puede ejecutarse varias veces.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/bootstrap"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Granja-api/internal/interfaces/http"
	"github.com/jhoicas/Granja-api/pkg/config"
	"github.com/jhoicas/Granja-api/pkg/logger"
)

func main() {
	path := "catalogo.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	latin1 := !(len(os.Args) > 2 && strings.EqualFold(os.Args[2], "utf8"))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir catálogo")
	}
	defer f.Close()
	rows, err := readCatalog(f, latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo inválido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	deps := bootstrap.Build(bootstrap.PostgresStore(pool), bootstrap.Options{Log: log.Component("seed")})
	created, skipped, err := seed(ctx, deps, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	log.Info().Int("creados", created).Int("omitidos", skipped).Str("file", path).Msg("catálogo cargado")
}

// seed crea los proveedores referenciados y luego cada ítem. Un duplicado se omite.
func seed(ctx context.Context, deps httpRouter.RouterDeps, rows []catalogRow) (created, skipped int, err error) {
	suppliers := map[string]string{}
	existing, err := deps.SupplierUC.List(ctx, dto.PageRequest{Limit: 500})
	if err != nil {
		return 0, 0, err
	}
	for _, s := range existing {
		suppliers[strings.ToLower(s.Name)] = s.ID
	}

	feedKeys := map[string]bool{}
	feedItems, err := deps.FeedUC.ListItems(ctx, false, dto.PageRequest{Limit: 500})
	if err != nil {
		return 0, 0, err
	}
	for _, it := range feedItems {
		feedKeys[feedKey(it.FeedType, it.Brand)] = true
	}

	for _, row := range rows {
		var supplierID *string
		if row.Supplier != "" {
			key := strings.ToLower(row.Supplier)
			id, ok := suppliers[key]
			if !ok {
				s, err := deps.SupplierUC.Create(ctx, dto.SupplierRequest{Name: row.Supplier})
				if err != nil {
					return created, skipped, fmt.Errorf("línea %d: proveedor: %w", row.Line, err)
				}
				id = s.ID
				suppliers[key] = id
			}
			supplierID = &id
		}

		switch row.Kind {
		case rowFeed:
			if feedKeys[feedKey(row.Name, row.Group)] {
				skipped++
				continue
			}
			_, err = deps.FeedUC.CreateItem(ctx, dto.CreateFeedInventoryRequest{
				FeedType:     row.Name,
				Brand:        row.Group,
				SupplierID:   supplierID,
				CurrentStock: row.Stock,
				ReorderLevel: row.Reorder,
				UnitCost:     row.UnitCost,
			})
			feedKeys[feedKey(row.Name, row.Group)] = true
		default:
			_, err = deps.ItemUC.Create(ctx, dto.CreateInventoryItemRequest{
				Name:         row.Name,
				Category:     strings.ToLower(row.Group),
				Unit:         row.Unit,
				CurrentStock: row.Stock,
				ReorderLevel: row.Reorder,
				UnitCost:     row.UnitCost,
				SupplierID:   supplierID,
			})
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
		}
		if err != nil {
			return created, skipped, fmt.Errorf("línea %d: %w", row.Line, err)
		}
		created++
	}
	return created, skipped, nil
}

func feedKey(feedType, brand string) string {
	return strings.ToLower(feedType) + "|" + strings.ToLower(brand)
}
