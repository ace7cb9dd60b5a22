// seed importa un catálogo XML de demostración (categorías, productos, artículos y usuarios).
//
// Uso: go run ./cmd/seed [-strict] [ruta/catalogo.xml]
// Por defecto lee catalogo.xml del directorio actual. Usa la misma configuración que la API (DB_DRIVER, DATABASE_URL, ...).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/application/seed"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/catalogxml"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/persistence"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	strict := flag.Bool("strict", false, "valida nombres de categoría (palabras prohibidas, unicidad, nombre en la descripción)")
	flag.Parse()

	xmlPath := "catalogo.xml"
	if flag.NArg() > 0 {
		xmlPath = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(xmlPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", xmlPath).Msg("abrir XML")
	}
	defer f.Close()

	catalog, err := catalogxml.Read(f)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx := context.Background()
	repos, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer repos.Close()

	importer := seed.NewImporter(
		usecase.NewCategoryUseCase(repos.Categories, repos.Products),
		usecase.NewProductUseCase(repos.Products, repos.Articles, nil, nil, usecase.EcoscoreConfig{}, log),
		usecase.NewArticleUseCase(repos.Articles, repos.Products),
		cascade.NewUseCase(repos.Tx, log),
		auth.NewAuthUseCase(repos.Users, auth.JWTConfig{}),
		log,
	)

	rep, err := importer.Import(ctx, catalog, *strict)
	if err != nil {
		log.Error().Err(err).Msg("importación interrumpida")
		repos.Close()
		os.Exit(1)
	}
	for _, s := range rep.Skipped {
		log.Warn().Msg("omitido: " + s)
	}
	fmt.Printf("Importados: %d categorías, %d productos, %d artículos, %d usuarios (%d omitidos)\n",
		rep.Categories, rep.Products, rep.Articles, rep.Users, len(rep.Skipped))
}
