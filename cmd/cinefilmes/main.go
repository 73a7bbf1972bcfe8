package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cinefilmes/catalog/internal/auth"
	"github.com/cinefilmes/catalog/internal/catalog/repository"
	"github.com/cinefilmes/catalog/internal/catalog/service"
	"github.com/cinefilmes/catalog/internal/importer"
	"github.com/cinefilmes/catalog/pkg/config"
	"github.com/cinefilmes/catalog/pkg/database"
	"github.com/cinefilmes/catalog/pkg/interfaces"
	"github.com/cinefilmes/catalog/pkg/logger"
)

func main() {
	var (
		importPath = flag.String("import", "", "Import movies from the given .xlsx spreadsheet")
		doLogin    = flag.Bool("login", false, "Run the Google login flow and print the profile")
	)
	flag.Parse()

	cfg := config.MustLoad()

	log := logger.MustNew(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Development)

	db, err := database.NewGormDB(database.DefaultSQLiteConfig(cfg.Database.Path))
	if err != nil {
		log.Fatal("Failed to open database", interfaces.Error(err))
	}

	if err := repository.InitializeSchema(db); err != nil {
		log.Fatal("Failed to initialize schema", interfaces.Error(err))
	}

	catalog := service.NewCatalogService(repository.NewGormRepository(db), log)
	ctx := context.Background()

	switch {
	case *doLogin:
		runLogin(ctx, cfg, log)
	case *importPath != "":
		runImport(ctx, catalog, log, *importPath)
	default:
		listCatalog(ctx, catalog, log)
	}
}

func runLogin(ctx context.Context, cfg *config.Config, log interfaces.Logger) {
	provider := auth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, log)

	profile, err := provider.Login(ctx)
	if err != nil {
		log.Fatal("Login failed", interfaces.Error(err))
	}

	fmt.Printf("Bem-vindo(a), %s <%s>\n", profile.Name, profile.Email)
}

func runImport(ctx context.Context, catalog *service.CatalogService, log interfaces.Logger, path string) {
	result, err := importer.NewImporter(catalog, log).Import(ctx, path)
	if err != nil {
		log.Fatal("Import failed", interfaces.Error(err))
	}

	fmt.Printf("Importação concluída: %d criados, %d duplicados, %d com erro\n",
		result.Created, result.Duplicates, result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}

func listCatalog(ctx context.Context, catalog *service.CatalogService, log interfaces.Logger) {
	movies, err := catalog.ListMovies(ctx)
	if err != nil {
		log.Fatal("Failed to list movies", interfaces.Error(err))
	}

	if len(movies) == 0 {
		fmt.Println("Catálogo vazio.")
		return
	}

	for _, movie := range movies {
		runtime := "-"
		if movie.RuntimeMinutes != nil {
			runtime = fmt.Sprintf("%d min", *movie.RuntimeMinutes)
		}
		fmt.Printf("[%d] %s (%s, %s)\n", movie.ID, movie.Title,
			movie.ReleaseDate.Format("2006-01-02"), runtime)
	}
}
