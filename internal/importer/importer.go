package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/cinefilmes/catalog/internal/catalog/domain"
	"github.com/cinefilmes/catalog/pkg/interfaces"
)

// Spreadsheet column headers, as produced by the catalog template.
const (
	colTitle         = "titulo"
	colSynopsis      = "resumo"
	colContentRating = "classificacao_indicativa"
	colIMDBRating    = "classificacao_IMDB"
	colRuntime       = "duracao_minutos"
	colReleaseDate   = "data_de_lancamento"
	colCover         = "capa"
	colGenres        = "generos"
	colDubbings      = "dublagens_disponiveis"
	colSubtitles     = "legendas_disponiveis"
	colCast          = "elenco"
)

var requiredColumns = []string{
	colTitle, colSynopsis, colContentRating, colIMDBRating, colRuntime,
	colReleaseDate, colCover, colGenres, colDubbings, colSubtitles, colCast,
}

// MovieCreator is the slice of the catalog service the importer drives.
type MovieCreator interface {
	CreateMovie(ctx context.Context, movie *domain.Movie) error
}

// Result summarizes one import run.
type Result struct {
	Created    int
	Duplicates int
	Failed     int
}

// Importer reads movies from a spreadsheet and creates them one per row.
// A bad row never aborts the batch: duplicates and malformed rows are
// logged and skipped.
type Importer struct {
	creator MovieCreator
	logger  interfaces.Logger
}

// NewImporter creates a new spreadsheet importer.
func NewImporter(creator MovieCreator, logger interfaces.Logger) *Importer {
	return &Importer{
		creator: creator,
		logger:  logger,
	}
}

// Import reads the spreadsheet at path and creates one movie per row.
// An unreadable file or a missing header column is an error; everything
// past the header is per-row partial failure.
func (i *Importer) Import(ctx context.Context, path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet has no header row")
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	batch := uuid.New().String()
	log := i.logger.WithFields(interfaces.String("batch", batch))
	baseDir := filepath.Dir(path)

	result := &Result{}
	for n, row := range rows[1:] {
		// Header is row 1, data starts at row 2.
		rowNumber := n + 2

		movie, err := i.parseRow(log, baseDir, columns, row)
		if err != nil {
			log.Warn("Skipping malformed row",
				interfaces.Int("row", rowNumber),
				interfaces.Error(err))
			result.Failed++
			continue
		}

		if err := i.creator.CreateMovie(ctx, movie); err != nil {
			if errors.Is(err, domain.ErrDuplicateMovie) {
				log.Warn("Movie already in catalog",
					interfaces.Int("row", rowNumber),
					interfaces.String("title", movie.Title))
				result.Duplicates++
				continue
			}
			log.Warn("Failed to import row",
				interfaces.Int("row", rowNumber),
				interfaces.String("title", movie.Title),
				interfaces.Error(err))
			result.Failed++
			continue
		}

		log.Info("Movie imported",
			interfaces.Int("row", rowNumber),
			interfaces.Uint("id", movie.ID),
			interfaces.String("title", movie.Title))
		result.Created++
	}

	log.Info("Import finished",
		interfaces.Int("created", result.Created),
		interfaces.Int("duplicates", result.Duplicates),
		interfaces.Int("failed", result.Failed))

	return result, nil
}

// parseRow converts one spreadsheet row into a movie aggregate.
func (i *Importer) parseRow(log interfaces.Logger, baseDir string, columns map[string]int, row []string) (*domain.Movie, error) {
	title := cell(row, columns[colTitle])
	if title == "" {
		return nil, fmt.Errorf("title is empty")
	}

	releaseDate, err := ParseReleaseDate(cell(row, columns[colReleaseDate]))
	if err != nil {
		return nil, err
	}

	contentRating, err := parseOptionalInt(cell(row, columns[colContentRating]))
	if err != nil {
		return nil, fmt.Errorf("invalid content rating: %w", err)
	}
	imdbRating, err := parseOptionalFloat(cell(row, columns[colIMDBRating]))
	if err != nil {
		return nil, fmt.Errorf("invalid IMDB rating: %w", err)
	}
	runtime, err := parseOptionalInt(cell(row, columns[colRuntime]))
	if err != nil {
		return nil, fmt.Errorf("invalid runtime: %w", err)
	}

	return &domain.Movie{
		Title:          title,
		Synopsis:       cell(row, columns[colSynopsis]),
		ContentRating:  contentRating,
		IMDBRating:     imdbRating,
		RuntimeMinutes: runtime,
		ReleaseDate:    releaseDate,
		Cover:          i.loadCover(log, baseDir, cell(row, columns[colCover])),
		Genres:         SplitList(cell(row, columns[colGenres])),
		Dubbings:       SplitList(cell(row, columns[colDubbings])),
		Subtitles:      SplitList(cell(row, columns[colSubtitles])),
		Cast:           ParseCast(cell(row, columns[colCast])),
	}, nil
}

// loadCover reads the cover image named by the cell, resolved relative to
// the spreadsheet. An unreadable cover is not a row failure.
func (i *Importer) loadCover(log interfaces.Logger, baseDir, cellValue string) []byte {
	if cellValue == "" {
		return nil
	}

	coverPath := cellValue
	if !filepath.IsAbs(coverPath) {
		coverPath = filepath.Join(baseDir, coverPath)
	}

	data, err := os.ReadFile(coverPath)
	if err != nil {
		log.Warn("Failed to read cover image",
			interfaces.String("path", coverPath),
			interfaces.Error(err))
		return nil
	}
	return data
}

// mapColumns maps header names to column indexes.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[name] = idx
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("spreadsheet is missing column %q", name)
		}
	}
	return columns, nil
}

// cell returns the trimmed cell at idx, empty when the row is short.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
