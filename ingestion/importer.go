package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/licitia/radar/core"
	"github.com/licitia/radar/matching"
	"github.com/licitia/radar/storage"
)

// Importer loads company experiences from CSV exports of the spreadsheets
// companies keep their contract history in.
type Importer struct {
	experienceRepository storage.ExperienceRepository
	logger               *slog.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer) error

// WithImporterLogger sets a custom logger.
// Default is slog.Default().
func WithImporterLogger(logger *slog.Logger) ImporterOption {
	return func(i *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// NewImporter creates an experience importer.
func NewImporter(experienceRepository storage.ExperienceRepository, opts ...ImporterOption) (*Importer, error) {
	if experienceRepository == nil {
		return nil, ErrExperienceRepositoryRequired
	}

	i := &Importer{
		experienceRepository: experienceRepository,
		logger:               slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	return i, nil
}

// column indexes resolved from the header row. -1 means absent.
type columnMap struct {
	company      int
	contract     int
	description  int
	entity       int
	date         int
	amount       int
	category     int
	area         int
	department   int
	municipality int
}

// ImportResult summarizes one import.
type ImportResult struct {
	Imported int
	Updated  int
	Errors   []string
}

// ImportCSV reads experience rows and stores them, with the keyword
// signature extracted and cached at import time. Rows with a contract number
// already stored for the same company are updated in place. Malformed
// amounts and dates degrade to absent fields; rows without a project
// description are recorded as row errors and skipped. defaultCompany fills
// in when a row has no company cell.
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader, defaultCompany string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := resolveColumns(header)
	if columns.description < 0 {
		return nil, ErrMissingDescriptionColumn
	}

	result := &ImportResult{}

	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		experience := i.buildExperience(row, columns, defaultCompany)
		if experience == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: empty project description", rowNum))
			continue
		}

		updated, err := i.store(ctx, experience)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if updated {
			result.Updated++
		} else {
			result.Imported++
		}
	}

	i.logger.Info("experience import complete",
		"imported", result.Imported, "updated", result.Updated, "rowErrors", len(result.Errors))
	return result, nil
}

// store inserts the experience, or updates the stored row sharing its
// company and contract number.
func (i *Importer) store(ctx context.Context, experience *core.Experience) (updated bool, err error) {
	if err := core.ValidateExperience(experience); err != nil {
		return false, err
	}
	if experience.ContractNumber != "" {
		existing, err := i.experienceRepository.GetExperiencesByCompany(ctx, experience.CompanyName)
		if err != nil {
			return false, err
		}
		for _, candidate := range existing {
			if candidate.ContractNumber == experience.ContractNumber {
				experience.Id = candidate.Id
				_, err := i.experienceRepository.UpdateExperiences(ctx, experience)
				return true, err
			}
		}
	}
	_, err = i.experienceRepository.AddExperiences(ctx, experience)
	return false, err
}

func (i *Importer) buildExperience(row []string, columns columnMap, defaultCompany string) *core.Experience {
	description := cell(row, columns.description)
	if description == "" {
		return nil
	}

	company := cell(row, columns.company)
	if company == "" {
		company = defaultCompany
	}

	return &core.Experience{
		CompanyName:        company,
		ContractNumber:     cell(row, columns.contract),
		ProjectDescription: description,
		ContractingEntity:  cell(row, columns.entity),
		CompletionDate:     parseImportDate(cell(row, columns.date)),
		Amount:             parseImportAmount(cell(row, columns.amount)),
		Category:           cell(row, columns.category),
		EngineeringArea:    cell(row, columns.area),
		Department:         cell(row, columns.department),
		Municipality:       cell(row, columns.municipality),
		Keywords:           matching.ExtractKeywords(description),
	}
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// resolveColumns matches header cells against the names the spreadsheets
// use, tolerating case and accents.
func resolveColumns(header []string) columnMap {
	columns := columnMap{
		company: -1, contract: -1, description: -1, entity: -1,
		date: -1, amount: -1, category: -1, area: -1,
		department: -1, municipality: -1,
	}

	for index, name := range header {
		switch normalized := normalizeHeader(name); {
		case normalized == "empresa":
			columns.company = index
		case strings.HasPrefix(normalized, "contrato"):
			columns.contract = index
		case normalized == "obra" || normalized == "obras" ||
			normalized == "descripcion" || normalized == "proyecto":
			columns.description = index
		case strings.Contains(normalized, "entidad"):
			columns.entity = index
		case strings.HasPrefix(normalized, "fecha"):
			columns.date = index
		case strings.HasPrefix(normalized, "valor") || normalized == "monto":
			columns.amount = index
		case strings.HasPrefix(normalized, "categoria"):
			columns.category = index
		case strings.HasPrefix(normalized, "area"):
			columns.area = index
		case normalized == "departamento":
			columns.department = index
		case normalized == "municipio" || normalized == "ciudad":
			columns.municipality = index
		}
	}

	return columns
}

var headerReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ñ", "n",
	".", "",
)

func normalizeHeader(name string) string {
	return strings.TrimSpace(headerReplacer.Replace(strings.ToLower(name)))
}

// parseImportAmount reads a currency cell, tolerating dollar signs and
// thousands separators. Unparseable values become absent.
func parseImportAmount(raw string) *float64 {
	if raw == "" {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

var importDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
}

// parseImportDate reads a date cell. Unparseable values become absent.
func parseImportDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range importDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}
