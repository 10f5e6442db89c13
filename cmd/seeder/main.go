package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/licitia/radar"
	"github.com/licitia/radar/core"
	"github.com/licitia/radar/matching"
)

// Sample SECOP-shaped tenders for local development.
var sampleTenders = []struct {
	externalId string
	entity     string
	object     string
	department string
	city       string
	amount     float64
	daysAgo    int
}{
	{
		externalId: "CO1.NTC.7100001",
		entity:     "INSTITUTO NACIONAL DE VIAS",
		object:     "Interventoría técnica, administrativa, financiera y ambiental para el mejoramiento de la vía La Dorada - Norcasia",
		department: "Caldas",
		city:       "La Dorada",
		amount:     1_850_000_000,
		daysAgo:    2,
	},
	{
		externalId: "CO1.NTC.7100002",
		entity:     "AGENCIA NACIONAL DE INFRAESTRUCTURA",
		object:     "Interventoría integral al contrato de concesión de la malla vial del Valle del Cauca",
		department: "Valle del Cauca",
		city:       "Cali",
		amount:     4_200_000_000,
		daysAgo:    3,
	},
	{
		externalId: "CO1.NTC.7100003",
		entity:     "INSTITUTO DE DESARROLLO URBANO",
		object:     "Interventoría para la conservación de la malla vial arterial de Bogotá",
		department: "Bogotá D.C.",
		city:       "Bogotá",
		amount:     2_600_000_000,
		daysAgo:    5,
	},
	{
		externalId: "CO1.NTC.7100004",
		entity:     "GOBERNACION DE ANTIOQUIA",
		object:     "Construcción de placa huella en la vía terciaria del municipio de Sonsón",
		department: "Antioquia",
		city:       "Sonsón",
		amount:     950_000_000,
		daysAgo:    7,
	},
	{
		externalId: "CO1.NTC.7100005",
		entity:     "ALCALDIA DE MANIZALES",
		object:     "Suministro de papelería y elementos de oficina para la secretaría de educación",
		department: "Caldas",
		city:       "Manizales",
		amount:     120_000_000,
		daysAgo:    4,
	},
}

// Sample contract history for the demo company.
var sampleExperiences = []struct {
	contract    string
	description string
	entity      string
	amount      float64
	year        int
	category    string
	area        string
}{
	{
		contract:    "INV-2022-115",
		description: "Interventoría vial para el mejoramiento y pavimentación de la carretera Honda - Mariquita",
		entity:      "INVIAS",
		amount:      1_400_000_000,
		year:        2022,
		category:    "Interventoría",
		area:        "Vías",
	},
	{
		contract:    "IDU-2021-078",
		description: "Interventoría técnica a la rehabilitación de la malla vial local",
		entity:      "IDU",
		amount:      980_000_000,
		year:        2021,
		category:    "Interventoría",
		area:        "Vías",
	},
	{
		contract:    "GOB-2020-033",
		description: "Construcción de obras de drenaje y estabilización de taludes en vía secundaria",
		entity:      "Gobernación de Caldas",
		amount:      760_000_000,
		year:        2020,
		category:    "Obra",
		area:        "Geotecnia",
	},
}

var (
	dbPath      = flag.String("db", "./radar_db", "database directory")
	companyName = flag.String("company", "Conalvias", "company the sample experiences belong to")
	csvPath     = flag.String("src", "", "optional CSV file of experiences to import")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	r, err := radar.Open(*dbPath)
	if err != nil {
		panic(err)
	}
	defer r.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	tenders := make([]*core.Tender, 0, len(sampleTenders))
	for _, sample := range sampleTenders {
		amount := sample.amount
		pub := now.AddDate(0, 0, -sample.daysAgo)
		tenders = append(tenders, &core.Tender{
			ExternalId:      sample.externalId,
			Source:          core.SourceSECOPII,
			EntityName:      sample.entity,
			ObjectText:      sample.object,
			Department:      sample.department,
			Municipality:    sample.city,
			Amount:          &amount,
			PublicationDate: &pub,
			State:           "Publicado",
		})
	}
	inserted, updated, err := r.TenderRepository().UpsertTenders(ctx, tenders...)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded tenders", "inserted", inserted, "updated", updated)

	for _, sample := range sampleExperiences {
		amount := sample.amount
		completed := time.Date(sample.year, 6, 30, 0, 0, 0, 0, time.UTC)
		_, err := r.ExperienceRepository().AddExperiences(ctx, &core.Experience{
			CompanyName:        *companyName,
			ContractNumber:     sample.contract,
			ProjectDescription: sample.description,
			ContractingEntity:  sample.entity,
			CompletionDate:     &completed,
			Amount:             &amount,
			Category:           sample.category,
			EngineeringArea:    sample.area,
			Keywords:           matching.ExtractKeywords(sample.description),
		})
		if err != nil {
			panic(err)
		}
	}
	slog.Info("seeded experiences", "company", *companyName, "count", len(sampleExperiences))

	if *csvPath != "" {
		importer, err := r.NewImporter()
		if err != nil {
			panic(err)
		}
		f, err := os.Open(*csvPath)
		if err != nil {
			panic(err)
		}
		defer f.Close()

		result, err := importer.ImportCSV(ctx, f, *companyName)
		if err != nil {
			panic(err)
		}
		slog.Info("imported experiences from file",
			"file", *csvPath, "imported", result.Imported, "updated", result.Updated, "rowErrors", len(result.Errors))
	}
}
