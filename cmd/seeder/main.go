package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"iter"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/grantmatch"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/ingestion"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

var grants = []*core.Grant{
	{
		Title:          "EIC Accelerator Open",
		Description:    "Funding for startups and SMEs developing breakthrough innovations with high market potential. Supports development from demonstrated technology through to market launch.",
		FundingBody:    "European Innovation Council",
		AmountMin:      int64Ptr(500000),
		AmountMax:      int64Ptr(2500000),
		Deadline:       datePtr("2026-10-01"),
		Tags:           []string{"deep tech", "innovation", "grant", "equity"},
		ApplicationURL: "https://eic.ec.europa.eu/eic-funding-opportunities/eic-accelerator",
		MinTRL:         intPtr(5),
		MaxTRL:         intPtr(8),
	},
	{
		Title:       "Horizon Europe Clean Energy Transition",
		Description: "Collaborative research on renewable energy systems, grid integration, and storage technologies for the European energy transition.",
		FundingBody: "Horizon Europe",
		AmountMin:   int64Ptr(2000000),
		AmountMax:   int64Ptr(6000000),
		Deadline:    datePtr("2026-09-15"),
		Tags:        []string{"energy", "renewables", "research grant"},
		MinTRL:      intPtr(3),
		MaxTRL:      intPtr(6),
	},
	{
		Title:             "Innovation Norway Startup Grant",
		Description:       "Early-stage funding for Norwegian startups with innovative business models and international growth ambitions.",
		FundingBody:       "Innovation Norway",
		AmountMax:         int64Ptr(150000),
		Tags:              []string{"startup", "grant", "early stage"},
		EligibleCountries: []string{"Norway"},
		MinTRL:            intPtr(1),
		MaxTRL:            intPtr(5),
	},
	{
		Title:             "EXIST Business Start-up Grant",
		Description:       "Supports students, graduates, and scientists in preparing technology-oriented start-ups from universities and research institutions.",
		FundingBody:       "German Federal Ministry for Economic Affairs",
		AmountMax:         int64Ptr(125000),
		Deadline:          datePtr("2026-11-30"),
		Tags:              []string{"startup", "university spin-off", "grant"},
		EligibleCountries: []string{"Germany"},
		MinTRL:            intPtr(1),
		MaxTRL:            intPtr(4),
	},
	{
		Title:       "Eurostars Collaborative R&D",
		Description: "Transnational projects led by innovative SMEs developing new products, processes, or services for commercialization.",
		FundingBody: "Eureka",
		AmountMin:   int64Ptr(300000),
		AmountMax:   int64Ptr(1500000),
		Deadline:    datePtr("2026-09-04"),
		Tags:        []string{"R&D", "SME", "collaboration", "grant"},
		MinTRL:      intPtr(4),
		MaxTRL:      intPtr(7),
	},
	{
		Title:       "EIT Climate-KIC Accelerator",
		Description: "Acceleration programme for climate-impact startups, combining grants with coaching and access to a European partner network.",
		FundingBody: "EIT Climate-KIC",
		AmountMax:   int64Ptr(50000),
		Tags:        []string{"climate", "cleantech", "accelerator"},
		MinTRL:      intPtr(3),
		MaxTRL:      intPtr(7),
	},
	{
		Title:       "Digital Europe AI Deployment Call",
		Description: "Deployment of trustworthy artificial intelligence solutions in European industry and public services.",
		FundingBody: "Digital Europe Programme",
		AmountMin:   int64Ptr(1000000),
		AmountMax:   int64Ptr(5000000),
		Deadline:    datePtr("2027-01-21"),
		Tags:        []string{"artificial intelligence", "digital", "deployment", "grant"},
		MinTRL:      intPtr(6),
		MaxTRL:      intPtr(9),
	},
	{
		Title:             "Vinnova Innovative Startups",
		Description:       "Funding for young Swedish companies developing novel solutions with scalability and international potential.",
		FundingBody:       "Vinnova",
		AmountMax:         int64Ptr(30000),
		Tags:              []string{"startup", "innovation", "grant"},
		EligibleCountries: []string{"Sweden"},
		MinTRL:            intPtr(2),
		MaxTRL:            intPtr(6),
	},
	{
		Title:       "Blue Economy Windows Call",
		Description: "Supports SMEs developing and demonstrating innovative maritime and marine technologies for a sustainable blue economy.",
		FundingBody: "European Maritime and Fisheries Fund",
		AmountMin:   int64Ptr(700000),
		AmountMax:   int64Ptr(2500000),
		Deadline:    datePtr("2026-12-10"),
		Tags:        []string{"maritime", "blue economy", "grant"},
		MinTRL:      intPtr(6),
		MaxTRL:      intPtr(8),
	},
	{
		Title:       "Women TechEU",
		Description: "Support for deep-tech startups founded or led by women, covering mentoring and a grant for early-stage growth.",
		FundingBody: "European Innovation Council",
		AmountMax:   int64Ptr(75000),
		Deadline:    datePtr("2026-10-14"),
		Tags:        []string{"deep tech", "diversity", "grant"},
		MinTRL:      intPtr(2),
		MaxTRL:      intPtr(6),
	},
}

var seedFileName = flag.String("src", "", "file of seed data, one JSON grant per line")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// grantsFromFile returns an iterator over grants in a JSON-lines file.
func grantsFromFile(filename string) (iter.Seq[*core.Grant], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(*core.Grant) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var grant core.Grant
			if err := json.Unmarshal(line, &grant); err != nil {
				slog.Error("skipping malformed grant", "err", err)
				continue
			}
			if !yield(&grant) {
				return
			}
		}
	}, nil
}

// grantsFromSlice returns an iterator over a slice of grants.
func grantsFromSlice(grants []*core.Grant) iter.Seq[*core.Grant] {
	return func(yield func(*core.Grant) bool) {
		for _, grant := range grants {
			if !yield(grant) {
				return
			}
		}
	}
}

// ingestBatched reads from a source iterator and ingests grants in batches.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq[*core.Grant], batchSize int) error {
	batch := make([]*core.Grant, 0, batchSize)

	for grant := range source {
		batch = append(batch, grant)
		if len(batch) == batchSize {
			if err := pipeline.Ingest(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	// Process any remaining grants
	if len(batch) > 0 {
		if err := pipeline.Ingest(ctx, batch...); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	catalog, err := grantmatch.NewCatalog("./grants_db")
	if err != nil {
		panic(err)
	}
	defer catalog.Close()

	ingester, err := catalog.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[*core.Grant]
	if seedFileName != nil && *seedFileName != "" {
		source, err = grantsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = grantsFromSlice(grants)
	}

	// Ingest in batches of 5
	if err := ingestBatched(ctx, ingester, source, 5); err != nil {
		panic(err)
	}
}
