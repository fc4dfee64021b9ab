package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/sectioncms/internal/content"
	"github.com/sectioncms/internal/db"
	"github.com/sectioncms/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:seed-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(sqlite.Open(dsn), logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestSeedFillsEmptySections(t *testing.T) {
	gdb := setupSeedTestDB(t)
	sections := service.NewSections(gdb)
	stockQuote := service.NewStockQuoteService(gdb)

	if _, err := seed(sections, stockQuote); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	values, err := sections.CoreValues.List(true)
	if err != nil {
		t.Fatalf("list core values: %v", err)
	}
	demo := content.DemoCoreValues()
	if len(values) != len(demo) {
		t.Fatalf("expected %d core values, got %d", len(demo), len(values))
	}
	for i := range values {
		if values[i].Title != demo[i].Title || values[i].SortOrder != demo[i].Order || !values[i].IsActive {
			t.Fatalf("core value %d not seeded as expected: %#v", i, values[i])
		}
	}

	committees, err := sections.Committees.List(true)
	if err != nil {
		t.Fatalf("list committees: %v", err)
	}
	if len(committees) != 1 || len(committees[0].Members) != 2 {
		t.Fatalf("expected one committee with two members, got %#v", committees)
	}

	settings, err := stockQuote.Get()
	if err != nil {
		t.Fatalf("get stock quote: %v", err)
	}
	if settings.Symbol != "DEMO" || settings.IsActive {
		t.Fatalf("expected inactive demo stock quote, got %#v", settings)
	}
}

func TestSeedSkipsExistingContent(t *testing.T) {
	gdb := setupSeedTestDB(t)
	sections := service.NewSections(gdb)

	if _, err := sections.StatBlocks.Create(&db.StatBlock{Label: "Offices", Value: "4"}, true); err != nil {
		t.Fatalf("create stat block: %v", err)
	}

	report, err := seed(sections, service.NewStockQuoteService(gdb))
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	blocks, err := sections.StatBlocks.List(true)
	if err != nil {
		t.Fatalf("list stat blocks: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Label != "Offices" {
		t.Fatalf("expected existing stat block to be kept alone, got %#v", blocks)
	}
	if len(report) != 7 {
		t.Fatalf("expected a line per section, got %v", report)
	}

	if _, err := seed(sections, service.NewStockQuoteService(gdb)); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	values, _ := sections.CoreValues.List(true)
	if len(values) != len(content.DemoCoreValues()) {
		t.Fatalf("expected seeding to be idempotent, got %d core values", len(values))
	}
}
