package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sectioncms/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSectionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:section-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(sqlite.Open(dsn), logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestSectionServiceCreateAppendsOrder(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewCoreValueService(gdb)

	first, err := svc.Create(&db.CoreValue{Title: "Integrity", Ordering: db.Ordering{IsActive: true}}, true)
	if err != nil {
		t.Fatalf("create core value failed: %v", err)
	}
	second, err := svc.Create(&db.CoreValue{Title: "Innovation", Ordering: db.Ordering{IsActive: true}}, true)
	if err != nil {
		t.Fatalf("create core value failed: %v", err)
	}

	if first.SortOrder != 0 || second.SortOrder != 1 {
		t.Fatalf("expected incremental order values, got %d and %d", first.SortOrder, second.SortOrder)
	}
}

func TestSectionServiceListBreaksTiesByID(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewStatBlockService(gdb)

	for _, label := range []string{"Revenue", "Employees", "Countries"} {
		if _, err := svc.Create(&db.StatBlock{Label: label, Value: "1", Ordering: db.Ordering{SortOrder: 3, IsActive: true}}, false); err != nil {
			t.Fatalf("create stat block failed: %v", err)
		}
	}
	if _, err := svc.Create(&db.StatBlock{Label: "Founded", Value: "1998", Ordering: db.Ordering{SortOrder: 1, IsActive: true}}, false); err != nil {
		t.Fatalf("create stat block failed: %v", err)
	}

	items, err := svc.List(true)
	if err != nil {
		t.Fatalf("list stat blocks failed: %v", err)
	}

	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.Label)
	}
	want := "Founded,Revenue,Employees,Countries"
	if strings.Join(got, ",") != want {
		t.Fatalf("expected order %s, got %s", want, strings.Join(got, ","))
	}
}

func TestSectionServiceListFiltersInactive(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewCoreValueService(gdb)

	if _, err := svc.Create(&db.CoreValue{Title: "Visible", Ordering: db.Ordering{IsActive: true}}, true); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(&db.CoreValue{Title: "Hidden"}, true); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	active, err := svc.List(false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 1 || active[0].Title != "Visible" {
		t.Fatalf("expected only visible core value, got %#v", active)
	}

	all, err := svc.List(true)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 core values, got %d", len(all))
	}
}

func TestSectionServiceValidation(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewCoreValueService(gdb)

	_, err := svc.Create(&db.CoreValue{Title: "   "}, true)
	if !errors.Is(err, ErrSectionInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}

	var count int64
	gdb.Model(&db.CoreValue{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected nothing to be stored, found %d rows", count)
	}
}

func TestSectionServiceUpdateKeepsCreatedAt(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewHeroBannerService(gdb)

	created, err := svc.Create(&db.HeroBanner{Title: "Welcome", ImageURL: "/uploads/images/hero.png"}, true)
	if err != nil {
		t.Fatalf("create banner failed: %v", err)
	}
	if created.Page != "home" {
		t.Fatalf("expected default page home, got %q", created.Page)
	}

	updated, err := svc.Update(created.ID, &db.HeroBanner{
		Title:    "Welcome back",
		Page:     "About",
		CTAText:  "Learn more",
		CTALink:  "https://example.com/about",
		Ordering: db.Ordering{SortOrder: 4, IsActive: true},
	})
	if err != nil {
		t.Fatalf("update banner failed: %v", err)
	}

	if updated.Title != "Welcome back" || updated.Page != "about" || updated.SortOrder != 4 || !updated.IsActive {
		t.Fatalf("update did not persist fields: %#v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected created at to be preserved, got %s vs %s", updated.CreatedAt, created.CreatedAt)
	}
	if updated.ImageURL != "" {
		t.Fatalf("expected full overwrite to clear image url, got %q", updated.ImageURL)
	}
}

func TestSectionServiceUpdateMissing(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewCoreValueService(gdb)

	if _, err := svc.Update(42, &db.CoreValue{Title: "Ghost"}); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.Delete(42); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
}

func TestSectionServiceClampsNegativeOrder(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewCoreValueService(gdb)

	item, err := svc.Create(&db.CoreValue{Title: "Trust", Ordering: db.Ordering{SortOrder: -5}}, false)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.SortOrder != 0 {
		t.Fatalf("expected order to clamp to 0, got %d", item.SortOrder)
	}
}

func TestSectionServiceReorder(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewCoreValueService(gdb)

	v1, _ := svc.Create(&db.CoreValue{Title: "A"}, true)
	v2, _ := svc.Create(&db.CoreValue{Title: "B"}, true)
	v3, _ := svc.Create(&db.CoreValue{Title: "C"}, true)

	if err := svc.Reorder([]uint{v3.ID, v1.ID, v2.ID}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	items, err := svc.List(true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if items[0].ID != v3.ID || items[0].SortOrder != 0 {
		t.Fatalf("expected C to be first with order 0")
	}
	if items[1].ID != v1.ID || items[1].SortOrder != 1 {
		t.Fatalf("expected A to be second with order 1")
	}
	if items[2].ID != v2.ID || items[2].SortOrder != 2 {
		t.Fatalf("expected B to be third with order 2")
	}
}

func TestSectionServiceReorderRejectsUnknownAndDuplicateIDs(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewCoreValueService(gdb)

	v1, _ := svc.Create(&db.CoreValue{Title: "A"}, true)
	v2, _ := svc.Create(&db.CoreValue{Title: "B"}, true)

	if err := svc.Reorder([]uint{v2.ID, v1.ID, 999}); !errors.Is(err, ErrSectionInvalidInput) {
		t.Fatalf("expected invalid input for unknown id, got %v", err)
	}
	if err := svc.Reorder([]uint{v2.ID, v2.ID}); !errors.Is(err, ErrSectionInvalidInput) {
		t.Fatalf("expected invalid input for duplicate id, got %v", err)
	}

	items, err := svc.List(true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if items[0].ID != v1.ID || items[0].SortOrder != 0 || items[1].SortOrder != 1 {
		t.Fatalf("expected rejected reorders to leave orders untouched, got %#v", items)
	}
}

func TestCommitteeServiceMembers(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewCommitteeService(gdb)

	created, err := svc.Create(&db.Committee{
		Name:     "Audit Committee",
		Ordering: db.Ordering{SortOrder: 0, IsActive: true},
		Members: []db.CommitteeMember{
			{Name: "Jane Doe", Role: "Chair", SortOrder: 1},
			{Name: "John Roe", Role: "Member", SortOrder: 0},
		},
	}, false)
	if err != nil {
		t.Fatalf("create committee failed: %v", err)
	}

	items, err := svc.List(true)
	if err != nil {
		t.Fatalf("list committees failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one committee, got %d", len(items))
	}
	if len(items[0].Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(items[0].Members))
	}
	if items[0].Members[0].Name != "John Roe" {
		t.Fatalf("expected members sorted by order, got %#v", items[0].Members)
	}

	updated, err := svc.Update(created.ID, &db.Committee{
		Name:     "Audit Committee",
		Ordering: db.Ordering{IsActive: true},
		Members:  []db.CommitteeMember{{Name: "Jane Doe", Role: "Chair"}},
	})
	if err != nil {
		t.Fatalf("update committee failed: %v", err)
	}
	if len(updated.Members) != 1 {
		t.Fatalf("expected members to be replaced, got %d", len(updated.Members))
	}

	var memberRows int64
	gdb.Model(&db.CommitteeMember{}).Count(&memberRows)
	if memberRows != 1 {
		t.Fatalf("expected stale members to be removed, found %d rows", memberRows)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete committee failed: %v", err)
	}
	gdb.Model(&db.CommitteeMember{}).Count(&memberRows)
	if memberRows != 0 {
		t.Fatalf("expected members to be purged, found %d rows", memberRows)
	}
}

func TestCommitteeServiceRejectsBlankMember(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewCommitteeService(gdb)

	_, err := svc.Create(&db.Committee{Name: "Risk", Members: []db.CommitteeMember{{Name: " "}}}, true)
	if !errors.Is(err, ErrSectionInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLeadershipServiceRendersBio(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewLeadershipService(gdb)

	item, err := svc.Create(&db.LeadershipBio{
		Name:     "Ada <b>Lovelace</b>",
		Position: "Chief Executive Officer",
		Bio:      "**Founder** of R&D.\n\n<script>alert(1)</script>",
	}, true)
	if err != nil {
		t.Fatalf("create bio failed: %v", err)
	}

	if item.Name != "Ada Lovelace" {
		t.Fatalf("expected tags stripped from name, got %q", item.Name)
	}
	if !strings.Contains(item.BioHTML, "<strong>Founder</strong>") {
		t.Fatalf("expected markdown to be rendered, got %q", item.BioHTML)
	}
	if strings.Contains(item.BioHTML, "<script>") {
		t.Fatalf("expected script to be sanitized, got %q", item.BioHTML)
	}
}

func TestRegulationServiceValidatesDate(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewRegulationService(gdb)

	if _, err := svc.Create(&db.Regulation{Title: "Rules", PDFURL: "/uploads/pdfs/a.pdf", PublishedOn: "03/01/2024"}, true); !errors.Is(err, ErrSectionInvalidInput) {
		t.Fatalf("expected invalid date error, got %v", err)
	}

	item, err := svc.Create(&db.Regulation{Title: "Rules", PDFURL: "/uploads/pdfs/a.pdf", PublishedOn: "2024-03-01"}, true)
	if err != nil {
		t.Fatalf("create regulation failed: %v", err)
	}
	if item.Category != "sast-regulations" {
		t.Fatalf("expected default category, got %q", item.Category)
	}
}

func TestStockQuoteServiceDefaultsAndUpdate(t *testing.T) {
	gdb := setupSectionTestDB(t)
	svc := NewStockQuoteService(gdb)

	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.RefreshSeconds != 60 || !settings.ShowChart {
		t.Fatalf("unexpected defaults: %#v", settings)
	}

	if _, err := svc.Update(StockQuoteInput{Symbol: "ACME"}); !errors.Is(err, ErrStockQuoteInvalidInput) {
		t.Fatalf("expected missing exchange error, got %v", err)
	}
	if _, err := svc.Update(StockQuoteInput{Symbol: "ACME", Exchange: "NYSE", RefreshSeconds: 5}); !errors.Is(err, ErrStockQuoteInvalidInput) {
		t.Fatalf("expected refresh interval error, got %v", err)
	}

	saved, err := svc.Update(StockQuoteInput{Symbol: " acme ", Exchange: "nyse", IsActive: true})
	if err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	if saved.Symbol != "ACME" || saved.Exchange != "NYSE" || saved.RefreshSeconds != 60 || !saved.IsActive {
		t.Fatalf("unexpected saved settings: %#v", saved)
	}

	again, err := svc.Update(StockQuoteInput{Symbol: "ACME", Exchange: "NASDAQ", RefreshSeconds: 30})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if again.Exchange != "NASDAQ" || again.RefreshSeconds != 30 || again.IsActive {
		t.Fatalf("expected upsert to overwrite settings, got %#v", again)
	}

	var rows int64
	gdb.Model(&db.StockQuoteSettings{}).Count(&rows)
	if rows != 1 {
		t.Fatalf("expected a single settings row, got %d", rows)
	}
}
