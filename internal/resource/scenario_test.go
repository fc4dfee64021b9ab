package resource

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sectioncms/internal/cmsclient"
	"github.com/sectioncms/internal/config"
	"github.com/sectioncms/internal/content"
	"github.com/sectioncms/internal/db"
	"github.com/sectioncms/internal/logging"
	"github.com/sectioncms/internal/router"
	"github.com/sectioncms/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func newLiveSections(t *testing.T) *Sections {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:scenario-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(sqlite.Open(dsn), logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if _, err := db.EnsureUser(gdb, "editor", "secret"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	store, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	srv := httptest.NewServer(router.SetupRouter(router.Options{
		DB:            gdb,
		Storage:       store,
		Logger:        logging.Discard(),
		SessionSecret: "scenario-secret",
	}))
	t.Cleanup(srv.Close)

	cfg := config.ClientConfig{APIBaseURL: srv.URL, HTTPTimeout: 5 * time.Second, DemoMode: true}
	client, err := cmsclient.New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if err := client.Login(context.Background(), "editor", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	return NewSections(client, cfg, logging.Discard())
}

func TestCommitteeWithTwoMembersSurvivesReload(t *testing.T) {
	sections := newLiveSections(t)
	ctx := context.Background()

	committee := content.Committee{
		Base: content.Base{Order: 0, IsActive: true},
		Name: "Audit Committee",
		Members: []content.CommitteeMember{
			{Name: "Jane Doe", Role: "Chair", Order: 0},
			{Name: "John Roe", Role: "Member", Order: 1},
		},
	}
	if err := sections.Committees.Create(ctx, committee); err != nil {
		t.Fatalf("create committee failed: %v", err)
	}

	if err := sections.Committees.Load(ctx); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	state := sections.Committees.State()
	if state.Demo {
		t.Fatalf("expected live data, got demo content")
	}
	if len(state.Items) != 1 {
		t.Fatalf("expected exactly one committee, got %d", len(state.Items))
	}
	if len(state.Items[0].Members) != 2 {
		t.Fatalf("expected two members, got %d", len(state.Items[0].Members))
	}
}

func TestLiveReorderAndToggle(t *testing.T) {
	sections := newLiveSections(t)
	ctx := context.Background()
	ctrl := sections.StatBlocks

	for i, label := range []string{"Revenue", "Staff", "Offices"} {
		if err := ctrl.Create(ctx, content.StatBlock{Base: content.Base{Order: i, IsActive: true}, Label: label, Value: "1"}); err != nil {
			t.Fatalf("create %s failed: %v", label, err)
		}
	}

	items := ctrl.Items()
	last := items[len(items)-1]
	if err := ctrl.MoveUp(ctx, last.ID); err != nil {
		t.Fatalf("move up failed: %v", err)
	}
	items = ctrl.Items()
	if items[1].Label != "Offices" || items[2].Label != "Staff" {
		t.Fatalf("unexpected order after move: %s, %s, %s", items[0].Label, items[1].Label, items[2].Label)
	}

	if err := ctrl.ToggleActive(ctx, items[0].ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled, _ := ctrl.Find(items[0].ID); toggled.IsActive {
		t.Fatalf("expected item to be inactive")
	}

	if err := ctrl.Reorder(ctx, []uint{items[2].ID, items[1].ID, items[0].ID}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if first := ctrl.Items()[0]; first.ID != items[2].ID || first.Order != 0 {
		t.Fatalf("unexpected first item after reorder: %#v", first)
	}
}

func TestLiveStockQuoteSettings(t *testing.T) {
	sections := newLiveSections(t)
	ctx := context.Background()

	if err := sections.StockQuote.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	settings := sections.StockQuote.Value()
	settings.Symbol = "acme"
	settings.Exchange = "nyse"
	settings.IsActive = true

	if err := sections.StockQuote.Save(ctx, settings); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := sections.StockQuote.Value(); got.Symbol != "ACME" || got.Exchange != "NYSE" || !got.IsActive {
		t.Fatalf("unexpected saved settings %#v", got)
	}
}

func TestLiveMoveWithTiedOrders(t *testing.T) {
	sections := newLiveSections(t)
	ctx := context.Background()
	ctrl := sections.CoreValues

	for _, title := range []string{"Integrity", "Courage", "Care"} {
		if err := ctrl.Create(ctx, content.CoreValue{Base: content.Base{Order: 0, IsActive: true}, Title: title}); err != nil {
			t.Fatalf("create %s failed: %v", title, err)
		}
	}

	first := ctrl.Items()[0]
	if err := ctrl.MoveDown(ctx, first.ID); err != nil {
		t.Fatalf("move down failed: %v", err)
	}

	items := ctrl.Items()
	got := []string{items[0].Title, items[1].Title, items[2].Title}
	if got[0] != "Courage" || got[1] != "Integrity" || got[2] != "Care" {
		t.Fatalf("expected a single step move, got %v", got)
	}
}
