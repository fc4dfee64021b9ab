package resource

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/sectioncms/internal/cmsclient"
	"github.com/sectioncms/internal/content"
)

type fakeStore struct {
	items     []content.CoreValue
	nextID    uint
	listErr   error
	updateErr error
	creates   int
	updates   int
	deletes   int
	sent      []content.CoreValue
}

func newFakeStore(titles ...string) *fakeStore {
	store := &fakeStore{}
	for i, title := range titles {
		store.nextID++
		store.items = append(store.items, content.CoreValue{
			Base:  content.Base{ID: store.nextID, Order: i, IsActive: true},
			Title: title,
		})
	}
	return store
}

func (f *fakeStore) List(ctx context.Context) ([]content.CoreValue, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.items), nil
}

func (f *fakeStore) Create(ctx context.Context, item content.CoreValue) (content.CoreValue, error) {
	f.creates++
	f.nextID++
	item.ID = f.nextID
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeStore) Update(ctx context.Context, id uint, item content.CoreValue) (content.CoreValue, error) {
	f.updates++
	f.sent = append(f.sent, item)
	if f.updateErr != nil {
		return content.CoreValue{}, f.updateErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i] = item
			return item, nil
		}
	}
	return content.CoreValue{}, &cmsclient.APIError{StatusCode: http.StatusNotFound}
}

func (f *fakeStore) Delete(ctx context.Context, id uint) error {
	f.deletes++
	f.items = slices.DeleteFunc(f.items, func(item content.CoreValue) bool { return item.ID == id })
	return nil
}

func (f *fakeStore) calls() int {
	return f.creates + f.updates + f.deletes
}

func (f *fakeStore) byID(id uint) content.CoreValue {
	for _, item := range f.items {
		if item.ID == id {
			return item
		}
	}
	return content.CoreValue{}
}

func newTestController(t *testing.T, store *fakeStore) *CoreValueController {
	t.Helper()
	ctrl := NewController[content.CoreValue, *content.CoreValue](store, Options[content.CoreValue]{
		Name:     "core value",
		Fallback: content.DemoCoreValues,
	})
	if err := ctrl.Load(context.Background()); err != nil && store.listErr == nil {
		t.Fatalf("initial load failed: %v", err)
	}
	return ctrl
}

func titles(items []content.CoreValue) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func TestCreateRejectsBlankTitleWithoutNetwork(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(t, store)

	err := ctrl.Create(context.Background(), content.CoreValue{Title: "   \t"})

	var validation *ValidationError
	if !errors.As(err, &validation) || validation.Field != "title" {
		t.Fatalf("expected title validation error, got %v", err)
	}
	if store.calls() != 0 {
		t.Fatalf("expected zero store calls, got %d", store.calls())
	}
	if ctrl.State().Error == "" {
		t.Fatalf("expected error flash to be set")
	}
}

func TestCreateReloads(t *testing.T) {
	store := newFakeStore("Integrity")
	ctrl := newTestController(t, store)

	if err := ctrl.Create(context.Background(), content.CoreValue{Base: content.Base{Order: 1}, Title: "Courage"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	state := ctrl.State()
	if len(state.Items) != 2 || state.Success == "" {
		t.Fatalf("expected reload with success flash, got %#v", state)
	}
}

func TestToggleActiveTwiceRestoresRecord(t *testing.T) {
	store := newFakeStore("Integrity", "Courage")
	ctrl := newTestController(t, store)
	original := store.byID(2)

	if err := ctrl.ToggleActive(context.Background(), 2); err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if store.byID(2).IsActive {
		t.Fatalf("expected record to be inactive after first toggle")
	}
	if err := ctrl.ToggleActive(context.Background(), 2); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}

	if !reflect.DeepEqual(store.byID(2), original) {
		t.Fatalf("expected original record, got %#v", store.byID(2))
	}
}

func TestMoveAtEdgesIsNoop(t *testing.T) {
	store := newFakeStore("A", "B", "C")
	ctrl := newTestController(t, store)

	if err := ctrl.MoveUp(context.Background(), 1); err != nil {
		t.Fatalf("move up failed: %v", err)
	}
	if err := ctrl.MoveDown(context.Background(), 3); err != nil {
		t.Fatalf("move down failed: %v", err)
	}
	if store.updates != 0 {
		t.Fatalf("expected no updates at the edges, got %d", store.updates)
	}
}

func TestMoveUpSwapsWithNeighbour(t *testing.T) {
	store := newFakeStore("A", "B", "C")
	ctrl := newTestController(t, store)

	if err := ctrl.MoveUp(context.Background(), 3); err != nil {
		t.Fatalf("move up failed: %v", err)
	}

	got := titles(ctrl.Items())
	if !slices.Equal(got, []string{"A", "C", "B"}) {
		t.Fatalf("unexpected order %v", got)
	}
	for _, sent := range store.sent {
		before := newFakeStore("A", "B", "C").byID(sent.ID)
		before.Order = sent.Order
		if !reflect.DeepEqual(before, sent) {
			t.Fatalf("expected only order to change, got %#v", sent)
		}
	}
}

func TestMoveWithEqualOrdersNeverGoesNegative(t *testing.T) {
	store := newFakeStore("A", "B")
	store.items[1].Order = 0
	ctrl := newTestController(t, store)

	if err := ctrl.MoveUp(context.Background(), 2); err != nil {
		t.Fatalf("move up failed: %v", err)
	}

	for _, sent := range store.sent {
		if sent.Order < 0 {
			t.Fatalf("negative order sent: %#v", sent)
		}
	}
	if got := titles(ctrl.Items()); !slices.Equal(got, []string{"B", "A"}) {
		t.Fatalf("unexpected order %v", got)
	}

	if err := ctrl.MoveDown(context.Background(), 2); err != nil {
		t.Fatalf("move down failed: %v", err)
	}
	if got := titles(ctrl.Items()); !slices.Equal(got, []string{"A", "B"}) {
		t.Fatalf("unexpected order after move down %v", got)
	}
}

type reorderingStore struct {
	*fakeStore
	reorders [][]uint
}

func (r *reorderingStore) Reorder(ctx context.Context, ids []uint) error {
	r.reorders = append(r.reorders, slices.Clone(ids))
	for index, id := range ids {
		for i := range r.items {
			if r.items[i].ID == id {
				r.items[i].Order = index
			}
		}
	}
	return nil
}

// tiedStore 返回按 (id, order) 给定的条目，标题为 A、B、C...
func tiedStore(entries ...[2]int) *fakeStore {
	store := &fakeStore{}
	for i, entry := range entries {
		id := uint(entry[0])
		store.items = append(store.items, content.CoreValue{
			Base:  content.Base{ID: id, Order: entry[1], IsActive: true},
			Title: string(rune('A' + i)),
		})
		store.nextID = max(store.nextID, id)
	}
	return store
}

func TestMoveWithTiedOrdersMovesExactlyOnePosition(t *testing.T) {
	cases := []struct {
		name    string
		entries [][2]int
		move    func(ctrl *CoreValueController) error
		before  []string
		after   []string
	}{
		{
			name:    "down",
			entries: [][2]int{{2, 0}, {3, 0}, {1, 1}},
			move: func(ctrl *CoreValueController) error {
				return ctrl.MoveDown(context.Background(), 2)
			},
			before: []string{"A", "B", "C"},
			after:  []string{"B", "A", "C"},
		},
		{
			name:    "up",
			entries: [][2]int{{3, 0}, {1, 1}, {2, 1}},
			move: func(ctrl *CoreValueController) error {
				return ctrl.MoveUp(context.Background(), 2)
			},
			before: []string{"A", "B", "C"},
			after:  []string{"A", "C", "B"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name+"/reorder", func(t *testing.T) {
			store := &reorderingStore{fakeStore: tiedStore(tc.entries...)}
			ctrl := NewController[content.CoreValue, *content.CoreValue](store, Options[content.CoreValue]{Name: "core value"})
			if err := ctrl.Load(context.Background()); err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if got := titles(ctrl.Items()); !slices.Equal(got, tc.before) {
				t.Fatalf("unexpected initial order %v", got)
			}

			if err := tc.move(ctrl); err != nil {
				t.Fatalf("move failed: %v", err)
			}
			if got := titles(ctrl.Items()); !slices.Equal(got, tc.after) {
				t.Fatalf("expected %v, got %v", tc.after, got)
			}
			if len(store.reorders) != 1 || store.updates != 0 {
				t.Fatalf("expected a single reorder call, got %d reorders and %d updates", len(store.reorders), store.updates)
			}
		})

		t.Run(tc.name+"/updates", func(t *testing.T) {
			store := tiedStore(tc.entries...)
			ctrl := newTestController(t, store)

			if err := tc.move(ctrl); err != nil {
				t.Fatalf("move failed: %v", err)
			}
			if got := titles(ctrl.Items()); !slices.Equal(got, tc.after) {
				t.Fatalf("expected %v, got %v", tc.after, got)
			}
			for _, sent := range store.sent {
				if sent.Order < 0 {
					t.Fatalf("negative order sent: %#v", sent)
				}
			}
		})
	}
}

func TestCreateAndUpdateNeverSendNegativeOrder(t *testing.T) {
	store := newFakeStore("A")
	ctrl := newTestController(t, store)

	if err := ctrl.Create(context.Background(), content.CoreValue{Base: content.Base{Order: -4}, Title: "B"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	created := store.items[len(store.items)-1]
	if created.Order != 0 {
		t.Fatalf("expected create to send order 0, got %d", created.Order)
	}

	item, _ := ctrl.Find(1)
	item.Order = -2
	if err := ctrl.Update(context.Background(), item); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(store.sent) != 1 || store.sent[0].Order != 0 {
		t.Fatalf("expected update to send order 0, got %#v", store.sent)
	}
}

func TestSetOrderClampsNegative(t *testing.T) {
	store := newFakeStore("A", "B")
	ctrl := newTestController(t, store)

	if err := ctrl.SetOrder(context.Background(), 2, -7); err != nil {
		t.Fatalf("set order failed: %v", err)
	}
	if len(store.sent) != 1 || store.sent[0].Order != 0 {
		t.Fatalf("expected a single update with order 0, got %#v", store.sent)
	}

	if err := ctrl.SetOrder(context.Background(), 2, 0); err != nil {
		t.Fatalf("set order failed: %v", err)
	}
	if store.updates != 1 {
		t.Fatalf("expected unchanged order to skip the update, got %d updates", store.updates)
	}
}

func TestUpdateFailureSetsErrorFlash(t *testing.T) {
	store := newFakeStore("A", "B")
	store.updateErr = &cmsclient.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	ctrl := newTestController(t, store)

	if err := ctrl.MoveDown(context.Background(), 1); err == nil {
		t.Fatalf("expected update error")
	}
	if ctrl.State().Error == "" {
		t.Fatalf("expected error flash")
	}
	if store.updates != 1 {
		t.Fatalf("expected no retry, got %d updates", store.updates)
	}
}

func TestLoadFallsBackToDemoWhenBackendUnavailable(t *testing.T) {
	store := newFakeStore()
	store.listErr = &cmsclient.APIError{StatusCode: http.StatusServiceUnavailable}
	ctrl := newTestController(t, store)

	state := ctrl.State()
	if !state.Demo || state.Notice == "" {
		t.Fatalf("expected demo state with notice, got %#v", state)
	}
	if len(state.Items) != len(content.DemoCoreValues()) {
		t.Fatalf("expected demo items, got %d", len(state.Items))
	}
	if state.Error != "" {
		t.Fatalf("expected no error flash in demo mode, got %q", state.Error)
	}

	if err := ctrl.ToggleActive(context.Background(), 0); !errors.Is(err, ErrDemoMode) {
		t.Fatalf("expected demo mode to block changes, got %v", err)
	}
	if store.calls() != 0 {
		t.Fatalf("expected no store calls in demo mode")
	}
}

func TestLoadShowsOtherErrors(t *testing.T) {
	store := newFakeStore("A")
	ctrl := newTestController(t, store)

	store.listErr = &cmsclient.APIError{StatusCode: http.StatusUnauthorized, Message: "请先登录"}
	if err := ctrl.Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}

	state := ctrl.State()
	if state.Demo || len(state.Items) != 0 || state.Error == "" {
		t.Fatalf("expected empty list with error flash, got %#v", state)
	}
}

func TestLoadWithoutFallbackKeepsListEmpty(t *testing.T) {
	store := newFakeStore()
	store.listErr = &cmsclient.APIError{StatusCode: http.StatusBadGateway}
	ctrl := NewController[content.CoreValue, *content.CoreValue](store, Options[content.CoreValue]{Name: "core value"})

	if err := ctrl.Load(context.Background()); !errors.Is(err, cmsclient.ErrBackendUnavailable) {
		t.Fatalf("expected backend unavailable error, got %v", err)
	}
	if state := ctrl.State(); state.Demo || state.Items == nil || len(state.Items) != 0 {
		t.Fatalf("expected empty non-demo list, got %#v", state)
	}
}

func TestFlashExpiresAfterTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	ctrl := NewController[content.CoreValue, *content.CoreValue](store, Options[content.CoreValue]{
		Name:     "core value",
		FlashTTL: 5 * time.Second,
		Now:      func() time.Time { return now },
	})

	if err := ctrl.Create(context.Background(), content.CoreValue{Title: "Integrity"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ctrl.State().Success == "" {
		t.Fatalf("expected success flash")
	}

	now = now.Add(5 * time.Second)
	if msg := ctrl.State().Success; msg != "" {
		t.Fatalf("expected flash to expire, got %q", msg)
	}
}

func TestRankTieBreaksBySeq(t *testing.T) {
	items := []content.CoreValue{
		{Base: content.Base{ID: 3, Order: 1}, Title: "C"},
		{Base: content.Base{ID: 1, Order: 1}, Title: "A"},
		{Base: content.Base{ID: 2, Order: 0}, Title: "B"},
	}
	SortByRank[content.CoreValue, *content.CoreValue](items)

	if got := titles(items); !slices.Equal(got, []string{"B", "A", "C"}) {
		t.Fatalf("unexpected rank order %v", got)
	}
	if !(Rank{Order: 1, Seq: 1}).Less(Rank{Order: 1, Seq: 3}) {
		t.Fatalf("expected lower seq to rank first")
	}
}

type fakeSettingsStore struct {
	value   content.StockQuote
	getErr  error
	updates int
}

func (f *fakeSettingsStore) Get(ctx context.Context) (content.StockQuote, error) {
	return f.value, f.getErr
}

func (f *fakeSettingsStore) Update(ctx context.Context, item content.StockQuote) (content.StockQuote, error) {
	f.updates++
	f.value = item
	return item, nil
}

func TestSingletonValidatesAndFallsBack(t *testing.T) {
	store := &fakeSettingsStore{getErr: &cmsclient.APIError{StatusCode: http.StatusGatewayTimeout}}
	ctrl := NewSingleton[content.StockQuote, *content.StockQuote](store, SingletonOptions[content.StockQuote]{
		Name:     "stock quote settings",
		Fallback: content.DemoStockQuote,
	})

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if state := ctrl.State(); !state.Demo || state.Value.RefreshSeconds != 60 {
		t.Fatalf("expected demo settings, got %#v", state)
	}

	store.getErr = nil
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	var validation *ValidationError
	if err := ctrl.Save(context.Background(), content.StockQuote{Exchange: "NYSE"}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.updates != 0 {
		t.Fatalf("expected no update for invalid settings")
	}

	if err := ctrl.Save(context.Background(), content.StockQuote{Symbol: "ACME", Exchange: "NYSE"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if ctrl.Value().Symbol != "ACME" {
		t.Fatalf("expected reloaded settings, got %#v", ctrl.Value())
	}
}
