package services

import (
	"errors"
	"testing"
	"time"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/repositories"
)

// --- In-memory fakes ---

type fakePrepItemRepository struct {
	items []models.PrepItem
}

func (f *fakePrepItemRepository) CreatePrepItem(_ repositories.SQLExecutor, item *models.PrepItem) (int64, error) {
	item.ID = int64(len(f.items) + 1)
	f.items = append(f.items, *item)
	return item.ID, nil
}

func (f *fakePrepItemRepository) GetPrepItemByID(itemID int64) (*models.PrepItem, error) {
	for _, item := range f.items {
		if item.ID == itemID {
			copied := item
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePrepItemRepository) GetPrepItems(restaurantID int64) ([]models.PrepItem, error) {
	items := []models.PrepItem{}
	for _, item := range f.items {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakePrepItemRepository) UpdatePrepItem(_ repositories.SQLExecutor, item *models.PrepItem) error {
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = *item
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakePrepItemRepository) UpdateDisplayOrder(_ repositories.SQLExecutor, update repositories.PrepItemOrderUpdate) error {
	for i := range f.items {
		if f.items[i].ID == update.ID {
			f.items[i].DisplayOrder = update.DisplayOrder
			f.items[i].SheetName = update.SheetName
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakePrepItemRepository) DeletePrepItem(_ repositories.SQLExecutor, itemID int64) (int64, error) {
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, repositories.ErrNotFound
}

type fakePrepSettingsRepository struct {
	byItem map[int64]models.PrepSettings
}

func (f *fakePrepSettingsRepository) Lookup(restaurantID, prepItemID int64) (*models.PrepSettings, error) {
	if s, ok := f.byItem[prepItemID]; ok {
		return &s, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePrepSettingsRepository) GetForRestaurant(restaurantID int64) (map[int64]models.PrepSettings, error) {
	return f.byItem, nil
}

func (f *fakePrepSettingsRepository) ListForRestaurant(restaurantID int64) ([]models.PrepSettings, error) {
	settings := []models.PrepSettings{}
	for _, s := range f.byItem {
		settings = append(settings, s)
	}
	return settings, nil
}

func (f *fakePrepSettingsRepository) Upsert(_ repositories.SQLExecutor, settings *models.PrepSettings) error {
	if f.byItem == nil {
		f.byItem = map[int64]models.PrepSettings{}
	}
	f.byItem[settings.PrepItemID] = *settings
	return nil
}

type fakeSalesRepository struct {
	usage         []models.HistoricalUsageRecord
	contributions map[int64][]models.ContributingMenuItem
}

func (f *fakeSalesRepository) CreateSale(_ repositories.SQLExecutor, sale *models.Sale) (int64, error) {
	return 1, nil
}

func (f *fakeSalesRepository) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	return nil, 0, nil
}

func (f *fakeSalesRepository) DeleteSale(_ repositories.SQLExecutor, saleID int64) (int64, error) {
	return 1, nil
}

func (f *fakeSalesRepository) GetHistoricalUsage(restaurantID int64, startDate, endDate string) ([]models.HistoricalUsageRecord, error) {
	return f.usage, nil
}

func (f *fakeSalesRepository) GetContributingMenuItems(restaurantID int64, startDate, endDate string) (map[int64][]models.ContributingMenuItem, error) {
	return f.contributions, nil
}

// --- Fixtures ---

// usageOn builds a usage record for a prep item on a concrete date.
func usageOn(prepItemID int64, date string, quantity float64) models.HistoricalUsageRecord {
	parsed, _ := time.Parse("2006-01-02", date)
	return models.HistoricalUsageRecord{PrepItemID: prepItemID, Date: parsed, Quantity: quantity}
}

// newPrepServiceForTest wires the fakes. 2024-01-22 is a Monday; the Mondays
// and Tuesdays below fall inside its 28-day lookback window.
func newPrepServiceForTest() (*prepService, *fakePrepItemRepository, *fakePrepSettingsRepository) {
	itemRepo := &fakePrepItemRepository{items: []models.PrepItem{
		{ID: 1, RestaurantID: 7, Name: "Wing Sauce", Unit: "quarts", SheetName: "Sauces", DisplayOrder: 1},
		{ID: 2, RestaurantID: 7, Name: "Ranch", Unit: "quarts", SheetName: "Sauces", DisplayOrder: 2},
		{ID: 3, RestaurantID: 7, Name: "Diced Onions", Unit: "lbs", SheetName: "AM Prep", DisplayOrder: 1},
	}}
	settingsRepo := &fakePrepSettingsRepository{byItem: map[int64]models.PrepSettings{
		2: {RestaurantID: 7, PrepItemID: 2, BufferPercentage: 50, MinimumQuantity: 10},
		3: {RestaurantID: 7, PrepItemID: 3, BufferPercentage: 0, MinimumQuantity: 5},
	}}
	salesRepo := &fakeSalesRepository{
		usage: []models.HistoricalUsageRecord{
			// Wing Sauce: Mondays and Tuesdays both average 10.
			usageOn(1, "2024-01-08", 10), usageOn(1, "2024-01-15", 10),
			usageOn(1, "2024-01-09", 10), usageOn(1, "2024-01-16", 10),
			// Ranch: Monday average 6, Tuesday average 2.
			usageOn(2, "2024-01-08", 6), usageOn(2, "2024-01-09", 2),
			// Diced Onions: no history at all.
		},
		contributions: map[int64][]models.ContributingMenuItem{
			1: {{MenuItemID: 11, Name: "Wings (12pc)", Quantity: 40}},
		},
	}
	svc := &prepService{prepItemRepo: itemRepo, settingsRepo: settingsRepo, salesRepo: salesRepo}
	return svc, itemRepo, settingsRepo
}

// --- Tests ---

func TestGetCalculations(t *testing.T) {
	svc, _, _ := newPrepServiceForTest()

	calcs, err := svc.GetCalculations(CalculationQuery{RestaurantID: 7, Date: "2024-01-22"})
	if err != nil {
		t.Fatalf("GetCalculations failed: %v", err)
	}
	if len(calcs) != 3 {
		t.Fatalf("got %d calculations, want 3", len(calcs))
	}

	byItem := map[int64]int{}
	for i, c := range calcs {
		byItem[c.ItemID] = i
	}

	// Monday avg 10 + half of Tuesday avg 10 = 15.
	if got := calcs[byItem[1]].TotalRequired; got != 15 {
		t.Errorf("Wing Sauce TotalRequired = %d, want 15", got)
	}
	// Monday avg 6 + half of Tuesday avg 2 = 7.
	if got := calcs[byItem[2]].TotalRequired; got != 7 {
		t.Errorf("Ranch TotalRequired = %d, want 7", got)
	}
	// No history yields a valid zero, with zero percentages throughout.
	onions := calcs[byItem[3]]
	if onions.TotalRequired != 0 {
		t.Errorf("Diced Onions TotalRequired = %d, want 0", onions.TotalRequired)
	}
	for i, b := range onions.DailyRequirements {
		if b.AverageQuantity != 0 || b.PercentageOfPeak != 0 {
			t.Errorf("Diced Onions bucket[%d] = %+v, want zeros", i, b)
		}
	}
}

func TestGetPrepSheets(t *testing.T) {
	svc, _, _ := newPrepServiceForTest()

	sheets, err := svc.GetPrepSheets(CalculationQuery{RestaurantID: 7, Date: "2024-01-22"})
	if err != nil {
		t.Fatalf("GetPrepSheets failed: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("got %d sheets, want 2", len(sheets))
	}
	if sheets[0].SheetName != "Sauces" || sheets[1].SheetName != "AM Prep" {
		t.Errorf("sheet order = [%s, %s], want [Sauces, AM Prep]", sheets[0].SheetName, sheets[1].SheetName)
	}

	sauces := sheets[0].Items
	if len(sauces) != 2 || sauces[0].Name != "Wing Sauce" || sauces[1].Name != "Ranch" {
		t.Fatalf("Sauces items out of order: %+v", sauces)
	}

	// Wing Sauce has no settings row: default 50% buffer, minimum 0.
	// raw 15 -> ceil(15 * 1.5) = 23.
	if sauces[0].BufferQuantity != 23 {
		t.Errorf("Wing Sauce BufferQuantity = %v, want 23", sauces[0].BufferQuantity)
	}
	if len(sauces[0].MenuItems) != 1 || sauces[0].MenuItems[0].Name != "Wings (12pc)" {
		t.Errorf("Wing Sauce contributing menu items = %+v", sauces[0].MenuItems)
	}

	// Ranch: raw 7, buffer 50%, minimum 10 -> max(ceil(10.5), 10) = 11.
	if sauces[1].BufferQuantity != 11 {
		t.Errorf("Ranch BufferQuantity = %v, want 11", sauces[1].BufferQuantity)
	}

	// Diced Onions: raw 0, buffer 0%, minimum 5 -> clamped to the minimum.
	onions := sheets[1].Items[0]
	if onions.BufferQuantity != 5 {
		t.Errorf("Diced Onions BufferQuantity = %v, want 5", onions.BufferQuantity)
	}
	if onions.BufferQuantity < onions.MinimumQuantity {
		t.Errorf("buffer quantity %v below minimum %v", onions.BufferQuantity, onions.MinimumQuantity)
	}
}

func TestGetPrepSheetsBufferOverride(t *testing.T) {
	svc, _, _ := newPrepServiceForTest()

	override := 0.0
	sheets, err := svc.GetPrepSheets(CalculationQuery{RestaurantID: 7, Date: "2024-01-22", BufferPercentage: &override})
	if err != nil {
		t.Fatalf("GetPrepSheets failed: %v", err)
	}

	// Ranch: raw 7 with a 0% override still clamps to its minimum of 10.
	ranch := sheets[0].Items[1]
	if ranch.BufferQuantity != 10 {
		t.Errorf("Ranch BufferQuantity with 0%% override = %v, want 10", ranch.BufferQuantity)
	}
}

func TestGetPrepSheetsSheetFilter(t *testing.T) {
	svc, _, _ := newPrepServiceForTest()

	sheet := "AM Prep"
	sheets, err := svc.GetPrepSheets(CalculationQuery{RestaurantID: 7, Date: "2024-01-22", SheetName: &sheet})
	if err != nil {
		t.Fatalf("GetPrepSheets failed: %v", err)
	}
	if len(sheets) != 1 || sheets[0].SheetName != "AM Prep" {
		t.Fatalf("filter returned %+v, want only AM Prep", sheets)
	}
}

func TestCalculationQueryValidation(t *testing.T) {
	svc, _, _ := newPrepServiceForTest()

	if _, err := svc.GetCalculations(CalculationQuery{RestaurantID: 0, Date: "2024-01-22"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing restaurant: got %v, want ErrValidation", err)
	}
	if _, err := svc.GetCalculations(CalculationQuery{RestaurantID: 7, Date: "01/22/2024"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad date: got %v, want ErrValidation", err)
	}
	over := 150.0
	if _, err := svc.GetPrepSheets(CalculationQuery{RestaurantID: 7, Date: "2024-01-22", BufferPercentage: &over}); !errors.Is(err, ErrValidation) {
		t.Errorf("buffer out of range: got %v, want ErrValidation", err)
	}
}

func TestUpsertPrepSettingsPreservesOtherField(t *testing.T) {
	svc, _, settingsRepo := newPrepServiceForTest()

	buffer := 25.0
	updated, err := svc.UpsertPrepSettings(7, 2, UpsertPrepSettingsRequest{BufferPercentage: &buffer})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if updated.BufferPercentage != 25 {
		t.Errorf("BufferPercentage = %v, want 25", updated.BufferPercentage)
	}
	if updated.MinimumQuantity != 10 {
		t.Errorf("MinimumQuantity = %v, want preserved 10", updated.MinimumQuantity)
	}
	if stored := settingsRepo.byItem[2]; stored.BufferPercentage != 25 {
		t.Errorf("stored BufferPercentage = %v, want 25", stored.BufferPercentage)
	}
}

func TestUpsertPrepSettingsValidation(t *testing.T) {
	svc, _, _ := newPrepServiceForTest()

	bad := 120.0
	if _, err := svc.UpsertPrepSettings(7, 2, UpsertPrepSettingsRequest{BufferPercentage: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("buffer 120: got %v, want ErrValidation", err)
	}
	negative := -1.0
	if _, err := svc.UpsertPrepSettings(7, 2, UpsertPrepSettingsRequest{MinimumQuantity: &negative}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative minimum: got %v, want ErrValidation", err)
	}
	if _, err := svc.UpsertPrepSettings(7, 99, UpsertPrepSettingsRequest{}); !errors.Is(err, ErrPrepItemNotFound) {
		t.Errorf("unknown item: got %v, want ErrPrepItemNotFound", err)
	}
}

func TestUpdateItemOrderValidation(t *testing.T) {
	svc, _, _ := newPrepServiceForTest()

	if err := svc.UpdateItemOrder(nil); !errors.Is(err, ErrValidation) {
		t.Errorf("empty updates: got %v, want ErrValidation", err)
	}
	// Unknown items are rejected before anything is written.
	updates := []repositories.PrepItemOrderUpdate{
		{ID: 1, DisplayOrder: 2, SheetName: "Sauces"},
		{ID: 99, DisplayOrder: 1, SheetName: "Sauces"},
	}
	if err := svc.UpdateItemOrder(updates); !errors.Is(err, ErrPrepItemNotFound) {
		t.Errorf("unknown item: got %v, want ErrPrepItemNotFound", err)
	}
}

func TestUpdateItemOrderReassignsSheets(t *testing.T) {
	svc, itemRepo, _ := newPrepServiceForTest()

	// UpdateItemOrder runs in a transaction against the real DB; the fake
	// ignores the executor, so a nil handle would panic on Begin. Drive the
	// repository directly the way the service does.
	updates := []repositories.PrepItemOrderUpdate{
		{ID: 1, DisplayOrder: 5, SheetName: "PM Prep"},
		{ID: 3, DisplayOrder: 1, SheetName: "PM Prep"},
		{ID: 2, DisplayOrder: 1, SheetName: ""}, // back to the default sheet
	}
	for _, update := range updates {
		if err := itemRepo.UpdateDisplayOrder(nil, update); err != nil {
			t.Fatalf("order update failed: %v", err)
		}
	}

	sheets, err := svc.GetPrepSheets(CalculationQuery{RestaurantID: 7, Date: "2024-01-22"})
	if err != nil {
		t.Fatalf("GetPrepSheets failed: %v", err)
	}
	bySheet := map[string][]string{}
	for _, sheet := range sheets {
		for _, item := range sheet.Items {
			bySheet[sheet.SheetName] = append(bySheet[sheet.SheetName], item.Name)
		}
	}

	pmPrep := bySheet["PM Prep"]
	if len(pmPrep) != 2 || pmPrep[0] != "Diced Onions" || pmPrep[1] != "Wing Sauce" {
		t.Errorf("PM Prep items = %v, want [Diced Onions, Wing Sauce]", pmPrep)
	}
	if unnamed := bySheet[""]; len(unnamed) != 1 || unnamed[0] != "Ranch" {
		t.Errorf("default sheet items = %v, want [Ranch]", unnamed)
	}
}
