package services

import (
	"database/sql"
	"errors"
	"fmt"

	"prep_kitchen_backend/internal/models"
	"prep_kitchen_backend/internal/prepcalc"
	"prep_kitchen_backend/internal/repositories"
)

var (
	ErrPrepItemNotFound = errors.New("prep item not found")
	ErrInvalidBuffer    = errors.New("buffer percentage must be between 0 and 100")
	ErrInvalidMinimum   = errors.New("minimum quantity cannot be negative")
)

// LookbackDays is the historical window feeding the weekday averages.
const LookbackDays = 28

// --- DTOs ---

type CreatePrepItemRequest struct {
	RestaurantID int64  `json:"restaurant_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Unit         string `json:"unit" binding:"required"`
	SheetName    string `json:"sheet_name"`
	DisplayOrder int    `json:"display_order"`
}

type UpdatePrepItemRequest struct {
	Name         *string `json:"name"`
	Unit         *string `json:"unit"`
	SheetName    *string `json:"sheet_name"`
	DisplayOrder *int    `json:"display_order"`
}

type UpsertPrepSettingsRequest struct {
	BufferPercentage *float64 `json:"buffer_percentage"`
	MinimumQuantity  *float64 `json:"minimum_quantity"`
}

// CalculationQuery narrows a prep calculation or prep sheet request.
type CalculationQuery struct {
	RestaurantID     int64
	Date             string   // YYYY-MM-DD
	BufferPercentage *float64 // overrides persisted settings when present
	SheetName        *string  // restricts sheet output to one sheet
}

// --- PrepService Interface ---
type PrepService interface {
	// Prep item CRUD
	CreatePrepItem(req CreatePrepItemRequest) (*models.PrepItem, error)
	GetPrepItemByID(itemID int64) (*models.PrepItem, error)
	GetPrepItems(restaurantID int64) ([]models.PrepItem, error)
	UpdatePrepItem(itemID int64, req UpdatePrepItemRequest) (*models.PrepItem, error)
	UpdateItemOrder(updates []repositories.PrepItemOrderUpdate) error
	DeletePrepItem(itemID int64) error

	// Settings
	GetPrepSettings(restaurantID int64) ([]models.PrepSettings, error)
	UpsertPrepSettings(restaurantID, prepItemID int64, req UpsertPrepSettingsRequest) (*models.PrepSettings, error)

	// Calculation pipeline
	GetCalculations(query CalculationQuery) ([]prepcalc.PrepCalculation, error)
	GetPrepSheets(query CalculationQuery) ([]prepcalc.PrepSheet, error)

	// Reports
	GetUsageTrends(restaurantID int64, prepItemID *int64, startDate, endDate string) ([]models.UsageTrend, error)
	GetWeekdayBreakdown(restaurantID int64, date string) ([]prepcalc.PrepCalculation, error)
}

type prepService struct {
	prepItemRepo repositories.PrepItemRepository
	settingsRepo repositories.PrepSettingsRepository
	salesRepo    repositories.SalesRepository
	db           *sql.DB
}

// NewPrepService creates a new instance of PrepService.
func NewPrepService(
	prepItemRepo repositories.PrepItemRepository,
	settingsRepo repositories.PrepSettingsRepository,
	salesRepo repositories.SalesRepository,
	db *sql.DB,
) PrepService {
	return &prepService{
		prepItemRepo: prepItemRepo,
		settingsRepo: settingsRepo,
		salesRepo:    salesRepo,
		db:           db,
	}
}

// --- Prep Item CRUD ---

func (s *prepService) CreatePrepItem(req CreatePrepItemRequest) (*models.PrepItem, error) {
	item := &models.PrepItem{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Unit:         req.Unit,
		SheetName:    req.SheetName,
		DisplayOrder: req.DisplayOrder,
	}
	if _, err := s.prepItemRepo.CreatePrepItem(s.db, item); err != nil {
		return nil, fmt.Errorf("failed to create prep item: %w", err)
	}
	return s.GetPrepItemByID(item.ID)
}

func (s *prepService) GetPrepItemByID(itemID int64) (*models.PrepItem, error) {
	item, err := s.prepItemRepo.GetPrepItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPrepItemNotFound
		}
		return nil, fmt.Errorf("failed to get prep item: %w", err)
	}
	return item, nil
}

func (s *prepService) GetPrepItems(restaurantID int64) ([]models.PrepItem, error) {
	items, err := s.prepItemRepo.GetPrepItems(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prep items: %w", err)
	}
	return items, nil
}

func (s *prepService) UpdatePrepItem(itemID int64, req UpdatePrepItemRequest) (*models.PrepItem, error) {
	item, err := s.GetPrepItemByID(itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.SheetName != nil {
		item.SheetName = *req.SheetName
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}

	if err := s.prepItemRepo.UpdatePrepItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPrepItemNotFound
		}
		return nil, fmt.Errorf("failed to update prep item: %w", err)
	}
	return s.GetPrepItemByID(itemID)
}

// UpdateItemOrder bulk-reassigns display order and sheet membership in one
// transaction, so a half-applied reorder never persists. Every referenced item
// is verified before the transaction opens.
func (s *prepService) UpdateItemOrder(updates []repositories.PrepItemOrderUpdate) error {
	if len(updates) == 0 {
		return fmt.Errorf("%w: order updates cannot be empty", ErrValidation)
	}
	for _, update := range updates {
		if _, err := s.GetPrepItemByID(update.ID); err != nil {
			if errors.Is(err, ErrPrepItemNotFound) {
				return fmt.Errorf("%w: prep item %d", ErrPrepItemNotFound, update.ID)
			}
			return err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	for _, update := range updates {
		if err := s.prepItemRepo.UpdateDisplayOrder(tx, update); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: prep item %d", ErrPrepItemNotFound, update.ID)
			}
			return fmt.Errorf("failed to update order for prep item %d: %w", update.ID, err)
		}
	}
	return tx.Commit()
}

func (s *prepService) DeletePrepItem(itemID int64) error {
	if _, err := s.prepItemRepo.DeletePrepItem(s.db, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPrepItemNotFound
		}
		return fmt.Errorf("failed to delete prep item: %w", err)
	}
	return nil
}

// --- Settings ---

func (s *prepService) GetPrepSettings(restaurantID int64) ([]models.PrepSettings, error) {
	settings, err := s.settingsRepo.ListForRestaurant(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prep settings: %w", err)
	}
	return settings, nil
}

func (s *prepService) UpsertPrepSettings(restaurantID, prepItemID int64, req UpsertPrepSettingsRequest) (*models.PrepSettings, error) {
	if _, err := s.GetPrepItemByID(prepItemID); err != nil {
		return nil, err
	}

	settings := &models.PrepSettings{
		RestaurantID:     restaurantID,
		PrepItemID:       prepItemID,
		BufferPercentage: models.DefaultBufferPercentage,
		MinimumQuantity:  models.DefaultMinimumQuantity,
	}
	// Preserve the other field when only one is supplied.
	if existing, err := s.settingsRepo.Lookup(restaurantID, prepItemID); err == nil {
		settings.BufferPercentage = existing.BufferPercentage
		settings.MinimumQuantity = existing.MinimumQuantity
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to load existing prep settings: %w", err)
	}

	if req.BufferPercentage != nil {
		if *req.BufferPercentage < 0 || *req.BufferPercentage > 100 {
			return nil, fmt.Errorf("%w: %v", ErrValidation, ErrInvalidBuffer)
		}
		settings.BufferPercentage = *req.BufferPercentage
	}
	if req.MinimumQuantity != nil {
		if *req.MinimumQuantity < 0 {
			return nil, fmt.Errorf("%w: %v", ErrValidation, ErrInvalidMinimum)
		}
		settings.MinimumQuantity = *req.MinimumQuantity
	}

	if err := s.settingsRepo.Upsert(s.db, settings); err != nil {
		return nil, fmt.Errorf("failed to upsert prep settings: %w", err)
	}
	return settings, nil
}

// --- Calculation Pipeline ---

// usageByItem converts the flat historical feed into per-item prepcalc records.
func usageByItem(records []models.HistoricalUsageRecord) map[int64][]prepcalc.UsageRecord {
	grouped := map[int64][]prepcalc.UsageRecord{}
	for _, rec := range records {
		grouped[rec.PrepItemID] = append(grouped[rec.PrepItemID], prepcalc.UsageRecord{
			PrepItemID: rec.PrepItemID,
			Date:       rec.Date,
			Quantity:   rec.Quantity,
		})
	}
	return grouped
}

// resolveBuffer picks the buffer percentage and minimum for one item:
// request override first, then persisted settings, then the defaults.
func resolveBuffer(override *float64, settings map[int64]models.PrepSettings, prepItemID int64) (float64, float64) {
	bufferPercentage := models.DefaultBufferPercentage
	minimum := models.DefaultMinimumQuantity
	if s, ok := settings[prepItemID]; ok {
		bufferPercentage = s.BufferPercentage
		minimum = s.MinimumQuantity
	}
	if override != nil {
		bufferPercentage = *override
	}
	return bufferPercentage, minimum
}

func (s *prepService) validateQuery(query CalculationQuery) error {
	if query.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurant id is required", ErrValidation)
	}
	if _, err := ValidateDate(query.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if query.BufferPercentage != nil && (*query.BufferPercentage < 0 || *query.BufferPercentage > 100) {
		return fmt.Errorf("%w: %v", ErrValidation, ErrInvalidBuffer)
	}
	return nil
}

// GetCalculations runs the weekday aggregation pipeline for every prep item of
// the restaurant and returns the per-item breakdowns. Items with no history
// still appear, with zero requirements.
func (s *prepService) GetCalculations(query CalculationQuery) ([]prepcalc.PrepCalculation, error) {
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}
	current, _ := ValidateDate(query.Date)
	startDate := current.AddDate(0, 0, -LookbackDays).Format("2006-01-02")

	items, err := s.prepItemRepo.GetPrepItems(query.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prep items: %w", err)
	}
	records, err := s.salesRepo.GetHistoricalUsage(query.RestaurantID, startDate, query.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load historical usage: %w", err)
	}
	settings, err := s.settingsRepo.GetForRestaurant(query.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prep settings: %w", err)
	}

	grouped := usageByItem(records)
	calculations := make([]prepcalc.PrepCalculation, 0, len(items))
	for _, item := range items {
		bufferPercentage, _ := resolveBuffer(query.BufferPercentage, settings, item.ID)
		buckets := prepcalc.AggregateByWeekday(grouped[item.ID])
		calculations = append(calculations,
			prepcalc.BuildCalculation(item.ID, item.Name, item.Unit, buckets, current, bufferPercentage))
	}
	return calculations, nil
}

// GetPrepSheets runs the full pipeline and groups the buffered, clamped
// requirements into named prep sheets for the date.
func (s *prepService) GetPrepSheets(query CalculationQuery) ([]prepcalc.PrepSheet, error) {
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}
	current, _ := ValidateDate(query.Date)
	startDate := current.AddDate(0, 0, -LookbackDays).Format("2006-01-02")

	items, err := s.prepItemRepo.GetPrepItems(query.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prep items: %w", err)
	}
	records, err := s.salesRepo.GetHistoricalUsage(query.RestaurantID, startDate, query.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load historical usage: %w", err)
	}
	settings, err := s.settingsRepo.GetForRestaurant(query.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prep settings: %w", err)
	}
	contributions, err := s.salesRepo.GetContributingMenuItems(query.RestaurantID, startDate, query.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load contributing menu items: %w", err)
	}

	grouped := usageByItem(records)
	requirements := make([]prepcalc.PrepRequirement, 0, len(items))
	for _, item := range items {
		bufferPercentage, minimum := resolveBuffer(query.BufferPercentage, settings, item.ID)
		buckets := prepcalc.AggregateByWeekday(grouped[item.ID])
		calc := prepcalc.BuildCalculation(item.ID, item.Name, item.Unit, buckets, current, bufferPercentage)

		raw := float64(calc.TotalRequired)
		menuItems := make([]prepcalc.RequirementMenuItem, 0, len(contributions[item.ID]))
		for _, c := range contributions[item.ID] {
			menuItems = append(menuItems, prepcalc.RequirementMenuItem{
				MenuItemID: c.MenuItemID,
				Name:       c.Name,
				Quantity:   c.Quantity,
			})
		}

		requirements = append(requirements, prepcalc.PrepRequirement{
			ID:              item.ID,
			Name:            item.Name,
			Unit:            item.Unit,
			SheetName:       item.SheetName,
			Order:           item.DisplayOrder,
			Quantity:        raw,
			BufferQuantity:  prepcalc.BufferedQuantity(raw, bufferPercentage, minimum),
			MinimumQuantity: minimum,
			MenuItems:       menuItems,
		})
	}

	sheets := prepcalc.GroupIntoSheets(requirements, query.Date)
	if query.SheetName != nil && *query.SheetName != "" {
		filtered := []prepcalc.PrepSheet{}
		for _, sheet := range sheets {
			if sheet.SheetName == *query.SheetName {
				filtered = append(filtered, sheet)
			}
		}
		sheets = filtered
	}
	return sheets, nil
}

// --- Reports ---

func (s *prepService) GetUsageTrends(restaurantID int64, prepItemID *int64, startDate, endDate string) ([]models.UsageTrend, error) {
	if _, err := ValidateDate(startDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := ValidateDate(endDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	records, err := s.salesRepo.GetHistoricalUsage(restaurantID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load historical usage: %w", err)
	}

	trends := []models.UsageTrend{}
	index := map[int64]int{}
	for _, rec := range records {
		i, seen := index[rec.PrepItemID]
		if !seen {
			if prepItemID != nil && rec.PrepItemID != *prepItemID {
				continue
			}
			i = len(trends)
			index[rec.PrepItemID] = i
			trends = append(trends, models.UsageTrend{
				PrepItemID: rec.PrepItemID,
				Name:       rec.Name,
				Unit:       rec.Unit,
			})
		}
		trends[i].Points = append(trends[i].Points, models.UsageTrendPoint{
			Date:     rec.Date.Format("2006-01-02"),
			Quantity: rec.Quantity,
		})
	}
	return trends, nil
}

// GetWeekdayBreakdown is the calculation query without sheet grouping, used by
// the trends screen to chart per-weekday averages.
func (s *prepService) GetWeekdayBreakdown(restaurantID int64, date string) ([]prepcalc.PrepCalculation, error) {
	return s.GetCalculations(CalculationQuery{RestaurantID: restaurantID, Date: date})
}
