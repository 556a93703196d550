package prepcalc

import "sort"

// RequirementMenuItem is a menu item contributing to a prep requirement.
type RequirementMenuItem struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
}

// PrepRequirement is the buffered, clamped requirement for one prep item,
// tagged with its sheet placement.
type PrepRequirement struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	Unit            string                `json:"unit"`
	SheetName       string                `json:"sheet_name"`
	Order           int                   `json:"order"`
	Quantity        float64               `json:"quantity"`         // raw required
	BufferQuantity  float64               `json:"buffer_quantity"`  // buffered + minimum-clamped
	MinimumQuantity float64               `json:"minimum_quantity"`
	MenuItems       []RequirementMenuItem `json:"menu_items,omitempty"`
}

// PrepSheet is a named, ordered collection of requirements for one date.
type PrepSheet struct {
	SheetName string            `json:"sheet_name"`
	Date      string            `json:"date"` // YYYY-MM-DD
	Items     []PrepRequirement `json:"items"`
}

// GroupIntoSheets partitions requirements into one sheet per distinct sheet
// name, preserving first-seen sheet order. Within a sheet items sort by their
// explicit display order, ties broken by name (ordinal). Sheet names are taken
// literally; nothing here validates them against a fixed set.
func GroupIntoSheets(requirements []PrepRequirement, date string) []PrepSheet {
	sheets := []PrepSheet{}
	index := map[string]int{}

	for _, req := range requirements {
		i, seen := index[req.SheetName]
		if !seen {
			i = len(sheets)
			index[req.SheetName] = i
			sheets = append(sheets, PrepSheet{SheetName: req.SheetName, Date: date, Items: []PrepRequirement{}})
		}
		sheets[i].Items = append(sheets[i].Items, req)
	}

	for i := range sheets {
		items := sheets[i].Items
		sort.Slice(items, func(a, b int) bool {
			if items[a].Order != items[b].Order {
				return items[a].Order < items[b].Order
			}
			return items[a].Name < items[b].Name
		})
	}
	return sheets
}
