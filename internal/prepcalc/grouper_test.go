package prepcalc

import "testing"

func TestGroupIntoSheets(t *testing.T) {
	requirements := []PrepRequirement{
		{ID: 1, Name: "Wing Sauce", SheetName: "Sauces", Order: 2},
		{ID: 2, Name: "Diced Onions", SheetName: "AM Prep", Order: 1},
		{ID: 3, Name: "Ranch", SheetName: "Sauces", Order: 1},
		{ID: 4, Name: "Blue Cheese", SheetName: "Sauces", Order: 1},
	}

	sheets := GroupIntoSheets(requirements, "2024-01-08")

	if len(sheets) != 2 {
		t.Fatalf("got %d sheets, want 2", len(sheets))
	}
	// First-seen sheet order is preserved.
	if sheets[0].SheetName != "Sauces" || sheets[1].SheetName != "AM Prep" {
		t.Errorf("sheet order = [%s, %s], want [Sauces, AM Prep]", sheets[0].SheetName, sheets[1].SheetName)
	}
	for _, s := range sheets {
		if s.Date != "2024-01-08" {
			t.Errorf("sheet %s date = %s, want 2024-01-08", s.SheetName, s.Date)
		}
	}

	// Within a sheet: display order first, then name for ties.
	gotNames := []string{}
	for _, item := range sheets[0].Items {
		gotNames = append(gotNames, item.Name)
	}
	wantNames := []string{"Blue Cheese", "Ranch", "Wing Sauce"}
	for i, want := range wantNames {
		if gotNames[i] != want {
			t.Errorf("Sauces[%d] = %s, want %s", i, gotNames[i], want)
		}
	}
}

func TestGroupIntoSheetsUnknownSheetName(t *testing.T) {
	// Free-form sheet names are grouped under their literal value.
	sheets := GroupIntoSheets([]PrepRequirement{{ID: 1, Name: "Aioli", SheetName: "Weekend Specials"}}, "2024-01-08")
	if len(sheets) != 1 || sheets[0].SheetName != "Weekend Specials" {
		t.Fatalf("got %+v, want one sheet named Weekend Specials", sheets)
	}
}

func TestGroupIntoSheetsEmpty(t *testing.T) {
	sheets := GroupIntoSheets(nil, "2024-01-08")
	if sheets == nil || len(sheets) != 0 {
		t.Errorf("got %v, want empty non-nil slice", sheets)
	}
}
