package seed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/petween/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	UsersSheet = "Users"
	PetsSheet  = "Pets"
)

// LoadWorkbook reads seed data from a spreadsheet. The Users sheet holds
// one name per row in column A; the Pets sheet holds name, species,
// chunky and size. The first row of each sheet is a header.
func LoadWorkbook(path string) (Data, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var data Data

	userRows, err := f.GetRows(UsersSheet)
	if err != nil {
		return Data{}, fmt.Errorf("read sheet %s: %w", UsersSheet, err)
	}
	for i, row := range userRows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			data.Users = append(data.Users, name)
		}
	}

	petRows, err := f.GetRows(PetsSheet)
	if err != nil {
		return Data{}, fmt.Errorf("read sheet %s: %w", PetsSheet, err)
	}
	for i, row := range petRows {
		if i == 0 || len(row) < 2 { // header or no species
			continue
		}

		pet := models.Pet{
			Name:    strings.TrimSpace(row[0]),
			Species: strings.TrimSpace(row[1]),
		}
		if pet.Name == "" || pet.Species == "" {
			continue
		}
		if pet.Chunky, err = intCell(row, 2); err != nil {
			return Data{}, fmt.Errorf("sheet %s row %d chunky: %w", PetsSheet, i+1, err)
		}
		if pet.Size, err = intCell(row, 3); err != nil {
			return Data{}, fmt.Errorf("sheet %s row %d size: %w", PetsSheet, i+1, err)
		}
		data.Pets = append(data.Pets, pet)
	}

	return data, nil
}

// WriteWorkbook writes data in the layout LoadWorkbook reads.
func WriteWorkbook(path string, data Data) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", UsersSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(PetsSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(UsersSheet, "A1", &[]interface{}{"name"}); err != nil {
		return err
	}
	for i, name := range data.Users {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(UsersSheet, cell, name); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(PetsSheet, "A1", &[]interface{}{"name", "species", "chunky", "size"}); err != nil {
		return err
	}
	for i, p := range data.Pets {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{p.Name, p.Species, p.Chunky, p.Size}
		if err := f.SetSheetRow(PetsSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func intCell(row []string, idx int) (int, error) {
	if idx >= len(row) {
		return 0, nil
	}
	raw := strings.TrimSpace(row[idx])
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
