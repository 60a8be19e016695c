//go:build integration

package testutils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/xuri/excelize/v2"
)

// Divisions seeded by the player migrations.
var Divisions = []string{"PLATINUM PHOENIX", "GOLDEN FALCON", "SILVER HAWK"}

// LeaderboardRow is one line of a generated leaderboard export.
type LeaderboardRow struct {
	Handle   string
	FullName string
	Rank     int
	Rating   int
	Division string
}

// Name renders the NAME cell the way the leaderboard export writes it.
func (r LeaderboardRow) Name() string {
	if r.FullName == "" {
		return r.Handle
	}
	return r.Handle + "/" + r.FullName
}

// MVPRow is one line of a generated MVP export.
type MVPRow struct {
	No         int
	FullName   string
	Alternate  string
	RatingGain int
	Events     int
	Division   string
}

// Name renders the NAME cell the way the MVP export writes it.
func (r MVPRow) Name() string {
	if r.Alternate == "" {
		return r.FullName
	}
	return r.FullName + " / " + r.Alternate
}

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// uniqueNames returns n distinct "First Last" names.
func (g *TestDataGenerator) uniqueNames(n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := g.faker.FirstName() + " " + g.faker.LastName()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// GenerateLeaderboardRows creates n rows ranked 1..n with descending ratings. Every row
// carries both a handle and a full name.
func (g *TestDataGenerator) GenerateLeaderboardRows(n int) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, n)
	rating := g.faker.Number(1800, 2200)
	for i, full := range g.uniqueNames(n) {
		rows = append(rows, LeaderboardRow{
			Handle:   fmt.Sprintf("%s%d", g.faker.Username(), i),
			FullName: full,
			Rank:     i + 1,
			Rating:   rating,
			Division: g.faker.RandomString(Divisions),
		})
		rating -= g.faker.Number(1, 40)
	}
	return rows
}

// GenerateMVPRows creates n rows numbered 1..n for new players.
func (g *TestDataGenerator) GenerateMVPRows(n int) []MVPRow {
	rows := make([]MVPRow, 0, n)
	for i, full := range g.uniqueNames(n) {
		rows = append(rows, MVPRow{
			No:         i + 1,
			FullName:   full,
			Alternate:  g.faker.Username(),
			RatingGain: g.faker.Number(-50, 200),
			Events:     g.faker.Number(1, 8),
			Division:   g.faker.RandomString(Divisions),
		})
	}
	return rows
}

// MVPRowsFor builds MVP rows for players already on the leaderboard, matched by full name.
func (g *TestDataGenerator) MVPRowsFor(players []LeaderboardRow) []MVPRow {
	rows := make([]MVPRow, 0, len(players))
	for i, p := range players {
		rows = append(rows, MVPRow{
			No:         i + 1,
			FullName:   p.FullName,
			Alternate:  p.Handle,
			RatingGain: g.faker.Number(0, 150),
			Events:     g.faker.Number(1, 6),
			Division:   p.Division,
		})
	}
	return rows
}

// LeaderboardCSV renders rows as a leaderboard CSV export.
func LeaderboardCSV(rows []LeaderboardRow) ([]byte, error) {
	grid := [][]string{{"NAME", "RANK", "RATING", "DIVISION"}}
	for _, r := range rows {
		grid = append(grid, []string{r.Name(), ordinal(r.Rank), strconv.Itoa(r.Rating), r.Division})
	}
	return writeCSV(grid)
}

// MVPCSV renders rows as an MVP CSV export.
func MVPCSV(rows []MVPRow) ([]byte, error) {
	return writeCSV(mvpGrid(rows))
}

// MVPXLSX renders rows as an MVP workbook with the header on the first row.
func MVPXLSX(rows []MVPRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for idx, line := range mvpGrid(rows) {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return nil, err
		}
		cells := make([]interface{}, len(line))
		for i, c := range line {
			cells[i] = c
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func mvpGrid(rows []MVPRow) [][]string {
	grid := [][]string{{"NO", "NAME", "RATING GAIN", "EVENT", "DIVISION"}}
	for _, r := range rows {
		grid = append(grid, []string{
			strconv.Itoa(r.No),
			r.Name(),
			strconv.Itoa(r.RatingGain),
			strconv.Itoa(r.Events),
			r.Division,
		})
	}
	return grid
}

func writeCSV(grid [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(grid); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}
