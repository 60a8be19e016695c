// Package normalize turns raw spreadsheet rows into canonical entries. Everything here is pure:
// no I/O, no errors. Malformed cells fall back to defaults and are reported as Notes.
package normalize

import (
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/parsers"
)

// Flow identifies which upload a batch belongs to.
type Flow string

const (
	FlowLeaderboard Flow = "leaderboard"
	FlowMVP         Flow = "mvp"
)

// Column labels of the two export formats.
const (
	ColumnName       = "NAME"
	ColumnRank       = "RANK"
	ColumnRating     = "RATING"
	ColumnDivision   = "DIVISION"
	ColumnNo         = "NO"
	ColumnRatingGain = "RATING GAIN"
	ColumnEvent      = "EVENT"
)

// SplitStyle returns the name-splitting convention used by the flow.
func (f Flow) SplitStyle() SplitStyle {
	if f == FlowMVP {
		return SplitSpaced
	}
	return SplitBare
}

// Valid reports whether f is a known flow.
func (f Flow) Valid() bool {
	return f == FlowLeaderboard || f == FlowMVP
}

// Entry is one normalized player row.
type Entry struct {
	// Line is the source line the entry came from.
	Line int `json:"line"`
	// DisplayName is the primary, human-facing name.
	DisplayName string `json:"displayName"`
	// FullName is the second name segment. In the leaderboard flow it equals DisplayName when
	// the cell has no separator; in the MVP flow it is empty in that case.
	FullName string `json:"fullName,omitempty"`
	// Initials is always derived from DisplayName.
	Initials string `json:"initials"`
	// Metric is the rating (leaderboard) or rating gain (MVP).
	Metric int `json:"metric"`
	// Events is the event count; MVP only.
	Events   int    `json:"events,omitempty"`
	Category string `json:"category"`
	Rank     int    `json:"rank"`
}

// Note records a cell that was missing or unparseable and fell back to its default.
type Note struct {
	Line   int    `json:"line"`
	Column string `json:"column"`
	Raw    string `json:"raw"`
}

// LeaderboardEntry normalizes a NAME/RANK/RATING/DIVISION row.
func LeaderboardEntry(row parsers.RawRow) (Entry, []Note) {
	var notes []Note
	display, full, split := SplitName(row.Text(ColumnName), SplitBare)
	if !split {
		full = display
	}

	rank, defaulted := row.Rank(ColumnRank)
	notes = note(notes, row, ColumnRank, defaulted)
	rating, defaulted := row.Int(ColumnRating)
	notes = note(notes, row, ColumnRating, defaulted)

	return Entry{
		Line:        row.Line,
		DisplayName: display,
		FullName:    full,
		Initials:    Initials(display),
		Metric:      rating,
		Category:    Category(row.Text(ColumnDivision)),
		Rank:        rank,
	}, notes
}

// MVPEntry normalizes a NO/NAME/RATING GAIN/EVENT/DIVISION row.
func MVPEntry(row parsers.RawRow) (Entry, []Note) {
	var notes []Note
	display, full, _ := SplitName(row.Text(ColumnName), SplitSpaced)

	rank, defaulted := row.Rank(ColumnNo)
	notes = note(notes, row, ColumnNo, defaulted)
	gain, defaulted := row.Int(ColumnRatingGain)
	notes = note(notes, row, ColumnRatingGain, defaulted)
	events, defaulted := row.Int(ColumnEvent)
	notes = note(notes, row, ColumnEvent, defaulted)

	return Entry{
		Line:        row.Line,
		DisplayName: display,
		FullName:    full,
		Initials:    Initials(display),
		Metric:      gain,
		Events:      events,
		Category:    Category(row.Text(ColumnDivision)),
		Rank:        rank,
	}, notes
}

// Batch normalizes every row for flow, keeping source order.
func Batch(flow Flow, rows []parsers.RawRow) ([]Entry, []Note) {
	entries := make([]Entry, 0, len(rows))
	var notes []Note
	for _, row := range rows {
		var (
			e Entry
			n []Note
		)
		if flow == FlowMVP {
			e, n = MVPEntry(row)
		} else {
			e, n = LeaderboardEntry(row)
		}
		entries = append(entries, e)
		notes = append(notes, n...)
	}
	return entries, notes
}

func note(notes []Note, row parsers.RawRow, column string, defaulted bool) []Note {
	if !defaulted {
		return notes
	}
	return append(notes, Note{Line: row.Line, Column: column, Raw: row.Text(column)})
}
