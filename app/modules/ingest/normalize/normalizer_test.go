package normalize

import (
	"testing"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/parsers"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		style         SplitStyle
		wantPrimary   string
		wantSecondary string
		wantSplit     bool
	}{
		{"bare with separator", "Yosam/Yohanes Samuel", SplitBare, "Yosam", "Yohanes Samuel", true},
		{"bare trims segments", "  Yosam /  Yohanes Samuel ", SplitBare, "Yosam", "Yohanes Samuel", true},
		{"bare without separator", "  Calvin Joseph ", SplitBare, "Calvin Joseph", "", false},
		{"spaced with separator", "Aldo / Reynaldo Pratama", SplitSpaced, "Aldo", "Reynaldo Pratama", true},
		{"spaced ignores bare slash", "Yosam/Yohanes Samuel", SplitSpaced, "Yosam/Yohanes Samuel", "", false},
		{"extra segments dropped", "A/B/C", SplitBare, "A", "B", true},
		{"empty", "", SplitBare, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, secondary, ok := SplitName(tt.raw, tt.style)
			assert.Equal(t, tt.wantPrimary, primary)
			assert.Equal(t, tt.wantSecondary, secondary)
			assert.Equal(t, tt.wantSplit, ok)
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Calvin Joseph", "CJ"},
		{"PR", "PR"},
		{"X", "X"},
		{"miko", "MI"},
		{"HerKu (rovo)", "HR"},
		{"anna  maria  lee", "AM"},
		{"", ""},
		{"élodie durand", "ÉD"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in))
		})
	}
}

func TestHandle(t *testing.T) {
	assert.Equal(t, "herry_kuhuela", Handle("Herry  Kuhuela"))
	assert.Equal(t, "miko", Handle(" Miko "))
	assert.Equal(t, "", Handle(""))
}

func TestFlowSplitStyle(t *testing.T) {
	assert.Equal(t, SplitBare, FlowLeaderboard.SplitStyle())
	assert.Equal(t, SplitSpaced, FlowMVP.SplitStyle())
	assert.True(t, FlowMVP.Valid())
	assert.False(t, Flow("weekly").Valid())
}

func TestLeaderboardEntry(t *testing.T) {
	tests := []struct {
		name      string
		cells     map[string]string
		want      Entry
		wantNotes []Note
	}{
		{
			name: "composite name",
			cells: map[string]string{
				"NAME": "HerKu (rovo) / HERRY KUHUELA", "RANK": "4", "RATING": "1146", "DIVISION": "silver hawk",
			},
			want: Entry{
				Line: 2, DisplayName: "HerKu (rovo)", FullName: "HERRY KUHUELA", Initials: "HR",
				Metric: 1146, Category: "SILVER HAWK", Rank: 4,
			},
		},
		{
			name:  "plain name copies display into full name",
			cells: map[string]string{"NAME": "Calvin Joseph", "RANK": "1st", "RATING": "1520.6", "DIVISION": " Platinum Phoenix "},
			want: Entry{
				Line: 2, DisplayName: "Calvin Joseph", FullName: "Calvin Joseph", Initials: "CJ",
				Metric: 1521, Category: "PLATINUM PHOENIX", Rank: 1,
			},
		},
		{
			name:  "malformed numbers default to zero",
			cells: map[string]string{"NAME": "PR", "RANK": "n/a", "DIVISION": "golden falcon"},
			want: Entry{
				Line: 2, DisplayName: "PR", FullName: "PR", Initials: "PR", Category: "GOLDEN FALCON",
			},
			wantNotes: []Note{
				{Line: 2, Column: ColumnRank, Raw: "n/a"},
				{Line: 2, Column: ColumnRating, Raw: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, notes := LeaderboardEntry(parsers.NewRawRow(2, tt.cells))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("entry mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantNotes, notes); diff != "" {
				t.Errorf("notes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMVPEntry(t *testing.T) {
	tests := []struct {
		name      string
		cells     map[string]string
		want      Entry
		wantNotes []Note
	}{
		{
			name: "spaced composite name",
			cells: map[string]string{
				"NO": "1", "NAME": "Herky / Herry Kuhuela", "RATING GAIN": "85", "EVENT": "6", "DIVISION": "silver hawk",
			},
			want: Entry{
				Line: 3, DisplayName: "Herky", FullName: "Herry Kuhuela", Initials: "HE",
				Metric: 85, Events: 6, Category: "SILVER HAWK", Rank: 1,
			},
		},
		{
			name:  "bare slash is not a separator",
			cells: map[string]string{"NO": "2", "NAME": "Yosam/Yohanes", "RATING GAIN": "-12", "EVENT": "3", "DIVISION": "GOLDEN FALCON"},
			want: Entry{
				Line: 3, DisplayName: "Yosam/Yohanes", Initials: "YO",
				Metric: -12, Events: 3, Category: "GOLDEN FALCON", Rank: 2,
			},
		},
		{
			name:  "missing event count",
			cells: map[string]string{"NO": "3", "NAME": "X", "RATING GAIN": "abc"},
			want:  Entry{Line: 3, DisplayName: "X", Initials: "X", Rank: 3},
			wantNotes: []Note{
				{Line: 3, Column: ColumnRatingGain, Raw: "abc"},
				{Line: 3, Column: ColumnEvent, Raw: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, notes := MVPEntry(parsers.NewRawRow(3, tt.cells))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("entry mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantNotes, notes); diff != "" {
				t.Errorf("notes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBatch(t *testing.T) {
	rows := []parsers.RawRow{
		parsers.NewRawRow(2, map[string]string{"NO": "1", "NAME": "A / Anna", "RATING GAIN": "10", "EVENT": "1"}),
		parsers.NewRawRow(3, map[string]string{"NO": "2", "NAME": "B / Budi", "RATING GAIN": "x", "EVENT": "2"}),
	}

	entries, notes := Batch(FlowMVP, rows)

	assert.Len(t, entries, 2)
	assert.Equal(t, "Anna", entries[0].FullName)
	assert.Equal(t, "Budi", entries[1].FullName)
	assert.Equal(t, 0, entries[1].Metric)
	assert.Equal(t, []Note{{Line: 3, Column: ColumnRatingGain, Raw: "x"}}, notes)

	entries, _ = Batch(FlowLeaderboard, rows)
	assert.Equal(t, "A", entries[0].DisplayName)
	assert.Equal(t, "Anna", entries[0].FullName)
}
