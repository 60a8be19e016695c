package ingestservice

import (
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	leaderboardservice "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/application"
	mvpservice "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/application"
)

// Preview is a normalized batch that has not been written.
type Preview struct {
	Flow     normalize.Flow    `json:"flow"`
	FileName string            `json:"fileName"`
	Entries  []normalize.Entry `json:"entries"`
	Notes    []normalize.Note  `json:"notes,omitempty"`
	// MissingColumns lists expected header labels absent from the file. Their cells default.
	MissingColumns []string `json:"missingColumns,omitempty"`
}

// LeaderboardResult is the outcome of a leaderboard upload.
type LeaderboardResult struct {
	FileName string                        `json:"fileName"`
	Report   leaderboardservice.SyncReport `json:"report"`
	Notes    []normalize.Note              `json:"notes,omitempty"`
}

// MVPResult is the outcome of an MVP upload.
type MVPResult struct {
	FileName string                `json:"fileName"`
	Report   mvpservice.SyncReport `json:"report"`
	Notes    []normalize.Note      `json:"notes,omitempty"`
}
