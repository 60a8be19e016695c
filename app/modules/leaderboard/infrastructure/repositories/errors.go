package leaderboarddb

import "errors"

// ErrUnknownPlayer is returned when a stat row references a player that does not exist.
var ErrUnknownPlayer = errors.New("stat references unknown player")
