package format

import (
	"regexp"
	"sync"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

// setCodePattern matches competitive set codes (main sets and extra boosters).
var setCodePattern = regexp.MustCompile(`^(OP|EB)[0-9]+$`)

// ignoredSets lists set codes excluded from format resolution because their
// release overlapped existing format boundaries.
var ignoredSets = []string{"EB04"}

// specialEventNames lists tournament-name substrings (matched
// case-insensitively) that mark exhibition events to exclude from statistics.
var specialEventNames = []string{"Heroine Battles"}

// Format is one competitive set together with every tournament where it
// appeared in a decklist.
type Format struct {
	SetCode       string   `json:"setCode"`
	DisplayName   string   `json:"displayName"`
	FirstSeen     string   `json:"firstSeen"`
	TournamentIDs []string `json:"tournamentIds"`
}

// Service resolves format membership from decklist set appearances. Resolved
// formats are cached until new tournament data is synced.
type Service struct {
	store meta.MetaStore

	mu        sync.Mutex
	watermark string
	cached    []Format
}
