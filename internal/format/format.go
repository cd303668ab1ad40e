package format

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

func NewService(store meta.MetaStore) *Service {
	return &Service{store: store}
}

// AllFormats returns every recognized set with its first-seen date and
// tournament membership, most recently introduced first. Membership is
// inclusive: a tournament belongs to every format whose set appears in any of
// its decklists, so tournaments can belong to several formats at once during
// a transition.
func (s *Service) AllFormats() ([]Format, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	watermark, err := s.store.MaxSyncedAt()
	if err != nil {
		return nil, fmt.Errorf("reading sync watermark: %w", err)
	}
	if s.cached != nil && watermark == s.watermark {
		return s.cached, nil
	}

	appearances, err := s.store.SetAppearances()
	if err != nil {
		return nil, fmt.Errorf("loading set appearances: %w", err)
	}

	type accumulator struct {
		firstSeen string
		members   []string
		seen      map[string]bool
	}
	bySet := make(map[string]*accumulator)
	for _, a := range appearances {
		if !setCodePattern.MatchString(a.CardSet) || isIgnoredSet(a.CardSet) {
			continue
		}
		acc, ok := bySet[a.CardSet]
		if !ok {
			acc = &accumulator{seen: make(map[string]bool)}
			bySet[a.CardSet] = acc
		}
		if acc.firstSeen == "" || a.Date < acc.firstSeen {
			acc.firstSeen = a.Date
		}
		if !acc.seen[a.TournamentID] {
			acc.seen[a.TournamentID] = true
			acc.members = append(acc.members, a.TournamentID)
		}
	}

	formats := make([]Format, 0, len(bySet))
	for code, acc := range bySet {
		sort.Strings(acc.members)
		formats = append(formats, Format{
			SetCode:       code,
			DisplayName:   DisplaySetCode(code),
			FirstSeen:     acc.firstSeen,
			TournamentIDs: acc.members,
		})
	}
	sort.SliceStable(formats, func(i, j int) bool {
		if formats[i].FirstSeen != formats[j].FirstSeen {
			return formats[i].FirstSeen > formats[j].FirstSeen
		}
		return formats[i].SetCode > formats[j].SetCode
	})

	s.watermark = watermark
	s.cached = formats
	return formats, nil
}

// CurrentFormat returns the format whose set most recently entered play, or
// nil when no decklist data exists yet.
func (s *Service) CurrentFormat() (*Format, error) {
	formats, err := s.AllFormats()
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, nil
	}
	return &formats[0], nil
}

// FormatBySetCode resolves one set's tournament membership, or nil when the
// set has never appeared.
func (s *Service) FormatBySetCode(code string) (*Format, error) {
	formats, err := s.AllFormats()
	if err != nil {
		return nil, err
	}
	for i := range formats {
		if formats[i].SetCode == code {
			return &formats[i], nil
		}
	}
	return nil, nil
}

// ResolveFilter turns a format query parameter into the tournament-id set to
// restrict statistics to. "all" (or any unknown set code) means every
// tournament; "" and "current" mean the current format. Special events are
// excluded from the result in every case.
func (s *Service) ResolveFilter(formatParam string) ([]string, error) {
	tournaments, err := s.store.ListTournaments()
	if err != nil {
		return nil, fmt.Errorf("listing tournaments: %w", err)
	}

	var member map[string]bool
	switch formatParam {
	case "all":
		// No format restriction.
	case "", "current":
		current, err := s.CurrentFormat()
		if err != nil {
			return nil, err
		}
		if current != nil {
			member = membershipSet(current.TournamentIDs)
		}
	default:
		f, err := s.FormatBySetCode(formatParam)
		if err != nil {
			return nil, err
		}
		// A set code that never appeared falls back to the unfiltered
		// all-time view rather than an error.
		if f != nil {
			member = membershipSet(f.TournamentIDs)
		}
	}

	var ids []string
	for _, t := range tournaments {
		if IsSpecialEvent(t.Name) {
			continue
		}
		if member != nil && !member[t.ID] {
			continue
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// IsSpecialEvent reports whether a tournament name marks an exhibition event
// excluded from statistical views.
func IsSpecialEvent(tournamentName string) bool {
	lower := strings.ToLower(tournamentName)
	for _, name := range specialEventNames {
		if strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// DisplaySetCode renders a set code for display, e.g. "OP14" as "OP-14".
func DisplaySetCode(code string) string {
	return setCodeSplit.ReplaceAllString(code, "$1-$2")
}

var setCodeSplit = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

func isIgnoredSet(code string) bool {
	for _, s := range ignoredSets {
		if s == code {
			return true
		}
	}
	return false
}

func membershipSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
