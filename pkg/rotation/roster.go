package rotation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrInvalidDate     = errors.New("invalid assignment date")
	ErrEmptyTeamName   = errors.New("empty team name")
	ErrEmptyMemberName = errors.New("empty member name")
	ErrDuplicateMember = errors.New("duplicate member")
	ErrUnknownAbsentee = errors.New("unknown absentee")
)

// Roster maps a team name to the names of its members
type Roster map[string][]string

// Teams returns the team names in lexicographic order
func (r Roster) Teams() []string {
	teams := make([]string, 0, len(r))
	for team := range r {
		teams = append(teams, team)
	}
	slices.Sort(teams)
	return teams
}

// Members returns every member of every team, sorted
func (r Roster) Members() []string {
	var members []string
	for _, team := range r {
		members = append(members, team...)
	}
	slices.Sort(members)
	return members
}

// TeamOf returns the team a member belongs to
func (r Roster) TeamOf(member string) (string, bool) {
	for team, members := range r {
		if slices.Contains(members, member) {
			return team, true
		}
	}
	return "", false
}

// Validate checks that team and member names are non-blank and that no
// member appears twice, in the same team or across teams.
func (r Roster) Validate() error {
	seen := make(map[string]string)
	for _, team := range r.Teams() {
		if strings.TrimSpace(team) == "" {
			return ErrEmptyTeamName
		}
		for _, member := range r[team] {
			if strings.TrimSpace(member) == "" {
				return fmt.Errorf("%w in team %q", ErrEmptyMemberName, team)
			}
			if other, ok := seen[member]; ok {
				return fmt.Errorf("%w: %q is listed in %q and %q", ErrDuplicateMember, member, other, team)
			}
			seen[member] = team
		}
	}
	return nil
}

// absentSet builds a lookup of absentees, rejecting names the roster does not know.
func (r Roster) absentSet(absent []string) (map[string]bool, error) {
	known := make(map[string]bool)
	for _, members := range r {
		for _, m := range members {
			known[m] = true
		}
	}

	set := make(map[string]bool, len(absent))
	for _, name := range absent {
		if !known[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAbsentee, name)
		}
		set[name] = true
	}
	return set, nil
}

// present flattens the roster, drops absentees and sorts the result.
func (r Roster) present(absent map[string]bool) []string {
	present := make([]string, 0)
	for _, members := range r {
		for _, m := range members {
			if !absent[m] {
				present = append(present, m)
			}
		}
	}
	slices.Sort(present)
	return present
}
