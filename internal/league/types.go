// Package league defines the data model shared with the league management
// backend. Every type mirrors the backend's JSON contract; the backend is the
// system of record and ids are assigned there.
package league

// League is a tournament instance spanning a date range.
type League struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	StartDate   string `json:"startDate"` // yyyy-MM-dd
	EndDate     string `json:"endDate"`   // yyyy-MM-dd
	Description string `json:"description,omitempty"`
}

// Round is a named sub-period of a league grouping matches, e.g. a matchday.
type Round struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`
	Description string  `json:"description,omitempty"`
	League      *League `json:"league,omitempty"`
}

type Stadium struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Address  string `json:"address,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

type Team struct {
	ID           int64    `json:"id,omitempty"`
	FullName     string   `json:"fullName"`
	ShortName    string   `json:"shortName,omitempty"`
	HeadCoach    string   `json:"headCoach,omitempty"`
	HomeKitColor string   `json:"homeKitColor,omitempty"`
	AwayKitColor string   `json:"awayKitColor,omitempty"`
	Achievements string   `json:"achievements,omitempty"`
	Logo         string   `json:"logo,omitempty"`
	Stadium      *Stadium `json:"stadium,omitempty"`
}

// LeagueTeam is a team's registered participation in a specific league. It is
// the identity used for standings and match history, distinct from the bare
// team id.
type LeagueTeam struct {
	ID     int64   `json:"id,omitempty"`
	Team   *Team   `json:"team,omitempty"`
	League *League `json:"league,omitempty"`
}

// Participant roles within a match. The backend has historically stored them
// with inconsistent casing, so reads always compare case-insensitively.
const (
	RoleHome = "Home"
	RoleAway = "Away"
)

// LeagueTeamMatch is one side's record within a match.
type LeagueTeamMatch struct {
	ID         int64       `json:"id,omitempty"`
	Role       string      `json:"role,omitempty"`
	Goal       *int        `json:"goal,omitempty"` // nil reads as 0 for scorelines
	Result     string      `json:"result,omitempty"`
	LeagueTeam *LeagueTeam `json:"leagueTeam,omitempty"`
}

// Goals returns the goal count, treating an absent value as zero.
func (ltm LeagueTeamMatch) Goals() int {
	if ltm.Goal == nil {
		return 0
	}
	return *ltm.Goal
}

// Match is a scheduled fixture. Participants may arrive inline or be fetched
// lazily per match id; a well-formed match carries exactly two participants
// with distinct roles, but nothing here assumes that.
type Match struct {
	ID                int64             `json:"id,omitempty"`
	Date              string            `json:"date"`      // yyyy-MM-dd
	TimeStart         string            `json:"timeStart"` // HH:mm:ss
	Description       string            `json:"description,omitempty"`
	Stadium           *Stadium          `json:"stadium,omitempty"`
	Round             *Round            `json:"round,omitempty"`
	LeagueTeamMatches []LeagueTeamMatch `json:"leagueTeamMatches,omitempty"`
}

// RankingRow is one backend-computed standings entry. Read-only here.
type RankingRow struct {
	TeamName       string `json:"teamName"`
	TeamLogo       string `json:"teamLogo,omitempty"`
	LeagueTeamID   int64  `json:"leagueTeamId"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Rank           int    `json:"rank"`
}

// Employee is the authenticated back-office identity.
type Employee struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}
