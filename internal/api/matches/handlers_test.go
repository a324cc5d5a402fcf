package matches

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/workflow"
)

type fakeGateway struct {
	Gateway
	created   []league.Match
	createErr error
}

func (f *fakeGateway) CreateMatch(_ context.Context, match league.Match) (league.Match, error) {
	if f.createErr != nil {
		return league.Match{}, f.createErr
	}
	f.created = append(f.created, match)
	match.ID = 99
	return match, nil
}

func teamPtr(id int64, name string) *league.LeagueTeam {
	return &league.LeagueTeam{ID: id, Team: &league.Team{ID: id, FullName: name}}
}

func completeDraft() Draft {
	return Draft{
		LeagueID:  1,
		RoundID:   4,
		RoundName: "Round 4",
		Date:      "5/3/2025",
		Time:      "19:00",
		HomeTeam:  teamPtr(11, "Hà Nội FC"),
		AwayTeam:  teamPtr(12, "HAGL"),
		Stadium:   &league.Stadium{ID: 7, Name: "Hàng Đẫy"},
	}
}

func TestValidateDraftRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"no round", func(d *Draft) { d.RoundID = 0 }},
		{"no date", func(d *Draft) { d.Date = "" }},
		{"no time", func(d *Draft) { d.Time = "" }},
		{"no home team", func(d *Draft) { d.HomeTeam = nil }},
		{"no away team", func(d *Draft) { d.AwayTeam = nil }},
		{"no stadium", func(d *Draft) { d.Stadium = nil }},
		{"same team both sides", func(d *Draft) { d.AwayTeam = d.HomeTeam }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := completeDraft()
			tc.mutate(&draft)
			if err := validateDraft(draft); err == nil {
				t.Fatal("expected a validation error, got nil")
			}
		})
	}

	if err := validateDraft(completeDraft()); err != nil {
		t.Fatalf("complete draft should validate, got %v", err)
	}
}

func TestDraftWithoutRoundNeverReachesBackend(t *testing.T) {
	gw := &fakeGateway{}
	h := NewHandlers(gw, nil)

	draft := completeDraft()
	draft.RoundID = 0
	draft.RoundName = ""

	form := workflow.New(validateDraft, h.submitDraft)
	form.Update(func(d *Draft) { *d = draft })
	if err := form.Review(); err == nil {
		t.Fatal("expected review to reject a draft with no round")
	}
	if got := form.State(); got != workflow.StateEditing {
		t.Fatalf("state = %v, want editing", got)
	}
	if len(gw.created) != 0 {
		t.Fatalf("got %d create calls, want 0", len(gw.created))
	}
}

func TestSubmitNormalizesAndTagsParticipants(t *testing.T) {
	gw := &fakeGateway{}
	h := NewHandlers(gw, nil)

	if err := h.submitDraft(context.Background(), completeDraft()); err != nil {
		t.Fatalf("submitDraft: %v", err)
	}
	if len(gw.created) != 1 {
		t.Fatalf("got %d create calls, want 1", len(gw.created))
	}

	got := gw.created[0]
	if got.Date != "2025-03-05" {
		t.Errorf("Date = %q, want 2025-03-05", got.Date)
	}
	if got.TimeStart != "19:00:00" {
		t.Errorf("TimeStart = %q, want 19:00:00", got.TimeStart)
	}
	if got.Round == nil || got.Round.ID != 4 {
		t.Errorf("Round = %+v, want id 4", got.Round)
	}
	if got.Stadium == nil || got.Stadium.ID != 7 {
		t.Errorf("Stadium = %+v, want id 7", got.Stadium)
	}

	wantRoles := []string{league.RoleHome, league.RoleAway}
	var gotRoles []string
	for _, p := range got.LeagueTeamMatches {
		gotRoles = append(gotRoles, p.Role)
	}
	if diff := cmp.Diff(wantRoles, gotRoles); diff != "" {
		t.Errorf("participant roles mismatch (-want +got):\n%s", diff)
	}
	if got.LeagueTeamMatches[0].LeagueTeam.ID != 11 || got.LeagueTeamMatches[1].LeagueTeam.ID != 12 {
		t.Errorf("participant teams = %d/%d, want 11/12",
			got.LeagueTeamMatches[0].LeagueTeam.ID, got.LeagueTeamMatches[1].LeagueTeam.ID)
	}
}

func TestSubmitRejectsMalformedDateWithoutCallingBackend(t *testing.T) {
	gw := &fakeGateway{}
	h := NewHandlers(gw, nil)

	draft := completeDraft()
	draft.Date = "next tuesday"
	if err := h.submitDraft(context.Background(), draft); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
	if len(gw.created) != 0 {
		t.Fatalf("backend called %d times for a malformed date, want 0", len(gw.created))
	}
}

func TestFailedSubmitKeepsDraftForRetry(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("stadium is booked")}
	h := NewHandlers(gw, nil)

	form := workflow.New(validateDraft, h.submitDraft)
	form.Update(func(d *Draft) { *d = completeDraft() })
	if err := form.Review(); err != nil {
		t.Fatalf("Review: %v", err)
	}
	if err := form.Confirm(context.Background()); err == nil {
		t.Fatal("expected the submit error to surface")
	}
	if form.State() != workflow.StateConfirming {
		t.Fatalf("state = %v after failed submit, want confirming", form.State())
	}
	if form.Message() != "stadium is booked" {
		t.Fatalf("message = %q, want the backend error", form.Message())
	}

	gw.createErr = nil
	if err := form.Confirm(context.Background()); err != nil {
		t.Fatalf("retry Confirm: %v", err)
	}
	if len(gw.created) != 1 {
		t.Fatalf("got %d creates after retry, want 1", len(gw.created))
	}
}

func TestSelectionMustComeFromCurrentResults(t *testing.T) {
	teams := []league.LeagueTeam{*teamPtr(1, "A"), *teamPtr(2, "B")}

	if _, ok := teamByID(teams, 2); !ok {
		t.Fatal("expected to find team 2 in the result set")
	}
	if _, ok := teamByID(teams, 9); ok {
		t.Fatal("team 9 is not in the result set")
	}
	if _, ok := stadiumByID(nil, 1); ok {
		t.Fatal("selection from an empty result set must fail")
	}
}
