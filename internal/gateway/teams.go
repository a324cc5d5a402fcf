package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

// LogoUpload is a team logo file taken from a multipart form. It holds the
// bytes rather than a reader so a failed create can be retried with the same
// upload.
type LogoUpload struct {
	Filename string
	Data     []byte
}

// ListTeams returns every team.
func (c *Client) ListTeams(ctx context.Context) ([]league.Team, error) {
	var teams []league.Team
	if err := c.getJSON(ctx, "/api/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// CreateTeam persists a new team. With a logo the request goes out as
// multipart/form-data so the binary travels alongside the fields; without one
// it is plain JSON.
func (c *Client) CreateTeam(ctx context.Context, team league.Team, logo *LogoUpload) (league.Team, error) {
	if logo == nil {
		var created league.Team
		if err := c.postJSON(ctx, "/api/teams", team, &created); err != nil {
			return league.Team{}, err
		}
		return created, nil
	}
	return c.createTeamMultipart(ctx, team, logo)
}

func (c *Client) createTeamMultipart(ctx context.Context, team league.Team, logo *LogoUpload) (league.Team, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"fullName":     team.FullName,
		"shortName":    team.ShortName,
		"headCoach":    team.HeadCoach,
		"homeKitColor": team.HomeKitColor,
		"awayKitColor": team.AwayKitColor,
		"achievements": team.Achievements,
	}
	if team.Stadium != nil && team.Stadium.ID != 0 {
		fields["stadiumId"] = strconv.FormatInt(team.Stadium.ID, 10)
	}
	for name, value := range fields {
		if value == "" && name != "fullName" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return league.Team{}, fmt.Errorf("writing form field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("logo", logo.Filename)
	if err != nil {
		return league.Team{}, fmt.Errorf("creating logo part: %w", err)
	}
	if _, err := part.Write(logo.Data); err != nil {
		return league.Team{}, fmt.Errorf("writing logo: %w", err)
	}
	if err := writer.Close(); err != nil {
		return league.Team{}, fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/teams", &body)
	if err != nil {
		return league.Team{}, fmt.Errorf("building team request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var created league.Team
	if err := c.do(req, &created); err != nil {
		return league.Team{}, err
	}
	return created, nil
}
