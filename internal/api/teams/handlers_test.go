package teams

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/gateway"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

type fakeGateway struct {
	Gateway
	createdTeam league.Team
	createdLogo *gateway.LogoUpload
	createCalls int
}

func (f *fakeGateway) CreateTeam(_ context.Context, team league.Team, logo *gateway.LogoUpload) (league.Team, error) {
	f.createCalls++
	f.createdTeam = team
	f.createdLogo = logo
	team.ID = 42
	return team, nil
}

func TestValidateDraftRequiresOnlyFullName(t *testing.T) {
	if err := validateDraft(Draft{FullName: "Hà Nội FC"}); err != nil {
		t.Fatalf("full name alone should validate, got %v", err)
	}
	if err := validateDraft(Draft{FullName: "  "}); err == nil {
		t.Fatal("expected a validation error for a blank full name")
	}
	if err := validateDraft(Draft{FullName: "Hà Nội FC", ShortName: "HAN", HeadCoach: "Lê Đức Tuấn"}); err != nil {
		t.Fatalf("complete draft should validate, got %v", err)
	}
}

func TestSubmitTrimsFieldsAndForwardsLogo(t *testing.T) {
	gw := &fakeGateway{}
	h := NewHandlers(gw, nil)

	logo := &gateway.LogoUpload{Filename: "crest.png", Data: []byte{0x89, 'P', 'N', 'G'}}
	draft := Draft{
		FullName:  "  Hà Nội FC ",
		ShortName: "HAN",
		HeadCoach: "Lê Đức Tuấn",
		Stadium:   &league.Stadium{ID: 7, Name: "Hàng Đẫy"},
		Logo:      logo,
	}
	if err := h.submitDraft(context.Background(), draft); err != nil {
		t.Fatalf("submitDraft: %v", err)
	}

	if gw.createdTeam.FullName != "Hà Nội FC" {
		t.Errorf("FullName = %q, want trimmed", gw.createdTeam.FullName)
	}
	if gw.createdTeam.Stadium == nil || gw.createdTeam.Stadium.ID != 7 {
		t.Errorf("Stadium = %+v, want id 7", gw.createdTeam.Stadium)
	}
	if gw.createdLogo != logo {
		t.Error("logo upload was not forwarded to the create call")
	}
}

func TestSubmitWithoutLogoSendsNil(t *testing.T) {
	gw := &fakeGateway{}
	h := NewHandlers(gw, nil)

	draft := Draft{FullName: "SLNA", ShortName: "SLNA", HeadCoach: "Phan Như Thuật"}
	if err := h.submitDraft(context.Background(), draft); err != nil {
		t.Fatalf("submitDraft: %v", err)
	}
	if gw.createdLogo != nil {
		t.Fatalf("logo = %+v, want nil when nothing was uploaded", gw.createdLogo)
	}
}

func TestReadLogoMissingFileIsNotAnError(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("full_name", "SLNA"); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	r := httptest.NewRequest("POST", "/teams/add", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		t.Fatal(err)
	}

	logo, err := readLogo(r)
	if err != nil {
		t.Fatalf("readLogo: %v", err)
	}
	if logo != nil {
		t.Fatalf("logo = %+v, want nil for a form without a file part", logo)
	}
}

func TestReadLogoCapturesFilenameAndBytes(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("logo", "crest.png")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("png-bytes"))
	mw.Close()

	r := httptest.NewRequest("POST", "/teams/add", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		t.Fatal(err)
	}

	logo, err := readLogo(r)
	if err != nil {
		t.Fatalf("readLogo: %v", err)
	}
	if logo == nil || logo.Filename != "crest.png" || string(logo.Data) != "png-bytes" {
		t.Fatalf("logo = %+v, want crest.png with the uploaded bytes", logo)
	}
}
