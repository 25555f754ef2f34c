package card

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/arrange"
)

// testTerms returns n distinct terms.
func testTerms(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("synergy-%d", i)
	}
	return out
}

func TestBuild_Success(t *testing.T) {
	c, err := Build(Input{Title: "Tech All-Hands Bingo", Terms: testTerms(24)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Title != "Tech All-Hands Bingo" {
		t.Errorf("title = %q", c.Title)
	}
	if len(c.Terms) != 24 {
		t.Errorf("terms = %d, want 24", len(c.Terms))
	}
	if c.FreeSpaceIcon != DefaultIcon {
		t.Errorf("icon = %q, want %q", c.FreeSpaceIcon, DefaultIcon)
	}
	if c.Arrangement[arrange.FreeSlot] != arrange.FreeSpace {
		t.Errorf("free slot = %d", c.Arrangement[arrange.FreeSlot])
	}
	if err := arrange.Validate(c.Arrangement, 24); err != nil {
		t.Errorf("arrangement invalid: %v", err)
	}
	if c.ID == uuid.Nil {
		t.Error("zero card ID")
	}
	if c.CreatedAt.IsZero() || !c.CreatedAt.Equal(c.UpdatedAt) {
		t.Error("timestamps not initialized")
	}
}

func TestBuild_TrimsAndFilters(t *testing.T) {
	terms := append(testTerms(24), "   ", "", "\t")
	terms[0] = "  padded term  "
	c, err := Build(Input{Title: "Standup Bingo", Terms: terms})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Terms) != 24 {
		t.Fatalf("terms = %d, want 24", len(c.Terms))
	}
	if c.Terms[0] != "padded term" {
		t.Errorf("terms[0] = %q, want trimmed", c.Terms[0])
	}
}

func TestBuild_InsufficientTermsReportsCount(t *testing.T) {
	_, err := Build(Input{Title: "Short Pool", Terms: testTerms(23)})
	var ie *apperr.InsufficientTermsError
	if !errors.As(err, &ie) {
		t.Fatalf("error = %v (%T), want InsufficientTermsError", err, err)
	}
	if ie.Have != 23 {
		t.Errorf("Have = %d, want 23", ie.Have)
	}
	if !strings.Contains(err.Error(), "23") {
		t.Errorf("message %q does not report the count", err.Error())
	}
}

func TestBuild_DuplicateTerms(t *testing.T) {
	terms := testTerms(23)
	terms = append(terms, "SYNERGY-0") // dup of synergy-0, different case
	_, err := Build(Input{Title: "Dup Bingo", Terms: terms})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v (%T), want ValidationError", err, err)
	}
	if ve.Field != "terms" || !strings.Contains(ve.Message, "duplicate") {
		t.Errorf("unexpected error: %v", ve)
	}
}

func TestBuild_DedupPreservesOrderAndCasing(t *testing.T) {
	terms := append([]string{"Cloud Native", "cloud native"}, testTerms(24)...)
	c, err := Build(Input{Title: "Casing Bingo", Terms: terms})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Terms[0] != "Cloud Native" {
		t.Errorf("terms[0] = %q, want first occurrence kept", c.Terms[0])
	}
	if len(c.Terms) != 25 {
		t.Errorf("terms = %d, want 25", len(c.Terms))
	}
}

func TestBuild_TitleBounds(t *testing.T) {
	_, err := Build(Input{Title: "ab", Terms: testTerms(24)})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" || !strings.Contains(ve.Message, "too short") {
		t.Errorf(`title "ab": got %v, want too-short title error`, err)
	}

	_, err = Build(Input{Title: strings.Repeat("x", 101), Terms: testTerms(24)})
	if !errors.As(err, &ve) || ve.Field != "title" || !strings.Contains(ve.Message, "too long") {
		t.Errorf("101-char title: got %v, want too-long title error", err)
	}

	if _, err := Build(Input{Title: strings.Repeat("x", 100), Terms: testTerms(24)}); err != nil {
		t.Errorf("100-char title rejected: %v", err)
	}
	if _, err := Build(Input{Title: "abc", Terms: testTerms(24)}); err != nil {
		t.Errorf("3-char title rejected: %v", err)
	}
}

func TestBuild_FreeSpaceImage(t *testing.T) {
	c, err := Build(Input{
		Title:          "Image Bingo",
		Terms:          testTerms(24),
		FreeSpaceImage: "https://example.com/logo.png",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.FreeSpaceImage != "https://example.com/logo.png" {
		t.Errorf("image = %q", c.FreeSpaceImage)
	}
	// Icon left empty so the image stays the effective free-space renderer.
	if c.FreeSpaceIcon != "" {
		t.Errorf("icon = %q, want empty alongside image", c.FreeSpaceIcon)
	}

	for _, bad := range []string{"not a url", "/relative/path.png", "example com/x.png"} {
		_, err := Build(Input{Title: "Image Bingo", Terms: testTerms(24), FreeSpaceImage: bad})
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) || ve.Field != "freeSpaceImage" {
			t.Errorf("image %q: got %v, want freeSpaceImage error", bad, err)
		}
	}
}

func TestBuild_SuppliedArrangement(t *testing.T) {
	arr, _ := arrange.Generate(24)
	c, err := Build(Input{Title: "Fixed Bingo", Terms: testTerms(24), Arrangement: arr})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := range arr {
		if c.Arrangement[i] != arr[i] {
			t.Fatalf("arrangement changed at slot %d", i)
		}
	}

	bad := append([]int(nil), arr...)
	bad[0] = 99
	_, err = Build(Input{Title: "Fixed Bingo", Terms: testTerms(24), Arrangement: bad})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "arrangement" {
		t.Errorf("bad arrangement: got %v", err)
	}
}

func TestClone_Independent(t *testing.T) {
	c, err := Build(Input{Title: "Clone Bingo", Terms: testTerms(24)})
	if err != nil {
		t.Fatal(err)
	}
	cp := c.Clone()
	cp.Terms[0] = "changed"
	cp.Arrangement[0] = -7
	if c.Terms[0] == "changed" || c.Arrangement[0] == -7 {
		t.Error("clone shares backing arrays with original")
	}
}
