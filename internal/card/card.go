// Package card defines the canonical card record and the validation that
// builds one from raw input. The same Build path serves the API, the share
// decode path, and the MCP tools.
package card

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/arrange"
)

// Title length bounds in runes.
const (
	TitleMinLen = 3
	TitleMaxLen = 100
)

// DefaultIcon is the free-space icon used when neither an image nor an
// icon key is supplied.
const DefaultIcon = "star"

// Card is the canonical record for one bingo card.
type Card struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Terms          []string  `json:"terms"`
	FreeSpaceImage string    `json:"freeSpaceImage,omitempty"`
	FreeSpaceIcon  string    `json:"freeSpaceIcon,omitempty"`
	Arrangement    []int     `json:"arrangement"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Input is the raw material for building a card. Arrangement is optional;
// when present (share decode path) it is validated instead of regenerated.
type Input struct {
	Title          string   `json:"title" yaml:"title"`
	Terms          []string `json:"terms" yaml:"terms"`
	FreeSpaceImage string   `json:"freeSpaceImage,omitempty" yaml:"freeSpaceImage,omitempty"`
	FreeSpaceIcon  string   `json:"freeSpaceIcon,omitempty" yaml:"freeSpaceIcon,omitempty"`
	Arrangement    []int    `json:"arrangement,omitempty" yaml:"-"`
}

// NormalizeTerms trims every term and drops the ones that are blank after
// trimming. Order is preserved.
func NormalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if t := strings.TrimSpace(term); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DedupTerms removes case-insensitive duplicates, keeping the first
// occurrence and its original casing.
func DedupTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, term)
	}
	return out
}

// ValidateTerms normalizes, checks the 24-term floor, dedups, and checks
// the floor again. It returns the cleaned pool. Both Build and the variant
// generator run their term pools through this exact check so callers see
// one error shape.
func ValidateTerms(terms []string) ([]string, error) {
	cleaned := NormalizeTerms(terms)
	if len(cleaned) < arrange.MinTerms {
		return nil, &apperr.InsufficientTermsError{Have: len(cleaned), Need: arrange.MinTerms}
	}
	deduped := DedupTerms(cleaned)
	if len(deduped) < arrange.MinTerms {
		return nil, &apperr.ValidationError{
			Field: "terms",
			Message: fmt.Sprintf("only %d unique terms after removing case-insensitive duplicates, need at least %d",
				len(deduped), arrange.MinTerms),
		}
	}
	return deduped, nil
}

func validateTitle(title string) error {
	err := validation.Validate(title,
		validation.Required.Error("title is required"),
		validation.RuneLength(TitleMinLen, 0).Error(fmt.Sprintf("title is too short: minimum %d characters", TitleMinLen)),
		validation.RuneLength(0, TitleMaxLen).Error(fmt.Sprintf("title is too long: maximum %d characters", TitleMaxLen)),
	)
	if err != nil {
		return &apperr.ValidationError{Field: "title", Message: err.Error()}
	}
	return nil
}

func validateFreeSpaceImage(raw string) error {
	if err := validation.Validate(raw, is.URL); err != nil {
		return &apperr.ValidationError{Field: "freeSpaceImage", Message: "must be a valid URL"}
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &apperr.ValidationError{Field: "freeSpaceImage", Message: "must be an absolute URL"}
	}
	return nil
}

// Build validates in and produces a card record with a fresh arrangement
// (or in's own arrangement, when present and well-formed). On any
// violation it returns a validation-class error and no card.
func Build(in Input) (*Card, error) {
	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	terms, err := ValidateTerms(in.Terms)
	if err != nil {
		return nil, err
	}

	if in.FreeSpaceImage != "" {
		if err := validateFreeSpaceImage(in.FreeSpaceImage); err != nil {
			return nil, err
		}
	}

	icon := in.FreeSpaceIcon
	if in.FreeSpaceImage == "" && icon == "" {
		icon = DefaultIcon
	}

	var arr []int
	if in.Arrangement != nil {
		if err := arrange.Validate(in.Arrangement, len(terms)); err != nil {
			return nil, &apperr.ValidationError{Field: "arrangement", Message: err.Error()}
		}
		arr = append([]int(nil), in.Arrangement...)
	} else {
		arr, err = arrange.Generate(len(terms))
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	return &Card{
		ID:             uuid.New(),
		Title:          title,
		Terms:          terms,
		FreeSpaceImage: in.FreeSpaceImage,
		FreeSpaceIcon:  icon,
		Arrangement:    arr,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Clone returns a deep copy, so callers can hand cards out without
// exposing the store's slices to mutation.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	out := *c
	out.Terms = append([]string(nil), c.Terms...)
	out.Arrangement = append([]int(nil), c.Arrangement...)
	return &out
}
