// Package share implements the card <-> URL-safe token codec and the
// shareable play-mode URL builder. The codec is stateless; a Codec value
// only carries the base address and length budget.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/arrange"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
)

// DefaultMaxURLLength is the safe full-URL budget. Tokens that would push
// the shareable URL past it are rejected at encode time.
const DefaultMaxURLLength = 2000

// Query parameter names of the share URL scheme
// (`<base>?play=true&data=<token>`).
const (
	ParamData = "data"
	ParamPlay = "play"
)

// Payload is the minimal card shape carried inside a share token. No
// identity or timestamps travel; a receiving client synthesizes its own.
type Payload struct {
	Title          string   `json:"title"`
	Terms          []string `json:"terms"`
	FreeSpaceImage string   `json:"freeSpaceImage,omitempty"`
	FreeSpaceIcon  string   `json:"freeSpaceIcon,omitempty"`
	Arrangement    []int    `json:"arrangement,omitempty"`
}

// Input converts a decoded payload into card-builder input, so the decode
// path runs the exact validation the interactive path runs.
func (p *Payload) Input() card.Input {
	return card.Input{
		Title:          p.Title,
		Terms:          p.Terms,
		FreeSpaceImage: p.FreeSpaceImage,
		FreeSpaceIcon:  p.FreeSpaceIcon,
		Arrangement:    p.Arrangement,
	}
}

// Codec binds the codec to a base address and URL length budget.
type Codec struct {
	baseURL string
	maxLen  int
}

// NewCodec creates a codec for the given base address. maxLen <= 0 falls
// back to DefaultMaxURLLength.
func NewCodec(baseURL string, maxLen int) *Codec {
	if maxLen <= 0 {
		maxLen = DefaultMaxURLLength
	}
	return &Codec{baseURL: baseURL, maxLen: maxLen}
}

// Encode serializes c into a URL-safe token: JSON, then base64 with the
// URL-safe alphabet and padding stripped. It fails with ErrURLTooLong when
// the token would push the full play-mode URL over the budget.
func (sc *Codec) Encode(c *card.Card) (string, error) {
	if c == nil {
		return "", apperr.ErrNoCard
	}
	payload := Payload{
		Title:          c.Title,
		Terms:          c.Terms,
		FreeSpaceImage: c.FreeSpaceImage,
		FreeSpaceIcon:  c.FreeSpaceIcon,
		Arrangement:    c.Arrangement,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("share: marshal payload: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	// Budget against the longest URL this token can end up in.
	if len(sc.playURL(token, true)) > sc.maxLen {
		return "", fmt.Errorf("%w: %d > %d characters", apperr.ErrURLTooLong, len(sc.playURL(token, true)), sc.maxLen)
	}
	return token, nil
}

// Decode reverses Encode with strict validation. Every malformed input --
// bad base64, bad JSON, wrong shape, wrong field types -- fails with an
// error wrapping apperr.ErrDecodeFailed; a malformed payload is never
// partially trusted.
func Decode(token string) (*Payload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid encoding", apperr.ErrDecodeFailed)
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: invalid payload", apperr.ErrDecodeFailed)
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: title must be a non-empty string", apperr.ErrDecodeFailed)
	}
	if len(p.Terms) == 0 {
		return nil, fmt.Errorf("%w: terms must be a non-empty array", apperr.ErrDecodeFailed)
	}
	if p.Arrangement != nil && len(p.Arrangement) != arrange.Size {
		return nil, fmt.Errorf("%w: arrangement must have %d slots", apperr.ErrDecodeFailed, arrange.Size)
	}
	return &p, nil
}

// ShareURL composes the shareable URL for c. play=true adds the read-only
// play-mode flag; editor links omit it. Size-limit errors propagate from
// Encode; the URL is never silently truncated.
func (sc *Codec) ShareURL(c *card.Card, play bool) (string, error) {
	token, err := sc.Encode(c)
	if err != nil {
		return "", err
	}
	return sc.playURL(token, play), nil
}

func (sc *Codec) playURL(token string, play bool) string {
	u, err := url.Parse(sc.baseURL)
	if err != nil {
		// Config validation guarantees a parseable base; fall back to raw join.
		sep := "?"
		if strings.Contains(sc.baseURL, "?") {
			sep = "&"
		}
		if play {
			return sc.baseURL + sep + ParamPlay + "=true&" + ParamData + "=" + token
		}
		return sc.baseURL + sep + ParamData + "=" + token
	}
	q := u.Query()
	if play {
		q.Set(ParamPlay, "true")
	}
	q.Set(ParamData, token)
	u.RawQuery = q.Encode()
	return u.String()
}
