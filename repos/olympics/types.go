package olympics

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"golang.org/x/xerrors"
)

// StatusFinished is the only upstream status value the feed interprets.
const StatusFinished = "Finished"

// Page is one page of a paged collection endpoint.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}

type Event struct {
	ID                  ID           `json:"id"`
	DisciplineName      string       `json:"discipline_name"`
	DisciplinePictogram string       `json:"discipline_pictogram"`
	EventName           string       `json:"event_name"`
	VenueName           string       `json:"venue_name"`
	StartDate           Timestamp    `json:"start_date"`
	EndDate             Timestamp    `json:"end_date"`
	Status              string       `json:"status"`
	IsMedalEvent        Flag         `json:"is_medal_event"`
	Competitors         []Competitor `json:"competitors"`
}

type Competitor struct {
	CountryID      string  `json:"country_id"`
	CountryFlagURL string  `json:"country_flag_url"`
	CompetitorName string  `json:"competitor_name"`
	ResultOutcome  *string `json:"result_winnerLoserTie,omitempty"`
	ResultMark     *string `json:"result_mark,omitempty"`
}

// DisplayReady reports whether the competitor can be shown with a name and a flag.
func (c Competitor) DisplayReady() bool {
	return c.CompetitorName != "" && c.CountryFlagURL != ""
}

type Country struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Continent       string `json:"continent"`
	FlagURL         string `json:"flag_url"`
	GoldMedals      int    `json:"gold_medals"`
	SilverMedals    int    `json:"silver_medals"`
	BronzeMedals    int    `json:"bronze_medals"`
	TotalMedals     int    `json:"total_medals"`
	Rank            int    `json:"rank"`
	RankTotalMedals int    `json:"rank_total_medals"`
}

// ID is an opaque identifier that arrives either as a JSON number or string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return xerrors.Errorf("id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

// Flag is a boolean that the API sends as true/false or 0/1.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch s := string(bytes.TrimSpace(b)); s {
	case "true", `"true"`:
		*f = true
	case "false", `"false"`, "null", `""`:
		*f = false
	default:
		n, err := strconv.ParseFloat(strings.Trim(s, `"`), 64)
		if err != nil {
			return xerrors.Errorf("flag %s: %w", s, err)
		}
		*f = n != 0
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is an upstream time value. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Timestamp{t}, nil
		}
		lastErr = err
	}
	return Timestamp{}, xerrors.Errorf("timestamp %q: %w", s, lastErr)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return xerrors.Errorf("timestamp %s: %w", b, err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}
