package lookup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Response struct {
	Data []UserRecord `json:"data"`
}

// decodeResponse is lenient about shape: a body without a "data" array
// (a bare array, "data" as an object) yields no records, and non-object
// entries become nil records. Only invalid JSON is an error.
func decodeResponse(body []byte) (Response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Response{}, err
	}

	envelope, _ := raw.(map[string]any)
	items, _ := envelope["data"].([]any)

	var out Response
	for _, item := range items {
		rec, _ := item.(map[string]any)
		out.Data = append(out.Data, UserRecord(rec))
	}
	return out, nil
}

// Field names of the progress record as the backend returns them.
const (
	FieldUserName             = "User Name"
	FieldUserEmail            = "User Email"
	FieldSkillBadgesCompleted = "# of Skill Badges Completed"
	FieldArcadeGamesCompleted = "# of Arcade Games Completed"
	FieldProfileURLStatus     = "Profile URL Status"
	FieldAccessCodeRedemption = "Access Code Redemption Status"
	FieldAllCompleted         = "All Skill Badges & Games Completed"
	FieldSkillBadgeNames      = "Names of Completed Skill Badges"
	FieldArcadeGameNames      = "Names of Completed Arcade Games"
	FieldProfileURL           = "Google Cloud Skills Boost Profile URL"
)

// UserRecord is the backend's progress record, kept as an opaque map so
// unknown fields pass through untouched. Numbers decode as json.Number.
type UserRecord map[string]any

// Text returns the field rendered as text; missing and null read as "".
func (r UserRecord) Text(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Number returns the field as a float. Numeric strings are parsed; anything
// else, including NaN and infinities, reads as 0.
func (r UserRecord) Number(field string) float64 {
	switch v := r[field].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (r UserRecord) Name() string  { return r.Text(FieldUserName) }
func (r UserRecord) Email() string { return r.Text(FieldUserEmail) }

func (r UserRecord) SkillBadgesCompleted() float64 { return r.Number(FieldSkillBadgesCompleted) }
func (r UserRecord) ArcadeGamesCompleted() float64 { return r.Number(FieldArcadeGamesCompleted) }

func (r UserRecord) ProfileURLStatus() string     { return r.Text(FieldProfileURLStatus) }
func (r UserRecord) AccessCodeRedemption() string { return r.Text(FieldAccessCodeRedemption) }
func (r UserRecord) AllCompleted() string         { return r.Text(FieldAllCompleted) }

func (r UserRecord) SkillBadgeNames() string { return r.Text(FieldSkillBadgeNames) }
func (r UserRecord) ArcadeGameNames() string { return r.Text(FieldArcadeGameNames) }
func (r UserRecord) ProfileURL() string      { return r.Text(FieldProfileURL) }
