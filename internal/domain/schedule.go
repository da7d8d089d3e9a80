package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Weekday is the lowercase English day name used as a schedule key.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// DaysOfWeek lists weekdays in schedule order.
var DaysOfWeek = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Session is one prescribed workout for a week/day.
type Session struct {
	Type        string
	DistanceKm  float64
	Pace        time.Duration // per km; zero when the session has no pace
	Description string

	// stored holds the encoded form the session was loaded from, so untouched
	// sessions are written back byte-for-byte. Cleared by Scale.
	stored *storedSession
}

// storedSession is the persistence and wire form of a Session.
type storedSession struct {
	Type        string `bson:"type,omitempty" json:"type,omitempty"`
	Distance    string `bson:"distance,omitempty" json:"distance,omitempty"`
	Pace        string `bson:"pace,omitempty" json:"pace,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// UnmarshalBSONValue reads a stored session leniently. Fields that are not
// strings decode as empty, so a numeric distance becomes 0 km, and a value
// that is not a document becomes an empty session.
func (s *storedSession) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*s = storedSession{}
	if t != bsontype.EmbeddedDocument {
		return nil
	}
	doc := bson.Raw(data)
	if err := doc.Validate(); err != nil {
		return nil
	}
	field := func(key string) string {
		v, _ := doc.Lookup(key).StringValueOK()
		return v
	}
	s.Type = field("type")
	s.Distance = field("distance")
	s.Pace = field("pace")
	s.Description = field("description")
	return nil
}

// HasDistance reports whether the session is a distance session. Rest days
// and malformed entries have no positive distance.
func (s Session) HasDistance() bool {
	return s.DistanceKm > 0
}

// EffectivePace returns the session pace, falling back to DefaultPace.
func (s Session) EffectivePace() time.Duration {
	if s.Pace <= 0 {
		return DefaultPace
	}
	return s.Pace
}

// DistanceString returns the distance as it will be persisted.
func (s Session) DistanceString() string {
	return s.encode().Distance
}

// PaceString returns the pace as it will be persisted.
func (s Session) PaceString() string {
	return s.encode().Pace
}

// Scale applies a difficulty multiplier. Harder multipliers (> 1) lengthen
// the distance and speed up the pace by the reciprocal; easier ones shorten
// the distance and slow the pace by the multiplier itself.
func (s *Session) Scale(multiplier float64) {
	paceFactor := multiplier
	if multiplier > 1 {
		paceFactor = 1 / multiplier
	}
	s.DistanceKm = RoundDistance(s.DistanceKm * multiplier)
	pace := time.Duration(float64(s.EffectivePace()) * paceFactor)
	s.Pace = time.Duration(math.Round(pace.Seconds())) * time.Second
	s.stored = nil
}

func (s Session) encode() storedSession {
	out := storedSession{Type: s.Type, Description: s.Description}
	if s.stored != nil {
		out.Distance, out.Pace = s.stored.Distance, s.stored.Pace
		return out
	}
	if s.DistanceKm > 0 {
		out.Distance = FormatDistance(s.DistanceKm)
	}
	if s.Pace > 0 {
		out.Pace = FormatPace(s.Pace)
	}
	return out
}

func decodeSession(in storedSession) Session {
	s := Session{
		Type:        in.Type,
		Description: in.Description,
		DistanceKm:  ParseDistance(in.Distance),
		stored:      &in,
	}
	if in.Pace != "" {
		s.Pace = ParsePace(in.Pace)
	}
	return s
}

// WeeklySchedule maps week number to the sessions of that week.
type WeeklySchedule map[int]map[Weekday]Session

type storedSchedule map[string]map[string]storedSession

// Weeks returns the week numbers present, ascending.
func (w WeeklySchedule) Weeks() []int {
	weeks := make([]int, 0, len(w))
	for wk := range w {
		weeks = append(weeks, wk)
	}
	sort.Ints(weeks)
	return weeks
}

// Clone returns a deep copy.
func (w WeeklySchedule) Clone() WeeklySchedule {
	if w == nil {
		return nil
	}
	out := make(WeeklySchedule, len(w))
	for wk, days := range w {
		cp := make(map[Weekday]Session, len(days))
		for d, s := range days {
			cp[d] = s
		}
		out[wk] = cp
	}
	return out
}

func (w WeeklySchedule) encode() storedSchedule {
	out := make(storedSchedule, len(w))
	for wk, days := range w {
		enc := make(map[string]storedSession, len(days))
		for d, s := range days {
			enc[string(d)] = s.encode()
		}
		out[strconv.Itoa(wk)] = enc
	}
	return out
}

func decodeSchedule(in storedSchedule) (WeeklySchedule, error) {
	out := make(WeeklySchedule, len(in))
	for key, days := range in {
		wk, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("invalid week key %q: %w", key, err)
		}
		dec := make(map[Weekday]Session, len(days))
		for d, s := range days {
			dec[Weekday(strings.ToLower(d))] = decodeSession(s)
		}
		out[wk] = dec
	}
	return out, nil
}

// MarshalBSONValue stores the schedule in its string-encoded form.
func (w WeeklySchedule) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(w.encode())
}

// UnmarshalBSONValue decodes the string-encoded form.
func (w *WeeklySchedule) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		*w = nil
		return nil
	}
	var raw storedSchedule
	if err := bson.UnmarshalValue(t, data, &raw); err != nil {
		return fmt.Errorf("decode weekly schedule: %w", err)
	}
	dec, err := decodeSchedule(raw)
	if err != nil {
		return err
	}
	*w = dec
	return nil
}

// MarshalJSON renders the same encoded form the frontend consumes.
func (w WeeklySchedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.encode())
}

// UnmarshalJSON accepts the encoded form.
func (w *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var raw storedSchedule
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*w = nil
		return nil
	}
	dec, err := decodeSchedule(raw)
	if err != nil {
		return err
	}
	*w = dec
	return nil
}
