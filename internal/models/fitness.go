package models

import (
	"math"
	"strings"
	"time"
)

// maxTimestampMillis is the largest epoch offset a session may carry, the
// ±100,000,000 day range of an ECMAScript Date
const maxTimestampMillis = 8.64e15

// Member identifies a gym member
type Member struct {
	ID   FlexString `json:"id"`
	Name FlexString `json:"name"`
}

// SetRecord is one resistance-training set
type SetRecord struct {
	Weight NumericString `json:"weight"`
	Reps   NumericString `json:"reps"`
}

// Volume returns weight × reps for the set, zero when the product overflows
func (s SetRecord) Volume() float64 {
	return finiteOrZero(s.Weight.Float() * s.Reps.Float())
}

// Exercise groups the sets performed for one body part
type Exercise struct {
	BodyPart FlexString      `json:"bodyPart"`
	Sets     List[SetRecord] `json:"sets"`
}

// Volume returns the summed volume of all sets
func (e Exercise) Volume() float64 {
	var total float64
	for _, set := range e.Sets {
		total += set.Volume()
	}
	return finiteOrZero(total)
}

// BodyPartLabel returns the trimmed body part, or a placeholder when unset
func (e Exercise) BodyPartLabel() string {
	if part := strings.TrimSpace(e.BodyPart.String()); part != "" {
		return part
	}
	return UnspecifiedBodyPart
}

// Session is one recorded workout. Timestamp is epoch milliseconds.
type Session struct {
	MemberID  FlexString     `json:"memberId"`
	Timestamp NumericString  `json:"timestamp"`
	Exercises List[Exercise] `json:"exercises"`
}

// Millis returns the session timestamp, zero when malformed or out of range
func (s Session) Millis() float64 {
	ms := s.Timestamp.Float()
	if math.Abs(ms) > maxTimestampMillis {
		return 0
	}
	return ms
}

// Time converts the session timestamp to a time in loc
func (s Session) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(int64(s.Millis())).In(loc)
}

// Volume returns the summed volume of every exercise in the session
func (s Session) Volume() float64 {
	var total float64
	for _, ex := range s.Exercises {
		total += ex.Volume()
	}
	return finiteOrZero(total)
}

// InbodyRecord is a body-composition measurement snapshot
type InbodyRecord struct {
	MemberID   FlexString    `json:"memberId"`
	Date       FlexString    `json:"date"`
	Weight     NumericString `json:"weight"`
	Muscle     NumericString `json:"muscle"`
	FatPercent NumericString `json:"fatPercent"`
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
