package services

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach-api/internal/logging"
	"fitcoach-api/internal/models"
)

// 2024-03-01T00:00:00Z
const march1 = 1709251200000

const day = 24 * 60 * 60 * 1000

func decodeSummaryRequest(t *testing.T, body string) *models.SummaryRequest {
	t.Helper()
	var req models.SummaryRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func summarize(t *testing.T, body string) string {
	t.Helper()
	svc := NewSummaryService(time.UTC, logging.Discard())
	return svc.Summarize(context.Background(), decodeSummaryRequest(t, body)).Text
}

func TestSummarize_GreetingAndQuestion(t *testing.T) {
	text := summarize(t, `{}`)
	lines := strings.Split(text, "\n")
	assert.Equal(t, greetingLine, lines[0])
	assert.Equal(t, selectMemberLine, lines[1])
	assert.Len(t, lines, 2)

	text = summarize(t, `{"message":"How is Kim doing?","memberId":"9","members":[{"id":"1"}]}`)
	lines = strings.Split(text, "\n")
	assert.Equal(t, "Q: How is Kim doing?", lines[0])
	assert.Equal(t, selectMemberLine, lines[1])
}

func TestSummarize_NoSessions(t *testing.T) {
	text := summarize(t, `{"memberId":1,"members":[{"id":"1","name":"Kim"}]}`)

	assert.Contains(t, text, "Member: Kim (ID 1)")
	assert.Contains(t, text, "no recorded sessions")
	assert.NotContains(t, text, "volume")
	assert.Contains(t, text, noInbodyTrendLine)
}

func TestSummarize_MissingArraysNeverFail(t *testing.T) {
	svc := NewSummaryService(nil, nil)

	assert.NotPanics(t, func() {
		resp := svc.Summarize(context.Background(), nil)
		assert.Contains(t, resp.Text, selectMemberLine)
	})

	text := summarize(t, `{"memberId":"1","members":[{"id":1}],"sessions":"nope","inbody":{"a":1}}`)
	assert.Contains(t, text, "no recorded sessions")
	assert.Contains(t, text, noInbodyTrendLine)
}

func TestSummarize_LatestSession(t *testing.T) {
	body := `{
		"memberId": "1",
		"members": [{"id": "1", "name": "Kim"}],
		"sessions": [
			{"memberId": "1", "timestamp": ` + itoa(march1) + `, "exercises": [
				{"bodyPart": "back", "sets": [{"weight": 40, "reps": 10}]}
			]},
			{"memberId": "1", "timestamp": "` + itoa(march1+3*day) + `", "exercises": [
				{"bodyPart": "legs", "sets": [{"weight": "100", "reps": "5"}, {"weight": 100, "reps": 5}]},
				{"bodyPart": "chest", "sets": [{"weight": "abc", "reps": "10"}, {"weight": 60, "reps": "x"}, {"weight": 50, "reps": 8}]}
			]}
		]
	}`
	text := summarize(t, body)

	assert.Contains(t, text, "Latest session (2024-03-04): 2 exercises, 5 sets, 28 reps, volume 1,400 kg")
	assert.Contains(t, text, "Top body part: legs (1,000 kg)")
	assert.Contains(t, text, "1. 2024-03-04: 2 exercises, volume 1,400 kg")
	assert.Contains(t, text, "2. 2024-03-01: 1 exercises, volume 400 kg")
}

func TestSummarize_TopBodyPartTieBreaksByName(t *testing.T) {
	body := `{
		"memberId": "1",
		"members": [{"id": "1"}],
		"sessions": [{"memberId": "1", "timestamp": ` + itoa(march1) + `, "exercises": [
			{"bodyPart": "shoulders", "sets": [{"weight": 10, "reps": 10}]},
			{"bodyPart": "arms", "sets": [{"weight": 20, "reps": 5}]},
			{"sets": [{"weight": 1, "reps": 1}]}
		]}]
	}`
	text := summarize(t, body)

	assert.Contains(t, text, "Member: ID 1")
	assert.Contains(t, text, "Top body part: arms (100 kg)")
}

func TestSummarize_RecentSessionsLimitAndOrder(t *testing.T) {
	var sessions []string
	for i := 0; i < 5; i++ {
		sessions = append(sessions, `{"memberId":"1","timestamp":`+itoa(march1+int64(i)*day)+`,"exercises":[]}`)
	}
	sessions = append(sessions, `{"memberId":"2","timestamp":`+itoa(march1+10*day)+`,"exercises":[]}`)

	text := summarize(t, `{"memberId":"1","members":[{"id":"1"}],"sessions":[`+strings.Join(sessions, ",")+`]}`)

	assert.Contains(t, text, "Latest session (2024-03-05)")
	assert.Contains(t, text, "Recent sessions (last 3):")
	assert.Contains(t, text, "1. 2024-03-05")
	assert.Contains(t, text, "2. 2024-03-04")
	assert.Contains(t, text, "3. 2024-03-03")
	assert.NotContains(t, text, "4. ")
	assert.NotContains(t, text, "2024-03-11")
	assert.Less(t, strings.Index(text, "1. 2024-03-05"), strings.Index(text, "2. 2024-03-04"))
}

func TestSummarize_OverflowingInputStaysFinite(t *testing.T) {
	body := `{
		"memberId": "1",
		"members": [{"id": "1"}],
		"sessions": [{"memberId": "1", "timestamp": "1e300", "exercises": [
			{"bodyPart": "legs", "sets": [{"weight": "1e308", "reps": 1}, {"weight": "1e308", "reps": 1}]}
		]}],
		"inbody": [
			{"memberId": "1", "date": "2024-01-01", "weight": "-1e308", "muscle": "30", "fatPercent": "20"},
			{"memberId": "1", "date": "2024-02-01", "weight": "1e308", "muscle": "30", "fatPercent": "20"}
		]
	}`
	text := summarize(t, body)

	assert.NotContains(t, text, "Inf")
	assert.NotContains(t, text, "NaN")
	assert.Contains(t, text, "Latest session (1970-01-01)")
	assert.Contains(t, text, "volume 0 kg")
	assert.Contains(t, text, "Weight +0.0 kg")
}

func TestSummarize_SessionDatesUseLocation(t *testing.T) {
	body := `{"memberId":"1","members":[{"id":"1"}],"sessions":[{"memberId":"1","timestamp":` +
		itoa(march1-60*60*1000) + `}]}`

	utc := NewSummaryService(time.UTC, logging.Discard()).Summarize(context.Background(), decodeSummaryRequest(t, body))
	assert.Contains(t, utc.Text, "Latest session (2024-02-29)")

	kst := NewSummaryService(time.FixedZone("KST", 9*60*60), logging.Discard()).Summarize(context.Background(), decodeSummaryRequest(t, body))
	assert.Contains(t, kst.Text, "Latest session (2024-03-01)")
}

func TestSummarize_InbodyTrend(t *testing.T) {
	tests := []struct {
		name        string
		records     string
		wantDeltas  string
		wantComment string
	}{
		{
			name: "muscle up fat down",
			records: `{"memberId":"1","date":"2024-03-01","weight":"78","muscle":"32","fatPercent":"18"},
				{"memberId":"1","date":"2024-01-01","weight":"80","muscle":"30","fatPercent":"20"}`,
			wantDeltas:  "Weight -2.0 kg, muscle +2.0 kg, body fat -2.0 %",
			wantComment: positiveComment,
		},
		{
			name: "muscle down fat up",
			records: `{"memberId":"1","date":"2024-01-01","weight":80,"muscle":32,"fatPercent":18},
				{"memberId":"1","date":"2024-02-01","weight":81.26,"muscle":31.5,"fatPercent":19.04}`,
			wantDeltas:  "Weight +1.3 kg, muscle -0.5 kg, body fat +1.0 %",
			wantComment: cautionComment,
		},
		{
			name: "unchanged reads as plus zero",
			records: `{"memberId":"1","date":"2024-01-01","weight":"80","muscle":"30","fatPercent":"20"},
				{"memberId":"1","date":"2024-02-01","weight":"80.01","muscle":"29.98","fatPercent":"20"}`,
			wantDeltas:  "Weight +0.0 kg, muscle +0.0 kg, body fat +0.0 %",
			wantComment: neutralComment,
		},
		{
			name: "malformed values count as zero",
			records: `{"memberId":"1","date":"2024-01-01","weight":"80kg","muscle":null,"fatPercent":"20"},
				{"memberId":"1","date":"2024-02-01","weight":"79","muscle":"30","fatPercent":"abc"}`,
			wantDeltas:  "Weight +79.0 kg, muscle +30.0 kg, body fat -20.0 %",
			wantComment: positiveComment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"memberId":"1","members":[{"id":"1"}],"inbody":[` + tt.records +
				`,{"memberId":"2","date":"2023-01-01","weight":"50","muscle":"10","fatPercent":"40"}]}`
			text := summarize(t, body)

			assert.Contains(t, text, tt.wantDeltas)
			assert.Contains(t, text, tt.wantComment)
		})
	}
}

func TestSummarize_SingleInbodyRecord(t *testing.T) {
	text := summarize(t, `{"memberId":"1","members":[{"id":"1"}],"inbody":[{"memberId":"1","date":"2024-01-01","weight":"80"}]}`)
	assert.Contains(t, text, noInbodyTrendLine)
}

func TestSigned(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "+2.0"},
		{-2, "-2.0"},
		{0, "+0.0"},
		{-0.04, "+0.0"},
		{1.25, "+1.3"},
		{math.Inf(1), "+0.0"},
		{math.NaN(), "+0.0"},
	}

	for _, tt := range tests {
		if got := signed(tt.in); got != tt.want {
			t.Errorf("signed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
