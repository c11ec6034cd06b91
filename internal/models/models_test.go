package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumericOrZero(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"integer", "80", 80},
		{"decimal", "72.5", 72.5},
		{"negative", "-3", -3},
		{"padded", "  12 ", 12},
		{"empty", "", 0},
		{"letters", "abc", 0},
		{"unit suffix", "12kg", 0},
		{"inbody weight with unit", "80kg", 0},
		{"nan", "NaN", 0},
		{"infinity", "Inf", 0},
		{"overflow", "1e400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumericOrZero(tt.input))
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 2.0, RoundTo(1.96, 1))
	assert.Equal(t, -2.0, RoundTo(-2.04, 1))
	assert.Equal(t, 0.0, RoundTo(-0.04, 1))
	assert.False(t, math.Signbit(RoundTo(-0.04, 1)), "negative zero must be normalized")
}

func TestFlexStringDecoding(t *testing.T) {
	tests := []struct {
		raw  string
		want FlexString
	}{
		{`"m-1"`, "m-1"},
		{`7`, "7"},
		{`7.0`, "7"},
		{`true`, "true"},
		{`null`, ""},
		{`{"a":1}`, ""},
		{`[1,2]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var s FlexString
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestNumericStringAcceptsStringsAndNumbers(t *testing.T) {
	var set SetRecord
	require.NoError(t, json.Unmarshal([]byte(`{"weight":"60","reps":10}`), &set))
	assert.Equal(t, 600.0, set.Volume())

	require.NoError(t, json.Unmarshal([]byte(`{"weight":"abc","reps":"10"}`), &set))
	assert.Equal(t, 0.0, set.Volume())

	require.NoError(t, json.Unmarshal([]byte(`{"weight":{"kg":60},"reps":null}`), &set))
	assert.Equal(t, 0.0, set.Volume())
}

func TestListIsLenient(t *testing.T) {
	t.Run("non-array decodes to empty", func(t *testing.T) {
		var l List[Member]
		require.NoError(t, json.Unmarshal([]byte(`"not a list"`), &l))
		assert.NotNil(t, l)
		assert.Empty(t, l)
	})

	t.Run("bad elements are skipped", func(t *testing.T) {
		var l List[Member]
		require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"name":"Kim"},null,"junk",{"id":"2","name":"Lee"}]`), &l))
		require.Len(t, l, 2)
		assert.Equal(t, FlexString("1"), l[0].ID)
		assert.Equal(t, FlexString("Lee"), l[1].Name)
	})
}

func TestSummaryRequestDecodesDirtyPayload(t *testing.T) {
	body := `{
		"message": 42,
		"memberId": 1,
		"members": {"oops": true},
		"sessions": [{"memberId": "1", "timestamp": "1709251200000", "exercises": "none"}],
		"inbody": null
	}`

	var req SummaryRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, FlexString("42"), req.Message)
	assert.Equal(t, FlexString("1"), req.MemberID)
	assert.Empty(t, req.Members)
	require.Len(t, req.Sessions, 1)
	assert.Empty(t, req.Sessions[0].Exercises)
	assert.Empty(t, req.Inbody)
}

func TestSessionTimeAndVolume(t *testing.T) {
	session := Session{
		Timestamp: "1709251200000",
		Exercises: List[Exercise]{
			{BodyPart: "chest", Sets: List[SetRecord]{{Weight: "60", Reps: "10"}, {Weight: "70", Reps: "8"}}},
			{BodyPart: "", Sets: List[SetRecord]{{Weight: "20", Reps: "abc"}}},
		},
	}

	assert.Equal(t, "2024-03-01", session.Time(time.UTC).Format("2006-01-02"))
	assert.Equal(t, 1160.0, session.Volume())
	assert.Equal(t, UnspecifiedBodyPart, session.Exercises[1].BodyPartLabel())
}

func TestSessionOverflowClampsToZero(t *testing.T) {
	huge := Session{
		Timestamp: "1e300",
		Exercises: List[Exercise]{
			{BodyPart: "legs", Sets: List[SetRecord]{{Weight: "1e308", Reps: "1e308"}, {Weight: "1e308", Reps: "1"}}},
			{BodyPart: "back", Sets: List[SetRecord]{{Weight: "1e308", Reps: "1"}}},
		},
	}

	assert.Zero(t, huge.Exercises[0].Sets[0].Volume())
	assert.Zero(t, huge.Volume())
	assert.False(t, math.IsInf(huge.Exercises[0].Volume(), 0))
	assert.Zero(t, huge.Millis())
	assert.Equal(t, "1970-01-01", huge.Time(time.UTC).Format("2006-01-02"))

	edge := Session{Timestamp: "-8640000000000000"}
	assert.Equal(t, -8.64e15, edge.Millis())
}

func TestClassifyTrend(t *testing.T) {
	assert.Equal(t, TrendPositive, ClassifyTrend(2, -2))
	assert.Equal(t, TrendCaution, ClassifyTrend(-1, 1))
	assert.Equal(t, TrendNeutral, ClassifyTrend(1, 1))
	assert.Equal(t, TrendNeutral, ClassifyTrend(0, -1))
}

func TestChatRequestValidate(t *testing.T) {
	err := (&ChatRequest{}).Validate()
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Message", ve.Field)

	assert.NoError(t, (&ChatRequest{Message: "hi"}).Validate())
}
