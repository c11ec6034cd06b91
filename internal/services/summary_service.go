package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"fitcoach-api/internal/models"
)

const dateLayout = "2006-01-02"

// Report copy
const (
	greetingLine      = "Hi! Ask me about a member's training or body composition."
	selectMemberLine  = "Select a member first so I can summarize their records."
	noSessionsLine    = "This member has no recorded sessions yet."
	noInbodyTrendLine = "Not enough Inbody measurements for a trend (at least 2 are needed)."
	positiveComment   = "Muscle is up and body fat is down. The program is working, keep it going."
	cautionComment    = "Muscle is down and body fat is up. Review training volume and protein intake."
	neutralComment    = "Changes are mixed or small. Keep the routine steady and monitor over 4–8 weeks."
)

// summaryService implements the SummaryService interface
type summaryService struct {
	location *time.Location
	logger   *logrus.Logger
}

// NewSummaryService creates a summary service rendering dates in loc
func NewSummaryService(loc *time.Location, logger *logrus.Logger) SummaryService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &summaryService{
		location: loc,
		logger:   logger,
	}
}

// sessionStats aggregates one session's sets
type sessionStats struct {
	sets     int
	reps     float64
	volume   float64
	byPart   map[string]float64
	topPart  string
	topValue float64
}

// Summarize implements SummaryService.Summarize
func (s *summaryService) Summarize(ctx context.Context, req *models.SummaryRequest) *models.SummaryResponse {
	if req == nil {
		req = &models.SummaryRequest{}
	}

	var lines []string
	if question := req.Message.String(); question != "" {
		lines = append(lines, "Q: "+question)
	} else {
		lines = append(lines, greetingLine)
	}

	member, ok := findMember(req.Members, req.MemberID.String())
	if !ok {
		lines = append(lines, selectMemberLine)
		return &models.SummaryResponse{Text: strings.Join(lines, "\n")}
	}

	lines = append(lines, fmt.Sprintf("Member: %s", memberLabel(member)))
	lines = append(lines, "")
	lines = append(lines, s.sessionLines(memberSessions(req.Sessions, member.ID.String()))...)
	lines = append(lines, "")
	lines = append(lines, inbodyLines(memberInbody(req.Inbody, member.ID.String()))...)

	s.logger.WithFields(logrus.Fields{
		"member_id": member.ID.String(),
		"sessions":  len(req.Sessions),
		"inbody":    len(req.Inbody),
	}).Debug("Summary rendered")

	return &models.SummaryResponse{Text: strings.Join(lines, "\n")}
}

// sessionLines renders the latest session breakdown and the recent history.
// sessions must already be sorted most recent first.
func (s *summaryService) sessionLines(sessions []models.Session) []string {
	if len(sessions) == 0 {
		return []string{noSessionsLine}
	}

	latest := sessions[0]
	stats := summarizeSession(latest)

	lines := []string{
		fmt.Sprintf("Latest session (%s): %d exercises, %d sets, %s reps, volume %s kg",
			latest.Time(s.location).Format(dateLayout),
			len(latest.Exercises), stats.sets,
			formatQuantity(stats.reps), formatQuantity(stats.volume)),
	}
	if stats.topPart != "" {
		lines = append(lines, fmt.Sprintf("Top body part: %s (%s kg)", stats.topPart, formatQuantity(stats.topValue)))
	}

	recent := sessions
	if len(recent) > models.RecentSessionLimit {
		recent = recent[:models.RecentSessionLimit]
	}

	lines = append(lines, fmt.Sprintf("Recent sessions (last %d):", len(recent)))
	for i, session := range recent {
		lines = append(lines, fmt.Sprintf("%d. %s: %d exercises, volume %s kg",
			i+1, session.Time(s.location).Format(dateLayout),
			len(session.Exercises), formatQuantity(session.Volume())))
	}

	return lines
}

func summarizeSession(session models.Session) sessionStats {
	stats := sessionStats{byPart: make(map[string]float64)}

	for _, ex := range session.Exercises {
		part := ex.BodyPartLabel()
		for _, set := range ex.Sets {
			volume := set.Volume()
			stats.sets++
			stats.reps += set.Reps.Float()
			stats.volume += volume
			stats.byPart[part] += volume
		}
	}

	parts := make([]string, 0, len(stats.byPart))
	for part := range stats.byPart {
		parts = append(parts, part)
	}
	sort.Slice(parts, func(i, j int) bool {
		vi, vj := stats.byPart[parts[i]], stats.byPart[parts[j]]
		if vi != vj {
			return vi > vj
		}
		return parts[i] < parts[j]
	})
	if len(parts) > 0 {
		stats.topPart = parts[0]
		stats.topValue = stats.byPart[parts[0]]
	}

	return stats
}

// inbodyLines compares the first and last measurement. records must already
// be sorted by date ascending.
func inbodyLines(records []models.InbodyRecord) []string {
	if len(records) < models.MinInbodyRecordsForTrend {
		return []string{noInbodyTrendLine}
	}

	first, last := records[0], records[len(records)-1]
	weight := models.RoundTo(last.Weight.Float()-first.Weight.Float(), 1)
	muscle := models.RoundTo(last.Muscle.Float()-first.Muscle.Float(), 1)
	fat := models.RoundTo(last.FatPercent.Float()-first.FatPercent.Float(), 1)

	var comment string
	switch models.ClassifyTrend(muscle, fat) {
	case models.TrendPositive:
		comment = positiveComment
	case models.TrendCaution:
		comment = cautionComment
	default:
		comment = neutralComment
	}

	return []string{
		fmt.Sprintf("Inbody change (%s to %s, %d measurements):", first.Date, last.Date, len(records)),
		fmt.Sprintf("Weight %s kg, muscle %s kg, body fat %s %%", signed(weight), signed(muscle), signed(fat)),
		comment,
	}
}

func findMember(members []models.Member, id string) (models.Member, bool) {
	if id == "" {
		return models.Member{}, false
	}
	for _, m := range members {
		if m.ID.String() == id {
			return m, true
		}
	}
	return models.Member{}, false
}

func memberLabel(m models.Member) string {
	if name := strings.TrimSpace(m.Name.String()); name != "" {
		return fmt.Sprintf("%s (ID %s)", name, m.ID)
	}
	return "ID " + m.ID.String()
}

// memberSessions returns the member's sessions, most recent first
func memberSessions(sessions []models.Session, memberID string) []models.Session {
	out := make([]models.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.MemberID.String() == memberID {
			out = append(out, session)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Millis() > out[j].Millis()
	})
	return out
}

// memberInbody returns the member's measurements ordered by date string
func memberInbody(records []models.InbodyRecord, memberID string) []models.InbodyRecord {
	out := make([]models.InbodyRecord, 0, len(records))
	for _, record := range records {
		if record.MemberID.String() == memberID {
			out = append(out, record)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.String() < out[j].Date.String()
	})
	return out
}

// signed formats a one-decimal delta with an explicit sign; zero is "+0.0"
func signed(v float64) string {
	return fmt.Sprintf("%+.1f", models.RoundTo(finite(v), 1))
}

// formatQuantity renders kg and rep totals with thousands separators
func formatQuantity(v float64) string {
	return humanize.CommafWithDigits(finite(v), 1)
}

// finite maps NaN and ±Inf to zero so overflowed sums never reach the report
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
