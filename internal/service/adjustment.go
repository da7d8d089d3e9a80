package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// autoAdjustMinConfidence is the confidence a recommendation needs before
	// it is applied without the runner asking.
	autoAdjustMinConfidence = 80
	// autoAdjustCooldown is the rolling window in which a plan may receive at
	// most one automatic adjustment.
	autoAdjustCooldown = 7 * 24 * time.Hour

	manualIncreaseMultiplier = 1.15
	manualDecreaseMultiplier = 0.85

	// maxSampleChanges caps the per-session changes returned to the runner.
	maxSampleChanges = 8
)

// Session impact tags.
const (
	ImpactHarder    = "harder"
	ImpactEasier    = "easier"
	ImpactUnchanged = "unchanged"
)

// SessionChange describes how one session was rewritten.
type SessionChange struct {
	Week             int            `json:"week"`
	Day              domain.Weekday `json:"day"`
	SessionType      string         `json:"sessionType,omitempty"`
	PreviousDistance string         `json:"previousDistance"`
	NewDistance      string         `json:"newDistance"`
	PreviousPace     string         `json:"previousPace"`
	NewPace          string         `json:"newPace"`
	Impact           string         `json:"impact"`

	distanceDelta float64
}

// SessionVarianceSummary is the runner-facing outcome of a manual adjustment.
type SessionVarianceSummary struct {
	AdjustmentID          string                `json:"adjustmentId"`
	AdjustmentType        domain.AdjustmentType `json:"adjustmentType"`
	Multiplier            string                `json:"multiplier"`
	Title                 string                `json:"title"`
	Description           string                `json:"description"`
	SessionsModified      int                   `json:"sessionsModified"`
	WeeksAffected         int                   `json:"weeksAffected"`
	SampleChanges         []SessionChange       `json:"sampleChanges"`
	AverageDistanceChange string                `json:"averageDistanceChange"`
	NextSteps             string                `json:"nextSteps"`
}

// AutoAdjustDifficulty applies the first high-confidence recommendation as
// an advisory audit record. It returns false when nothing qualifies or the
// plan was adjusted within the cooldown window.
//
// The automatic path records the computed multiplier but does not rewrite
// the weekly schedule; only manual adjustments do. A currentWeek of 0 means
// the plan's current week.
func (s *adaptiveService) AutoAdjustDifficulty(ctx context.Context, userID, planID primitive.ObjectID, currentWeek int) (bool, error) {
	plan, err := loadOwnedPlan(ctx, s.planRepo, userID, planID)
	if err != nil {
		return false, err
	}
	if currentWeek <= 0 {
		currentWeek = plan.CurrentWeek
	}

	metrics, err := s.AnalyzePerformance(ctx, userID, planID, s.windowWeeks)
	if err != nil {
		return false, err
	}

	var qualifying []AdjustmentRecommendation
	for _, rec := range GenerateRecommendations(*metrics) {
		if rec.Confidence >= autoAdjustMinConfidence {
			qualifying = append(qualifying, rec)
		}
	}
	if len(qualifying) == 0 {
		return false, nil
	}

	now := s.now()
	// Read-then-write: two concurrent calls can both pass this check.
	recent, err := s.adjustmentRepo.ExistsSince(ctx, planID, now.Add(-autoAdjustCooldown))
	if err != nil {
		return false, fmt.Errorf("check recent adjustments: %w", err)
	}
	if recent {
		return false, nil
	}

	previous, err := s.currentMultiplier(ctx, planID)
	if err != nil {
		return false, err
	}

	rec := qualifying[0]
	multiplier := AutoMultiplier(rec.Type, *metrics)
	score := PerformanceScore(*metrics)

	adjustment := &domain.TrainingAdjustment{
		UserID:               userID,
		TrainingPlanID:       planID,
		AdjustmentType:       rec.Type,
		Reason:               rec.Reason,
		PreviousValue:        domain.FormatMultiplier(previous),
		NewValue:             domain.FormatMultiplier(multiplier),
		DifficultyMultiplier: domain.FormatMultiplier(multiplier),
		PerformanceScore:     domain.FormatScore(score),
		Automatic:            true,
		WeekNumber:           currentWeek,
		Notes:                fmt.Sprintf("Automatic adjustment (%d%% confidence): %s", rec.Confidence, rec.Suggestion),
		AdjustmentDate:       now,
	}
	if _, err = s.adjustmentRepo.Create(ctx, adjustment); err != nil {
		return false, fmt.Errorf("record automatic adjustment: %w", err)
	}

	log.Printf("INFO: Automatic %s applied to plan %s (multiplier %s, score %s)",
		rec.Type, planID.Hex(), adjustment.DifficultyMultiplier, adjustment.PerformanceScore)
	return true, nil
}

// AutoMultiplier derives the clamped multiplier for an automatic adjustment.
func AutoMultiplier(t domain.AdjustmentType, m PerformanceMetrics) float64 {
	switch t {
	case domain.AdjustmentDifficultyIncrease:
		return math.Min(1.20, 1.0+0.10*(1-m.AverageDifficulty/10))
	case domain.AdjustmentDifficultyDecrease:
		return math.Max(0.80, 1.0-0.10*(m.AverageDifficulty/10))
	case domain.AdjustmentVolumeIncrease:
		return math.Min(1.15, 1.0+0.05*m.ImprovementTrend)
	case domain.AdjustmentVolumeDecrease:
		return math.Max(0.85, 1.0-0.10*(1-m.CompletionRate))
	default:
		return domain.NeutralMultiplier
	}
}

// ManualMultiplier is the fixed step for a runner-requested adjustment.
func ManualMultiplier(t domain.AdjustmentType) float64 {
	switch t {
	case domain.AdjustmentDifficultyIncrease:
		return manualIncreaseMultiplier
	case domain.AdjustmentDifficultyDecrease:
		return manualDecreaseMultiplier
	default:
		return domain.NeutralMultiplier
	}
}

// ApplyManualAdjustment rescales every distance session from the plan's
// current week to its final week, persists the schedule and records the
// adjustment. A weekNumber of 0 records the plan's current week.
func (s *adaptiveService) ApplyManualAdjustment(ctx context.Context, userID, planID primitive.ObjectID, adjustmentType domain.AdjustmentType, weekNumber int) (*SessionVarianceSummary, error) {
	plan, err := loadOwnedPlan(ctx, s.planRepo, userID, planID)
	if err != nil {
		return nil, err
	}
	if weekNumber <= 0 {
		weekNumber = plan.CurrentWeek
	}

	previous, err := s.currentMultiplier(ctx, planID)
	if err != nil {
		return nil, err
	}

	multiplier := ManualMultiplier(adjustmentType)
	before := plan.WeeklySchedule.Clone()
	lastWeek := plan.DurationWeeks
	if weeks := plan.WeeklySchedule.Weeks(); lastWeek <= 0 && len(weeks) > 0 {
		lastWeek = weeks[len(weeks)-1]
	}
	changes := RescaleSchedule(plan.WeeklySchedule, plan.StartingWeek(), lastWeek, multiplier)

	if err = s.planRepo.UpdateWeeklySchedule(ctx, planID, plan.WeeklySchedule); err != nil {
		return nil, fmt.Errorf("save weekly schedule: %w", err)
	}
	snapshotKey := s.archiveSchedule(ctx, planID, before)

	weeks := weeksAffected(changes)
	adjustment := &domain.TrainingAdjustment{
		UserID:               userID,
		TrainingPlanID:       planID,
		AdjustmentType:       adjustmentType,
		Reason:               domain.ReasonUserRequest,
		PreviousValue:        domain.FormatMultiplier(previous),
		NewValue:             domain.FormatMultiplier(multiplier),
		DifficultyMultiplier: domain.FormatMultiplier(multiplier),
		// No metrics are computed for a manual request.
		PerformanceScore: domain.FormatScore(1.0),
		Automatic:        false,
		WeekNumber:       weekNumber,
		Notes:            fmt.Sprintf("Manual %s: %d sessions across %d weeks adjusted", adjustmentType, len(changes), weeks),
		SnapshotKey:      snapshotKey,
		AdjustmentDate:   s.now(),
	}
	adjustmentID, err := s.adjustmentRepo.Create(ctx, adjustment)
	if err != nil {
		return nil, fmt.Errorf("record manual adjustment: %w", err)
	}

	log.Printf("INFO: Manual %s applied to plan %s: %d sessions in %d weeks", adjustmentType, planID.Hex(), len(changes), weeks)

	summary := summarizeChanges(adjustmentType, multiplier, changes)
	summary.AdjustmentID = adjustmentID.Hex()
	return summary, nil
}

// archiveSchedule uploads the pre-adjustment schedule when snapshot storage
// is configured. Failures are logged and yield an empty key.
func (s *adaptiveService) archiveSchedule(ctx context.Context, planID primitive.ObjectID, schedule domain.WeeklySchedule) string {
	if s.snapshots == nil {
		return ""
	}
	body, err := json.Marshal(schedule)
	if err != nil {
		log.Printf("WARN: Failed to encode schedule snapshot for plan %s: %v", planID.Hex(), err)
		return ""
	}
	key := storage.SnapshotKey(planID)
	if err = s.snapshots.PutObject(ctx, key, "application/json", body); err != nil {
		log.Printf("WARN: Failed to archive schedule snapshot for plan %s: %v", planID.Hex(), err)
		return ""
	}
	return key
}

// RescaleSchedule applies multiplier to every distance session in weeks
// fromWeek..toWeek, mutating schedule in place. Sessions without a positive
// distance are left alone and produce no change entry.
func RescaleSchedule(schedule domain.WeeklySchedule, fromWeek, toWeek int, multiplier float64) []SessionChange {
	impact := ImpactUnchanged
	switch {
	case multiplier > 1:
		impact = ImpactHarder
	case multiplier < 1:
		impact = ImpactEasier
	}

	var changes []SessionChange
	for week := fromWeek; week <= toWeek; week++ {
		days, ok := schedule[week]
		if !ok {
			continue
		}
		for _, day := range orderedDays(days) {
			session := days[day]
			if !session.HasDistance() {
				continue
			}
			change := SessionChange{
				Week:             week,
				Day:              day,
				SessionType:      session.Type,
				PreviousDistance: session.DistanceString(),
				PreviousPace:     session.PaceString(),
				Impact:           impact,
			}
			if change.PreviousPace == "" {
				change.PreviousPace = domain.FormatPace(session.EffectivePace())
			}
			oldKm := session.DistanceKm
			session.Scale(multiplier)
			change.NewDistance = session.DistanceString()
			change.NewPace = session.PaceString()
			change.distanceDelta = session.DistanceKm - oldKm
			days[day] = session
			changes = append(changes, change)
		}
	}
	return changes
}

// orderedDays returns the day keys Monday first; unknown keys sort last.
func orderedDays(days map[domain.Weekday]domain.Session) []domain.Weekday {
	rank := func(d domain.Weekday) int {
		for i, known := range domain.DaysOfWeek {
			if d == known {
				return i
			}
		}
		return len(domain.DaysOfWeek)
	}
	out := make([]domain.Weekday, 0, len(days))
	for d := range days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

func weeksAffected(changes []SessionChange) int {
	seen := make(map[int]struct{})
	for _, c := range changes {
		seen[c.Week] = struct{}{}
	}
	return len(seen)
}

func summarizeChanges(t domain.AdjustmentType, multiplier float64, changes []SessionChange) *SessionVarianceSummary {
	percent := int(math.Round(math.Abs(multiplier-1) * 100))
	summary := &SessionVarianceSummary{
		AdjustmentType:   t,
		Multiplier:       domain.FormatMultiplier(multiplier),
		SessionsModified: len(changes),
		WeeksAffected:    weeksAffected(changes),
		SampleChanges:    changes,
	}
	if len(summary.SampleChanges) > maxSampleChanges {
		summary.SampleChanges = summary.SampleChanges[:maxSampleChanges]
	}
	if summary.SampleChanges == nil {
		summary.SampleChanges = []SessionChange{}
	}

	switch {
	case multiplier > 1:
		summary.Title = "Training Intensity Increased"
		summary.Description = fmt.Sprintf("Your upcoming sessions are now %d%% longer with faster target paces.", percent)
		summary.NextSteps = "Prioritise sleep and easy days between harder sessions, and keep logging feedback so the plan can keep adapting."
	case multiplier < 1:
		summary.Title = "Training Intensity Reduced"
		summary.Description = fmt.Sprintf("Your upcoming sessions are now %d%% shorter with easier target paces.", percent)
		summary.NextSteps = "Use the lighter load to rebuild consistency. The plan will scale back up as your feedback improves."
	default:
		summary.Title = "Training Plan Maintained"
		summary.Description = "Your schedule was reviewed and kept at its current intensity."
		summary.NextSteps = "Keep logging feedback after each run so your plan can be fine-tuned."
	}

	if len(changes) == 0 {
		summary.AverageDistanceChange = "No distance sessions were changed."
		return summary
	}
	var total float64
	for _, c := range changes {
		total += c.distanceDelta
	}
	avg := domain.RoundDistance(total / float64(len(changes)))
	sign := "+"
	if avg < 0 {
		sign = "-"
	}
	summary.AverageDistanceChange = fmt.Sprintf("Average distance change: %s%skm per session", sign, formatKm(math.Abs(avg)))
	return summary
}

func formatKm(km float64) string {
	s := domain.FormatDistance(km)
	return s[:len(s)-len("km")]
}
