package services

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

const motivationPrompt = "Generate a single, short, powerful motivational quote for a gamified habit tracking app called 'Habit Quest'. " +
	"Use heroic, fantasy, or adventure-themed metaphors (e.g., quests, dungeons, levels, armor, dragons). Keep it under 20 words."

const (
	MotivationEmpty    = "Your quest awaits. Every step counts toward greatness."
	MotivationFallback = "The hardest step is the one that takes you across the threshold. Begin your quest today."
)

// NoHabitsInsight is served without calling the generator.
var NoHabitsInsight = domain.DailyInsight{
	Tip:   "Initiate your first protocol to begin.",
	Quote: "The best time to plant a tree was 20 years ago. The second best time is now.",
	Focus: "System Initialization",
}

var DailyInsightFallback = domain.DailyInsight{
	Tip:   "Complete your smallest protocol first to build momentum for the rest.",
	Quote: "Every level is earned one step at a time.",
	Focus: "Consistency",
}

var DeepAnalysisFallback = domain.DeepAnalysis{
	Patterns:       []string{"Pattern recognition is offline. Your logs are safe and will be analyzed next cycle."},
	StreakBreaks:   "Unavailable",
	ProductiveTime: "Unavailable",
	RiskyDays:      "Unavailable",
	LikelyReasons:  []string{},
	Suggestions:    []string{"Keep logging completions daily so the next analysis has more signal."},
}

var CoachFallback = domain.CoachReply{
	Response:   "The coach is recalibrating. Your effort today still counts.",
	Suggestion: "Pick the smallest habit on your list and complete it now.",
}

func stringSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func stringArraySchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: stringSchema()}
}

func verdictArraySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": stringSchema(),
				"why":  stringSchema(),
			},
			Required: []string{"name", "why"},
		},
	}
}

var dailyInsightSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"quote": stringSchema(),
		"focus": stringSchema(),
		"tip":   stringSchema(),
	},
	Required: []string{"quote", "focus", "tip"},
}

var deepAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"patterns":       stringArraySchema(),
		"streakBreaks":   stringSchema(),
		"productiveTime": stringSchema(),
		"riskyDays":      stringSchema(),
		"likelyReasons":  stringArraySchema(),
		"suggestions":    stringArraySchema(),
	},
	Required: []string{"patterns", "streakBreaks", "productiveTime", "riskyDays", "likelyReasons", "suggestions"},
}

var weeklyReportSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"strongestHabits":       verdictArraySchema(),
		"weakestHabits":         verdictArraySchema(),
		"trendChanges":          stringSchema(),
		"consistencyPercentage": {Type: genai.TypeNumber},
		"motivationAnalysis":    stringSchema(),
		"summary":               stringSchema(),
	},
	Required: []string{"strongestHabits", "weakestHabits", "trendChanges", "consistencyPercentage", "motivationAnalysis", "summary"},
}

var coachSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"response":   stringSchema(),
		"suggestion": stringSchema(),
	},
	Required: []string{"response", "suggestion"},
}

func habitNames(habits []*domain.Habit) string {
	names := make([]string, 0, len(habits))
	for _, h := range habits {
		names = append(names, h.Name)
	}
	return strings.Join(names, ", ")
}

func dailyInsightPrompt(habits []*domain.Habit) string {
	return fmt.Sprintf("You are a futuristic AI habit coach called 'HabitQuest Core'. Based on these active protocols (habits): %s. "+
		"Provide a short motivational quote (sci-fi themed), a specific focus directive for the day, and a quick tip for improvement.",
		habitNames(habits))
}

func deepAnalysisPrompt(summary string) string {
	return fmt.Sprintf(`Analyze this habit tracking data for pattern recognition: %s.
Identify:
1. Major patterns (e.g., morning vs evening consistency).
2. Key streak break triggers.
3. Most productive time of day (based on 't' timestamps).
4. Most risky days of the week.
5. Likely reasons for missed habits.
6. Provide exactly 5 personalized high-impact improvement suggestions.`, summary)
}

func weeklyReportPrompt(weeklyLogs string, habits []*domain.Habit) string {
	return fmt.Sprintf(`Generate a highly detailed weekly progress report based on this 7-day data: %s.
Habits being tracked: %s.
Include:
- strongestHabits: An array of objects with "name" and "why" (highest completion).
- weakestHabits: An array of objects with "name" and "why" (lowest completion).
- trendChanges: A descriptive string identifying if consistency is increasing or decreasing and why.
- consistencyPercentage: A number from 0-100 representing overall success.
- motivationAnalysis: A paragraph analyzing the psychological/emotional drive based on completion patterns.
- summary: A punchy one-sentence executive summary.`, weeklyLogs, habitNames(habits))
}

func coachPrompt(completed, tracked []*domain.Habit, obstacles, mood string) string {
	done := habitNames(completed)
	if done == "" {
		done = "nothing yet"
	}
	if strings.TrimSpace(obstacles) == "" {
		obstacles = "none reported"
	}
	if strings.TrimSpace(mood) == "" {
		mood = "unspecified"
	}
	return fmt.Sprintf("You are 'HabitQuest Core', a supportive AI habit coach running a daily check-in. "+
		"Protocols tracked: %s. Completed today: %s. Obstacles: %s. Mood: %s. "+
		"Reply with a short empathetic response and one concrete suggestion for tomorrow.",
		habitNames(tracked), done, obstacles, mood)
}

func validDailyInsight(d domain.DailyInsight) bool {
	return d.Quote != "" && d.Focus != "" && d.Tip != ""
}

func validDeepAnalysis(d domain.DeepAnalysis) bool {
	return len(d.Patterns) > 0 && len(d.Suggestions) > 0
}

func validWeeklyReport(r domain.WeeklyReport) bool {
	return r.Summary != "" && r.ConsistencyPercentage >= 0 && r.ConsistencyPercentage <= 100
}

func validCoachReply(r domain.CoachReply) bool {
	return r.Response != "" && r.Suggestion != ""
}
