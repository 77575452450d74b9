// Package quiz scores quiz submissions against an answer key.
package quiz

import (
	"fmt"
	"strconv"

	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
)

const DefaultPassingScore = 70

type Question struct {
	CorrectIndex int
	OptionCount  int
	Explanation  string
}

type Feedback struct {
	QuestionIndex int    `json:"question_index"`
	Selected      int    `json:"selected"`
	Correct       bool   `json:"correct"`
	CorrectIndex  int    `json:"correct_index"`
	Explanation   string `json:"explanation,omitempty"`
}

type Result struct {
	Score        int        `json:"score"`
	Passed       bool       `json:"passed"`
	PassingScore int        `json:"passing_score"`
	CorrectCount int        `json:"correct_count"`
	Total        int        `json:"total"`
	Feedback     []Feedback `json:"feedback"`
}

// Grade requires exactly one answer per question. A selection outside the
// option range (when OptionCount is known) or negative counts as incorrect.
func Grade(answers []int, questions []Question, passingScore int) (Result, error) {
	if len(questions) == 0 {
		return Result{}, apierr.Validation("quiz_empty", fmt.Errorf("quiz has no questions"), nil)
	}
	if len(answers) != len(questions) {
		return Result{}, apierr.Validation("answers_length_mismatch",
			fmt.Errorf("expected %d answers, got %d", len(questions), len(answers)),
			map[string]string{
				"answers": "expected " + strconv.Itoa(len(questions)) + " answers",
			})
	}
	if passingScore <= 0 {
		passingScore = DefaultPassingScore
	}

	res := Result{
		PassingScore: passingScore,
		Total:        len(questions),
		Feedback:     make([]Feedback, 0, len(questions)),
	}
	for i, q := range questions {
		sel := answers[i]
		ok := sel >= 0 && (q.OptionCount <= 0 || sel < q.OptionCount) && sel == q.CorrectIndex
		if ok {
			res.CorrectCount++
		}
		res.Feedback = append(res.Feedback, Feedback{
			QuestionIndex: i,
			Selected:      sel,
			Correct:       ok,
			CorrectIndex:  q.CorrectIndex,
			Explanation:   q.Explanation,
		})
	}
	res.Score = roundPercent(res.CorrectCount, res.Total)
	res.Passed = res.Score >= passingScore
	return res, nil
}

// roundPercent is round(100*k/n) with halves rounded up.
func roundPercent(k, n int) int {
	if n <= 0 {
		return 0
	}
	return (200*k + n) / (2 * n)
}
