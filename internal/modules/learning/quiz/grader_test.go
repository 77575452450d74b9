package quiz

import (
	"testing"

	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
)

func keys(correct ...int) []Question {
	out := make([]Question, len(correct))
	for i, c := range correct {
		out[i] = Question{CorrectIndex: c, OptionCount: 4, Explanation: "because"}
	}
	return out
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name         string
		answers      []int
		questions    []Question
		passingScore int
		wantScore    int
		wantPassed   bool
	}{
		{"all correct", []int{0, 1, 2}, keys(0, 1, 2), 70, 100, true},
		{"none correct", []int{1, 2, 3}, keys(0, 1, 2), 70, 0, false},
		{"two of three rounds up", []int{0, 1, 0}, keys(0, 1, 2), 70, 67, false},
		{"one of three", []int{0, 0, 0}, keys(0, 1, 2), 30, 33, true},
		{"exactly at threshold", []int{0, 1, 2, 3, 0, 0, 0, 0, 0, 0}, keys(0, 1, 2, 3, 0, 0, 0, 1, 1, 1), 70, 70, true},
		{"default threshold", []int{0, 1, 3}, keys(0, 1, 2), 0, 67, false},
		{"half rounds up", []int{0, 3}, keys(0, 1), 50, 50, true},
		{"out of range counts wrong", []int{7, -1}, keys(0, 1), 70, 0, false},
		{"sixty fails at seventy", []int{0, 0, 0, 1, 1}, keys(0, 0, 0, 0, 0), 70, 60, false},
		{"eighty passes at seventy", []int{0, 0, 0, 0, 1}, keys(0, 0, 0, 0, 0), 70, 80, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			res, err := Grade(tc.answers, tc.questions, tc.passingScore)
			if err != nil {
				t.Fatalf("Grade: %v", err)
			}
			if res.Score != tc.wantScore || res.Passed != tc.wantPassed {
				t.Fatalf("got score=%d passed=%v, want score=%d passed=%v", res.Score, res.Passed, tc.wantScore, tc.wantPassed)
			}
			if len(res.Feedback) != len(tc.questions) {
				t.Fatalf("feedback entries: got %d want %d", len(res.Feedback), len(tc.questions))
			}
		})
	}
}

func TestGradeFeedback(t *testing.T) {
	res, err := Grade([]int{2, 1}, keys(2, 3), 70)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.Feedback[0].Correct || res.Feedback[1].Correct {
		t.Fatalf("unexpected correctness: %+v", res.Feedback)
	}
	if res.Feedback[1].Selected != 1 || res.Feedback[1].CorrectIndex != 3 || res.Feedback[1].QuestionIndex != 1 {
		t.Fatalf("unexpected feedback: %+v", res.Feedback[1])
	}
	if res.CorrectCount != 1 || res.Total != 2 || res.PassingScore != 70 {
		t.Fatalf("unexpected totals: %+v", res)
	}
}

func TestGradeRejectsLengthMismatch(t *testing.T) {
	_, err := Grade([]int{0}, keys(0, 1), 70)
	if !apierr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = Grade([]int{0, 1, 2}, keys(0, 1), 70)
	if !apierr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGradeRejectsEmptyQuiz(t *testing.T) {
	_, err := Grade(nil, nil, 70)
	if !apierr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
