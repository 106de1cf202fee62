// Package quiz holds the question list and the progress of a single run.
package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when the question index is exhausted.
	ErrOutOfRange = errors.New("question index out of range")
	// ErrNoSelection is returned when submitting without a selected answer.
	ErrNoSelection = errors.New("no answer selected")
	// ErrBadOption is returned when selecting an answer the question does not have.
	ErrBadOption = errors.New("answer option out of range")
)

// Question is a single multiple-choice question.
type Question struct {
	Text    string   `yaml:"question" json:"question"`
	Answers []string `yaml:"answers" json:"answers"`
	Correct int      `yaml:"correct" json:"correct"`
}

// Answer is one submitted attempt.
type Answer struct {
	Question       string `yaml:"question" json:"question"`
	SelectedAnswer string `yaml:"selected_answer" json:"selected_answer"`
	IsCorrect      bool   `yaml:"is_correct" json:"is_correct"`
}

// Quiz tracks progress through a fixed question list.
//
// Index only advances after a correct answer, so each question is solved at
// most once and Solved never exceeds Total.
type Quiz struct {
	questions []Question
	index     int
	solved    int
	selected  int // -1 when nothing is selected
	answers   []Answer
}

// New returns a quiz positioned on the first question.
func New(questions []Question) *Quiz {
	q := &Quiz{questions: questions}
	q.Reset()
	return q
}

// Reset zeroes the index and solved count and clears the answer log.
func (q *Quiz) Reset() {
	q.index = 0
	q.solved = 0
	q.selected = -1
	q.answers = nil
}

// Total is the number of questions.
func (q *Quiz) Total() int { return len(q.questions) }

// Index is the 0-based index of the current question.
func (q *Quiz) Index() int { return q.index }

// Solved is the number of questions answered correctly.
func (q *Quiz) Solved() int { return q.solved }

// Exhausted reports whether every question has been passed.
func (q *Quiz) Exhausted() bool { return q.index >= len(q.questions) }

// Current returns the question at the current index.
func (q *Quiz) Current() (Question, error) {
	if q.index < 0 || q.index >= len(q.questions) {
		return Question{}, fmt.Errorf("question %d of %d: %w", q.index+1, len(q.questions), ErrOutOfRange)
	}
	return q.questions[q.index], nil
}

// Select records the chosen answer for the current question.
func (q *Quiz) Select(option int) error {
	cur, err := q.Current()
	if err != nil {
		return err
	}
	if option < 0 || option >= len(cur.Answers) {
		return fmt.Errorf("option %d of %d: %w", option, len(cur.Answers), ErrBadOption)
	}
	q.selected = option
	return nil
}

// Selected returns the selected option, if any.
func (q *Quiz) Selected() (int, bool) {
	return q.selected, q.selected >= 0
}

// ClearSelection forgets the selected option.
func (q *Quiz) ClearSelection() { q.selected = -1 }

// Submit evaluates the selected answer, appends it to the log and counts the
// question as solved when correct. The index does not move; see Advance.
func (q *Quiz) Submit() (bool, error) {
	cur, err := q.Current()
	if err != nil {
		return false, err
	}
	if q.selected < 0 {
		return false, ErrNoSelection
	}

	correct := q.selected == cur.Correct
	q.answers = append(q.answers, Answer{
		Question:       cur.Text,
		SelectedAnswer: cur.Answers[q.selected],
		IsCorrect:      correct,
	})
	if correct {
		q.solved++
	}
	return correct, nil
}

// Advance moves to the next question.
func (q *Quiz) Advance() { q.index++ }

// IsLast reports whether the current question is the final one.
func (q *Quiz) IsLast() bool { return q.index == len(q.questions)-1 }

// Answers returns a copy of the answer log.
func (q *Quiz) Answers() []Answer {
	out := make([]Answer, len(q.answers))
	copy(out, q.answers)
	return out
}

// RetryCount is the number of incorrect submissions.
func (q *Quiz) RetryCount() int {
	n := 0
	for _, a := range q.answers {
		if !a.IsCorrect {
			n++
		}
	}
	return n
}

// ProgressRatio is how far along the path to the meet point the markers sit
// after `solved` correct answers. Below completion it scales to 90% so the
// final answer covers a visibly larger step.
func ProgressRatio(solved, total int) float64 {
	if solved >= total {
		return 1
	}
	return float64(solved) / float64(total) * 0.9
}
