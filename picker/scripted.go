package picker

import "errors"

// ErrScriptExhausted is returned by Scripted once every answer is used.
var ErrScriptExhausted = errors.New("picker: no scripted answer left")

// Scripted answers requests from a fixed list, in order. A nil answer
// cancels. Every request it receives is recorded in Requests.
type Scripted struct {
	Answers  [][]int
	Requests []Request
}

// NewScripted creates a Scripted picker with the given answers.
func NewScripted(answers ...[]int) *Scripted {
	return &Scripted{Answers: answers}
}

// PickOne implements Picker using the first index of the next answer.
func (s *Scripted) PickOne(req Request) (int, error) {
	answer, err := s.next(req)
	if err != nil {
		return 0, err
	}
	return answer[0], nil
}

// PickMany implements Picker.
func (s *Scripted) PickMany(req Request) ([]int, error) {
	return s.next(req)
}

func (s *Scripted) next(req Request) ([]int, error) {
	s.Requests = append(s.Requests, req)
	if len(s.Answers) == 0 {
		return nil, ErrScriptExhausted
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	if len(answer) == 0 {
		return nil, ErrCancelled
	}
	return answer, nil
}
