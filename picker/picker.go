// Package picker asks an operator to choose among labeled options.
//
// The Picker interface is deliberately small so that code taking decisions
// can be driven by a live terminal in production and by scripted answers in
// tests.
package picker

import (
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned when the operator makes no selection.
	ErrCancelled = errors.New("picker: no selection made")

	// ErrNoTerminal is returned when a choice is needed but nobody can be
	// asked because standard input is not a terminal.
	ErrNoTerminal = errors.New("picker: standard input is not a terminal")
)

// Request describes one question put to the operator.
type Request struct {
	// Header is shown above the options.
	Header string
	// Prompt is shown next to the input cursor; a default is used when empty.
	Prompt string
	// Labels are the options, in display order.
	Labels []string
}

// Picker returns the positions of the chosen labels.
type Picker interface {
	// PickOne returns exactly one index into req.Labels.
	PickOne(req Request) (int, error)
	// PickMany returns a non-empty list of distinct indices into req.Labels.
	PickMany(req Request) ([]int, error)
}

// Choice pairs a label with the value it stands for.
type Choice[T any] struct {
	Label string
	Value T
}

// One asks p for a single choice and returns its value.
func One[T any](p Picker, header, prompt string, choices []Choice[T]) (T, error) {
	var zero T
	if len(choices) == 0 {
		return zero, ErrCancelled
	}
	idx, err := p.PickOne(Request{Header: header, Prompt: prompt, Labels: labels(choices)})
	if err != nil {
		return zero, err
	}
	if idx < 0 || idx >= len(choices) {
		return zero, fmt.Errorf("picker: choice %d out of range", idx)
	}
	return choices[idx].Value, nil
}

// Many asks p for one or more choices and returns their values in the order
// they were picked.
func Many[T any](p Picker, header, prompt string, choices []Choice[T]) ([]T, error) {
	if len(choices) == 0 {
		return nil, ErrCancelled
	}
	picked, err := p.PickMany(Request{Header: header, Prompt: prompt, Labels: labels(choices)})
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, ErrCancelled
	}
	values := make([]T, 0, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(choices) {
			return nil, fmt.Errorf("picker: choice %d out of range", idx)
		}
		values = append(values, choices[idx].Value)
	}
	return values, nil
}

func labels[T any](choices []Choice[T]) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Label
	}
	return out
}

// Unavailable refuses every request with ErrNoTerminal.
type Unavailable struct{}

// PickOne implements Picker.
func (Unavailable) PickOne(Request) (int, error) { return 0, ErrNoTerminal }

// PickMany implements Picker.
func (Unavailable) PickMany(Request) ([]int, error) { return nil, ErrNoTerminal }
