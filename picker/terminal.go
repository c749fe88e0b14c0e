package picker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Terminal asks questions as numbered menus and reads answers line by line.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	headerStyle *color.Color
	numberStyle *color.Color
	errorStyle  *color.Color
}

// NewTerminal creates a Terminal reading answers from in and writing menus
// to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:          bufio.NewReader(in),
		out:         out,
		headerStyle: color.New(color.FgCyan, color.Bold),
		numberStyle: color.New(color.Bold),
		errorStyle:  color.New(color.FgRed),
	}
}

// PickOne implements Picker. An empty answer or end of input cancels.
func (t *Terminal) PickOne(req Request) (int, error) {
	if len(req.Labels) == 0 {
		return 0, ErrCancelled
	}
	t.render(req)
	prompt := req.Prompt
	if prompt == "" {
		prompt = fmt.Sprintf("Select [1-%d]", len(req.Labels))
	}
	for {
		answer, err := t.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(req.Labels) {
			return n - 1, nil
		}
		t.errorStyle.Fprintf(t.out, "Invalid choice %q. Enter a number between 1 and %d.\n", answer, len(req.Labels))
	}
}

// PickMany implements Picker. Answers are numbers, ranges such as "2-4" or
// "all", separated by commas or spaces. An empty answer or end of input
// cancels.
func (t *Terminal) PickMany(req Request) ([]int, error) {
	if len(req.Labels) == 0 {
		return nil, ErrCancelled
	}
	t.render(req)
	prompt := req.Prompt
	if prompt == "" {
		prompt = fmt.Sprintf("Select [1-%d, ranges like 1-3, or all]", len(req.Labels))
	}
	for {
		answer, err := t.ask(prompt)
		if err != nil {
			return nil, err
		}
		picked, parseErr := ParseSelection(answer, len(req.Labels))
		if parseErr == nil {
			return picked, nil
		}
		t.errorStyle.Fprintf(t.out, "Invalid choice: %v\n", parseErr)
	}
}

// ask prints the prompt and returns the trimmed answer. Blank answers and
// end of input turn into ErrCancelled.
func (t *Terminal) ask(prompt string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("picker: read answer: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
		}
		return "", ErrCancelled
	}
	return answer, nil
}

func (t *Terminal) render(req Request) {
	if req.Header != "" {
		t.headerStyle.Fprintln(t.out, req.Header)
	}
	for i, label := range req.Labels {
		t.numberStyle.Fprintf(t.out, "%3d) ", i+1)
		fmt.Fprintln(t.out, label)
	}
}

// ParseSelection turns a multi-select answer into zero-based indices for a
// menu of n options. Duplicates are dropped, keeping the first occurrence.
func ParseSelection(answer string, n int) ([]int, error) {
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, ErrCancelled
	}

	seen := make(map[int]bool, n)
	var picked []int
	add := func(i int) {
		if !seen[i] {
			seen[i] = true
			picked = append(picked, i)
		}
	}

	for _, field := range fields {
		if strings.EqualFold(field, "all") || strings.EqualFold(field, "a") {
			for i := 0; i < n; i++ {
				add(i)
			}
			continue
		}
		lo, hi, isRange := strings.Cut(field, "-")
		if !isRange {
			hi = lo
		}
		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", field)
		}
		to, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", field)
		}
		if from < 1 || to > n || from > to {
			return nil, fmt.Errorf("%q is outside 1-%d", field, n)
		}
		for i := from; i <= to; i++ {
			add(i - 1)
		}
	}
	return picked, nil
}
