package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"questify/internal/likelihood"
	"questify/internal/report"
)

// Prompter drives the interactive terminal dialogue.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Clarify asks the requester to disambiguate their request.
func (p *Prompter) Clarify(ctx context.Context, reason string) (string, error) {
	fmt.Fprintf(p.out, "%s\nPlease clarify: ", reason)
	return p.readLine()
}

var likelihoodPhrasing = map[report.Conclusion]string{
	report.ConclusionYes:   "is probably (=2)",
	report.ConclusionNo:    "is probably NOT (=0)",
	report.ConclusionMaybe: "might be (=1)",
}

// ConfirmLikelihood presents one verdict and returns the raw answer.
func (p *Prompter) ConfirmLikelihood(kind report.Kind, j likelihood.Judgment) (string, error) {
	fmt.Fprintf(p.out, `Since %s,
This report %s of type: %s.
Do you agree with this conclusion? Enter 0=no, 1=maybe, or 2=yes, empty response=agree with whatever I decided.
`, j.Reasoning, likelihoodPhrasing[j.Conclusion], strings.ToUpper(string(kind)))
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer != "" && answer != "0" && answer != "1" && answer != "2" {
		fmt.Fprintln(p.out, "Invalid input. Assuming agreement with the decision.")
	}
	return answer, nil
}

// ConfirmFiles presents the selection and lets the requester remove or
// add entries before proceeding.
func (p *Prompter) ConfirmFiles(files []string) ([]string, error) {
	for {
		fmt.Fprintf(p.out, "\n%d files selected for processing:\n", len(files))
		for i, f := range files {
			fmt.Fprintf(p.out, "  %d. %s\n", i+1, f)
		}
		fmt.Fprintln(p.out, "\nOptions:")
		fmt.Fprintln(p.out, "  [r] followed by numbers - Remove files (e.g., 'r 1 3' removes files 1 and 3)")
		fmt.Fprintln(p.out, "  [a] - Add more files")
		fmt.Fprintln(p.out, "  [Enter] - Proceed with current selection")
		fmt.Fprint(p.out, "Your choice: ")

		choice, err := p.readLine()
		if err != nil {
			return nil, err
		}
		switch {
		case choice == "":
			return files, nil
		case strings.HasPrefix(strings.ToLower(choice), "r"):
			removed, err := removeByNumbers(files, choice)
			if err != nil {
				fmt.Fprintln(p.out, err.Error())
				continue
			}
			files = removed
			if len(files) == 0 {
				fmt.Fprintln(p.out, "All files removed. Please add some files.")
				files, err = p.addFiles(files)
				if err != nil {
					return nil, err
				}
			}
		case strings.EqualFold(choice, "a"):
			files, err = p.addFiles(files)
			if err != nil {
				return nil, err
			}
		default:
			fmt.Fprintln(p.out, "Invalid option. Please use 'r' followed by numbers, 'a', or press Enter.")
		}
	}
}

func (p *Prompter) addFiles(files []string) ([]string, error) {
	fmt.Fprintln(p.out, "Enter file paths one per line; empty line when done.")
	for {
		path, err := p.readLine()
		if err != nil {
			return files, err
		}
		if path == "" {
			return files, nil
		}
		if containsString(files, path) {
			fmt.Fprintf(p.out, "File already selected: %s\n", path)
			continue
		}
		files = append(files, path)
		fmt.Fprintf(p.out, "Added: %s\n", path)
	}
}

// removeByNumbers applies a command like "r 1 3" to the list,
// 1-based and order-insensitive.
func removeByNumbers(files []string, command string) ([]string, error) {
	numbersStr := strings.TrimSpace(command[1:])
	if numbersStr == "" {
		return nil, fmt.Errorf("please specify file numbers to remove (e.g., 'r 1 3')")
	}
	var indices []int
	for _, tok := range strings.Fields(numbersStr) {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > len(files) {
			continue
		}
		indices = append(indices, n-1)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no valid file numbers specified")
	}
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	out := append([]string(nil), files...)
	prev := -1
	for _, i := range indices {
		if i == prev {
			continue
		}
		prev = i
		out = append(out[:i], out[i+1:]...)
	}
	return out, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
