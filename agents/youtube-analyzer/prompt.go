package youtubeanalyzer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"youtube-analyzer/agents/youtube-analyzer/youtube"
)

// Prompter asks the questions of the interactive loop.
// Every method returns io.EOF once input is exhausted and ctx.Err() once ctx is done.
type Prompter interface {
	AskURL(ctx context.Context) (string, error)
	AskCommentCount(ctx context.Context, defaultCount int) (int, error)
	Confirm(ctx context.Context, question string, defaultYes bool) (bool, error)
}

type lineResult struct {
	line string
	err  error
}

// LinePrompter reads one answer per line and re-asks until the answer is valid.
// Lines are read by a background goroutine so a pending question can be
// abandoned when the context is cancelled.
type LinePrompter struct {
	in    *bufio.Reader
	out   io.Writer
	start sync.Once
	lines chan lineResult
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan lineResult),
	}
}

func (p *LinePrompter) AskURL(ctx context.Context) (string, error) {
	for {
		answer, err := p.ask(ctx, "Enter YouTube video URL: ")
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.out, ">> Please enter a valid URL")
	}
}

func (p *LinePrompter) AskCommentCount(ctx context.Context, defaultCount int) (int, error) {
	for {
		answer, err := p.ask(ctx, fmt.Sprintf("Maximum number of comments to fetch: (%d) ", defaultCount))
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return defaultCount, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= youtube.MaxCommentResults {
			return n, nil
		}
		fmt.Fprintf(p.out, ">> Please enter a number between 1 and %d\n", youtube.MaxCommentResults)
	}
}

func (p *LinePrompter) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	hint := "(y/N)"
	if defaultYes {
		hint = "(Y/n)"
	}
	for {
		answer, err := p.ask(ctx, fmt.Sprintf("%s %s ", question, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, ">> Please enter y or n")
	}
}

// ask prints the question and waits for the next trimmed answer. A final
// line without a newline still counts as an answer.
func (p *LinePrompter) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.start.Do(func() { go p.readLines() })

	fmt.Fprintf(p.out, "? %s", question)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			return "", io.EOF
		}
		if res.err != nil {
			fmt.Fprintln(p.out)
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

// readLines forwards input lines until the first read error, which is sent
// once before the channel is closed.
func (p *LinePrompter) readLines() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		if line != "" {
			p.lines <- lineResult{line: line}
		}
		if err != nil {
			p.lines <- lineResult{err: err}
			return
		}
	}
}
