package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"mvdan.cc/xurls/v2"
)

const (
	urlPrompt      = "Enter the article URL: "
	fetchFailedMsg = "[ERROR] Failed to retrieve article content."
	summaryBanner  = "===== SUMMARY ====="
)

var urlPattern = xurls.Strict()

type console struct {
	in      *bufio.Reader
	out     io.Writer
	banner  lipgloss.Style
	failure lipgloss.Style
}

func newConsole(in io.Reader, out io.Writer) *console {
	renderer := lipgloss.NewRenderer(out)
	return &console{
		in:  bufio.NewReader(in),
		out: out,
		banner: renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")),
		failure: renderer.NewStyle().
			Foreground(lipgloss.Color("#FF0000")),
	}
}

// promptURL reads one line. The first URL in it wins; otherwise the trimmed line is returned.
func (c *console) promptURL() (string, error) {
	fmt.Fprint(c.out, urlPrompt)

	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return extractURL(line), nil
}

func extractURL(line string) string {
	line = strings.TrimSpace(line)
	if found := urlPattern.FindString(line); found != "" {
		return found
	}
	return line
}

func (c *console) fetchFailed() {
	fmt.Fprintln(c.out, c.failure.Render(fetchFailedMsg))
}

func (c *console) showSummary(summary, path string) {
	fmt.Fprintf(c.out, "\n%s\n\n%s\n\nSummary saved to: %s\n", c.banner.Render(summaryBanner), summary, path)
}
