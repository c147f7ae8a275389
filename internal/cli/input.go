// Package cli provides an interactive line interface over the dictionary for debugging and testing.
package cli

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	bestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const help = `+words insert      -words delete     ?word  contains
#      size        *      list       ~word  closest
word   best match and close words`

// InputHandler reads commands line by line and applies them to a Lexicon.
type InputHandler struct {
	lex       dictionary.Lexicon
	cfg       config.CliConfig
	threshold int
	in        io.Reader
	out       *log.Logger
}

// NewInputHandler creates a handler reading from in and printing to out.
func NewInputHandler(lex dictionary.Lexicon, cfg config.CliConfig, threshold int, in io.Reader, out *log.Logger) *InputHandler {
	return &InputHandler{
		lex:       lex,
		cfg:       cfg,
		threshold: threshold,
		in:        in,
		out:       out,
	}
}

// Start begins the interface loop. It returns nil once the input is exhausted.
func (h *InputHandler) Start() error {
	h.out.Print("wordtrie CLI")
	h.out.Print(helpStyle.Render(help))

	scanner := bufio.NewScanner(h.in)
	for {
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput runs a single command line.
func (h *InputHandler) handleInput(line string) {
	cmd, word := line[0], line[1:]
	switch cmd {
	case '#':
		h.out.Printf("%s words", utils.FormatWithCommas(h.lex.Size()))
		return
	case '*':
		h.list()
		return
	case '+', '-':
		h.mutate(cmd, utils.SplitFields(word))
		return
	case '?', '~':
	default:
		cmd, word = 0, line
	}

	if err := utils.CheckWord(word, h.cfg.MaxWordLen); err != nil {
		log.Errorf("Rejected input: %v", err)
		return
	}

	start := time.Now()
	switch cmd {
	case '?':
		h.out.Printf("%s: %t", wordStyle.Render(word), h.lex.Contains(word))
	case '~':
		h.closest(word)
	default:
		h.suggest(word)
	}
	h.timing(start)
}

// mutate inserts ('+') or deletes ('-') every word of a batch like "+alpha beta".
func (h *InputHandler) mutate(cmd byte, words []string) {
	start := time.Now()
	for _, word := range words {
		if err := utils.CheckWord(word, h.cfg.MaxWordLen); err != nil {
			log.Errorf("Rejected input: %v", err)
			continue
		}
		if cmd == '+' {
			if err := h.lex.Insert(word); err == nil {
				h.out.Printf("inserted %s", wordStyle.Render(word))
			}
			continue
		}
		if err := h.lex.Delete(word); err == nil {
			h.out.Printf("deleted %s", wordStyle.Render(word))
		}
	}
	h.timing(start)
}

func (h *InputHandler) list() {
	words, err := h.lex.Words()
	if err != nil {
		log.Errorf("Listing words: %v", err)
		return
	}
	if len(words) == 0 {
		h.out.Print("dictionary is empty")
		return
	}
	for i, w := range words {
		h.out.Printf("%3d. %s", i+1, wordStyle.Render(w))
	}
}

func (h *InputHandler) closest(word string) {
	words, err := h.lex.ClosestWithin(word, h.threshold)
	if err != nil {
		log.Errorf("Closest for '%s': %v", word, err)
		return
	}
	h.printClose(word, words)
}

func (h *InputHandler) suggest(word string) {
	s, err := h.lex.Suggest(word, h.threshold)
	if err != nil {
		log.Errorf("Suggest for '%s': %v", word, err)
		return
	}
	if !s.Found {
		log.Warnf("Dictionary is empty, nothing to suggest for '%s'", word)
		return
	}
	h.out.Printf("best: %s (distance %d)", bestStyle.Render(s.Best), s.Distance)
	h.printClose(word, s.Close)
}

func (h *InputHandler) printClose(word string, words []string) {
	if len(words) == 0 {
		h.out.Printf("no words within %d of '%s'", h.threshold, word)
		return
	}
	rendered := make([]string, len(words))
	for i, w := range words {
		rendered[i] = wordStyle.Render(w)
	}
	h.out.Printf("close: %s", strings.Join(rendered, ", "))
}

func (h *InputHandler) timing(start time.Time) {
	if h.cfg.ShowTiming {
		h.out.Printf("took %v", time.Since(start))
	}
}
