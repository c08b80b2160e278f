package source

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ArpaGram is one line of an ARPA `\k-grams:` section.
type ArpaGram struct {
	LogProb   float32
	Tokens    []string
	LogBackoff float32
	HasBackoff bool
}

// ArpaModel is a parsed ARPA file: one gram slice per order, 1-indexed
// conceptually but stored 0-indexed (Orders[0] is unigrams).
type ArpaModel struct {
	Counts []int // ngram k=count lines, Counts[k-1] = count for order k
	Orders [][]ArpaGram
}

// ReadArpa parses the standard ARPA format of spec.md §6: a `\data\`
// header with `ngram k=count` lines, one `\k-grams:` section per order,
// terminated by `\end\`. For building the prob-trie the ARPA must already
// be pre-sorted in suffix order per section; this reader does not sort.
func ReadArpa(r io.Reader) (*ArpaModel, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	model := &ArpaModel{}
	state := "seek-data"

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch state {
		case "seek-data":
			if line == `\data\` {
				state = "counts"
			}
		case "counts":
			if strings.HasPrefix(line, "ngram ") {
				k, count, err := parseNgramCountLine(line)
				if err != nil {
					return nil, err
				}
				for len(model.Counts) < k {
					model.Counts = append(model.Counts, 0)
				}
				model.Counts[k-1] = count
				continue
			}
			if strings.HasSuffix(line, "-grams:") {
				model.Orders = append(model.Orders, nil)
				state = "gram-section"
				continue
			}
		case "gram-section":
			if line == `\end\` {
				state = "done"
				continue
			}
			if strings.HasSuffix(line, "-grams:") {
				model.Orders = append(model.Orders, nil)
				continue
			}
			g, err := parseArpaGramLine(line)
			if err != nil {
				return nil, err
			}
			last := len(model.Orders) - 1
			model.Orders[last] = append(model.Orders[last], g)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("source: reading arpa file: %w", err)
	}
	if state != "done" {
		return nil, fmt.Errorf("source: arpa file missing \\end\\ terminator")
	}
	return model, nil
}

func parseNgramCountLine(line string) (k, count int, err error) {
	rest := strings.TrimPrefix(line, "ngram ")
	parts := strings.SplitN(rest, "=", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("source: malformed ngram count line %q", line)
	}
	k, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("source: invalid order in %q: %w", line, err)
	}
	count, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("source: invalid count in %q: %w", line, err)
	}
	return k, count, nil
}

func parseArpaGramLine(line string) (ArpaGram, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return ArpaGram{}, fmt.Errorf("source: malformed arpa gram line %q", line)
	}
	logProb, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return ArpaGram{}, fmt.Errorf("source: invalid log-prob in %q: %w", line, err)
	}
	g := ArpaGram{LogProb: float32(logProb), Tokens: strings.Fields(fields[1])}
	if len(fields) >= 3 {
		logBackoff, err := strconv.ParseFloat(fields[2], 32)
		if err != nil {
			return ArpaGram{}, fmt.Errorf("source: invalid log-backoff in %q: %w", line, err)
		}
		g.LogBackoff = float32(logBackoff)
		g.HasBackoff = true
	}
	return g, nil
}
