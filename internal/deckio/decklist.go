// Package deckio reads and writes plain-text deck lists in the common
// "1 Sol Ring" format with Commander and Deck sections.
package deckio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// Line is one parsed deck list line.
type Line struct {
	Quantity int
	Name     string
}

// DeckList is a parsed plain-text deck list. Names are unresolved;
// the lookup service turns them into cards.
type DeckList struct {
	Name      string
	Commander string
	Entries   []Line
}

// ParseError reports a malformed deck list line.
type ParseError struct {
	LineNumber int
	Line       string
	Reason     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s (%q)", e.LineNumber, e.Reason, e.Line)
}

// Parse reads a deck list. Section headers ("Commander", "Deck",
// "Mainboard") switch where following lines land; without a header,
// lines go to the mainboard. Blank lines and comments are skipped.
// Lines accept "1 Sol Ring", "1x Sol Ring", and a bare card name,
// which means quantity 1.
func Parse(r io.Reader) (DeckList, error) {
	var list DeckList
	section := "deck"

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		switch strings.ToLower(line) {
		case "commander", "commander:":
			section = "commander"
			continue
		case "deck", "deck:", "mainboard", "mainboard:":
			section = "deck"
			continue
		}

		if name, ok := strings.CutPrefix(line, "Name:"); ok {
			list.Name = strings.TrimSpace(name)
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			return DeckList{}, &ParseError{LineNumber: lineNumber, Line: line, Reason: err.Error()}
		}

		if section == "commander" {
			if list.Commander != "" {
				return DeckList{}, &ParseError{
					LineNumber: lineNumber, Line: line,
					Reason: "more than one commander listed",
				}
			}
			list.Commander = entry.Name
			continue
		}
		list.Entries = append(list.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return DeckList{}, fmt.Errorf("read deck list: %w", err)
	}
	return list, nil
}

func parseLine(line string) (Line, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Line{}, fmt.Errorf("empty line")
	}

	qtyToken := strings.TrimSuffix(fields[0], "x")
	qty, err := strconv.Atoi(qtyToken)
	if err != nil {
		// Bare card name, quantity 1.
		return Line{Quantity: 1, Name: line}, nil
	}
	if qty < 1 {
		return Line{}, fmt.Errorf("quantity must be at least 1")
	}

	name := strings.TrimSpace(strings.Join(fields[1:], " "))
	if name == "" {
		return Line{}, fmt.Errorf("missing card name")
	}
	return Line{Quantity: qty, Name: name}, nil
}

// Write exports a deck as a plain-text list, commander section first,
// then the mainboard grouped by category.
func Write(w io.Writer, d deck.Deck) error {
	if d.Name != "" && d.Name != deck.DefaultName {
		if _, err := fmt.Fprintf(w, "Name: %s\n\n", d.Name); err != nil {
			return err
		}
	}

	if d.Commander != nil {
		if _, err := fmt.Fprintf(w, "Commander\n1 %s\n\n", d.Commander.Name); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Deck"); err != nil {
		return err
	}

	groups := deck.GroupByCategory(d)
	for _, category := range deck.Categories {
		entries := groups[category]
		if len(entries) == 0 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Name < entries[j].Name
		})
		if _, err := fmt.Fprintf(w, "# %s\n", category); err != nil {
			return err
		}
		for _, entry := range entries {
			qty := entry.Quantity
			if qty < 1 {
				qty = 1
			}
			if _, err := fmt.Fprintf(w, "%d %s\n", qty, entry.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
