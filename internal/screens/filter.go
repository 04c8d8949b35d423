package screens

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// pickFilter shows a numbered menu of "All" plus each option and reads one
// selection. A choice returns the normalized value, or nil for "All". Blank
// input, an unknown number or EOF closes the menu without a selection, in
// which case chosen is false and the caller keeps its current value.
func pickFilter(scanner *bufio.Scanner, out io.Writer, title string, options []string) (value *string, chosen bool) {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "  0) All")
	for i, opt := range options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(out, "> ")

	if !scanner.Scan() {
		return nil, false
	}
	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		return nil, false
	}

	idx, err := strconv.Atoi(input)
	if err != nil || idx < 0 || idx > len(options) {
		return nil, false
	}
	if idx == 0 {
		return nil, true
	}

	normalized := normalizeOption(options[idx-1])
	return &normalized, true
}

// normalizeOption maps a display label to its wire value.
func normalizeOption(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}
