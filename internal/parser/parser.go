package parser

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/August26/ipintel-go/internal/model"
)

// LoadFromFile reads a target list line by line. Each line is either
// an address alone or an address plus per-line query flags:
//   185.94.111.1
//   185.94.111.1 m
//
// Empty lines and lines starting with '#' are ignored. Lines that do
// not parse are skipped.
func LoadFromFile(path string) ([]model.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	var out []model.Target
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		t, err := parseTargetLine(line)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan input file: %w", err)
	}
	return out, nil
}

// parseTargetLine parses a single line into a Target. Addresses may
// use dotted, colon or dash separated notation; normalization happens
// at query time, so the address is kept as written.
func parseTargetLine(line string) (model.Target, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return model.Target{IP: fields[0], Raw: line}, nil
	case 2:
		return model.Target{IP: fields[0], Flags: fields[1], Raw: line}, nil
	default:
		return model.Target{}, fmt.Errorf("unrecognized target line: %q", line)
	}
}
