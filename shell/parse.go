package shell

import (
	"fmt"
	"strconv"
	"strings"
)

func parseVec(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out[i] = v
	}
	return out, nil
}

func parseMatrix(s string) ([][]float64, error) {
	if s == "" {
		return nil, nil
	}
	rows := strings.Split(s, ";")
	out := make([][]float64, len(rows))
	for i, r := range rows {
		row, err := parseVec(r)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad id %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = formatFloat(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatMatrix(m [][]float64) string {
	parts := make([]string, len(m))
	for i, row := range m {
		parts[i] = formatVec(row)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
