package main

import (
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/hupe1980/johari/classify"
)

const notApplicable = "N/A"

func joinCounts(cs []classify.Count) string {
	if len(cs) == 0 {
		return notApplicable
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return notApplicable
	}
	return strings.Join(names, ", ")
}

func renderText(w io.Writer, kind string, res classify.Result) {
	fmt.Fprintf(w, "%s window for %s (%d peer submissions from %d assessors)\n",
		strings.ToUpper(kind[:1])+kind[1:], res.Subject, res.Submissions, res.Assessors)
	fmt.Fprintf(w, "%-8s %s\n", "Arena:", joinCounts(res.Arena))
	fmt.Fprintf(w, "%-8s %s\n", "Blind:", joinCounts(res.Blind))
	fmt.Fprintf(w, "%-8s %s\n", "Facade:", joinNames(res.Facade))
	fmt.Fprintf(w, "%-8s %s\n", "Unknown:", joinNames(res.Unknown))
}

type jsonResult struct {
	Kind string `json:"kind"`
	classify.Result
}

func renderJSON(w io.Writer, kind string, res classify.Result) error {
	if res.Arena == nil {
		res.Arena = []classify.Count{}
	}
	if res.Blind == nil {
		res.Blind = []classify.Count{}
	}
	if res.Facade == nil {
		res.Facade = []string{}
	}
	if res.Unknown == nil {
		res.Unknown = []string{}
	}
	data, err := gojson.MarshalIndent(jsonResult{Kind: kind, Result: res}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
