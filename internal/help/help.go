// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// NormalizerInfo contains standardized information about a normalizer
type NormalizerInfo struct {
	Name                string   // Name of the normalizer (e.g., "NAME")
	ShortDescription    string   // Short description for the normalizers list
	DetailedDescription string   // Detailed description of what the normalizer does
	Tiers               []string // Strategies in the order they are tried
	Dialects            []string // Source formats the normalizer recognises
	OutputFields        []string // Fields the normalizer contributes to a record
	Weights             []Weight // Scoring vocabulary, for heuristic normalizers
	Examples            []string // Usage examples
}

// Weight is one row of a scoring vocabulary
type Weight struct {
	Side   string   // Label the terms vote for
	Weight int      // Points added per matching field
	Terms  []string // Field-name terms
}

// Provider defines the interface for help content providers
type Provider interface {
	GetNormalizerInfo() NormalizerInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	out       io.Writer
	colors    map[string]*color.Color
}

// NewSystem creates a new help system writing to stdout
func NewSystem(noColor bool) *System {
	return NewSystemWithWriter(os.Stdout, noColor)
}

// NewSystemWithWriter creates a help system writing to out
func NewSystemWithWriter(out io.Writer, noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		providers: make(map[string]Provider),
		out:       out,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"positive": color.New(color.FgGreen),
			"negative": color.New(color.FgRed),
			"example":  color.New(color.FgMagenta),
		},
	}
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetNormalizerInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// names returns the registered normalizer names in alphabetical order
func (h *System) names() []string {
	var names []string
	for _, provider := range h.providers {
		names = append(names, provider.GetNormalizerInfo().Name)
	}
	sort.Strings(names)
	return names
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Fprintln(h.out, "Sanctions Normalizer - Sanctions List Record Normalization Tool")
	fmt.Fprintln(h.out, "===============================================================")
	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "USAGE:")
	fmt.Fprintln(h.out, "  sanctions-normalizer --file <path-to-file> [options]")
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "OPTIONS:")

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<path>\tInput file, directory or glob to normalize (required)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  --recursive\t\tRecursively walk directories")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: json, yaml, csv, text (default: json)")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --workers\t<n>\tNumber of files and records processed concurrently (default: 4)")
	fmt.Fprintln(w, "  --include-discarded\t\tReport additional addresses and discovery candidates that lost a tie")
	fmt.Fprintln(w, "  --include-raw\t\tInclude each record's flattened source fields in the output")
	fmt.Fprintln(w, "  --verbose\t\tDisplay every extracted section in text output")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of discovery and extraction")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --quiet\t\tSuppress progress output (useful for scripts and CI/CD)")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help normalizers\t\tList all normalizers")
	fmt.Fprintln(w, "  --help <normalizer>\t\tShow detailed help for a specific normalizer")
	w.Flush()

	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "EXAMPLES:")
	fmt.Fprintln(h.out, "  Basic Usage:")
	h.colors["example"].Fprintln(h.out, "    sanctions-normalizer --file sdn.xml")
	h.colors["example"].Fprintln(h.out, "    sanctions-normalizer --file lists/ --recursive --format yaml --output normalized.yaml")
	fmt.Fprintln(h.out, "  Configuration and Profiles:")
	h.colors["example"].Fprintln(h.out, "    sanctions-normalizer --file . --config sanctions-normalizer.yaml --profile audit")
	h.colors["example"].Fprintln(h.out, "    sanctions-normalizer --list-profiles --config sanctions-normalizer.yaml")

	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "SUPPORTED INPUT:")
	fmt.Fprintln(h.out, "  .xml  Any XML list; the repeating record element is discovered automatically")
	fmt.Fprintln(h.out, "  .csv  One record per row, header row gives the field names")

	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "CONFIGURATION:")
	fmt.Fprintln(h.out, "  Project config: sanctions-normalizer.yaml or .sanctions-normalizer.yaml (in current directory)")
	fmt.Fprintln(h.out, "  User config: ~/.sanctions-normalizer/config.yaml")
	fmt.Fprintln(h.out, "  Environment: SANCTIONS_NORMALIZER_CONFIG_DIR - Override config directory")
}

// ShowNormalizersHelp displays information about all normalizers
func (h *System) ShowNormalizersHelp() {
	h.colors["title"].Fprintln(h.out, "Normalizers in Sanctions Normalizer")
	fmt.Fprintln(h.out, "===================================")
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "Every discovered record is passed through each of these normalizers:")
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  NORMALIZER\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  ----------\t-----------")

	names := h.names()
	for _, name := range names {
		info := h.providers[strings.ToLower(name)].GetNormalizerInfo()
		fmt.Fprintf(w, "  ")
		h.colors["emphasis"].Fprintf(w, "%s", info.Name)
		fmt.Fprintf(w, "\t%s\n", info.ShortDescription)
	}
	w.Flush()

	example := "<normalizer>"
	if len(names) > 0 {
		example = names[0]
	}

	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "For detailed information about a specific normalizer, use:")
	h.colors["example"].Fprintf(h.out, "  sanctions-normalizer --help %s\n", example)
}

// ShowNormalizerHelp displays detailed help for a specific normalizer
func (h *System) ShowNormalizerHelp(name string) bool {
	provider, exists := h.providers[strings.ToLower(name)]
	if !exists {
		h.colors["negative"].Fprintf(h.out, "Error: Normalizer '%s' not found.\n", name)
		fmt.Fprintln(h.out, "Use 'sanctions-normalizer --help normalizers' to see a list of normalizers.")
		return false
	}

	info := provider.GetNormalizerInfo()

	h.colors["title"].Fprintf(h.out, "%s Normalizer\n", info.Name)
	fmt.Fprintln(h.out, strings.Repeat("=", len(info.Name)+11))
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, info.DetailedDescription)
	fmt.Fprintln(h.out)

	h.list("TIERS (tried in order):", info.Tiers)
	h.list("SOURCE DIALECTS:", info.Dialects)
	h.list("OUTPUT FIELDS:", info.OutputFields)

	if len(info.Weights) > 0 {
		h.colors["header"].Fprintln(h.out, "SCORING VOCABULARY:")
		for _, wt := range info.Weights {
			fmt.Fprint(h.out, "  - ")
			h.colors["emphasis"].Fprintf(h.out, "%s +%d", wt.Side, wt.Weight)
			fmt.Fprint(h.out, ": ")
			h.colors["positive"].Fprintln(h.out, strings.Join(wt.Terms, ", "))
		}
		fmt.Fprintln(h.out)
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Fprintln(h.out, "EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Fprint(h.out, "  ")
			h.colors["example"].Fprintln(h.out, example)
		}
	}

	return true
}

func (h *System) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	h.colors["header"].Fprintln(h.out, title)
	for _, item := range items {
		fmt.Fprint(h.out, "  - ")
		h.colors["item"].Fprintln(h.out, item)
	}
	fmt.Fprintln(h.out)
}
