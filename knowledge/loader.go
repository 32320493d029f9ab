// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package knowledge

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/poiesic/symptomit/core"
)

// conceptEntry is the on-disk shape of one concept map value.
type conceptEntry struct {
	Synonyms    []string `json:"synonyms"`
	Category    string   `json:"body_system"`
	Description string   `json:"description"`
	Outcomes    []struct {
		Name        string   `json:"name"`
		Prior       *float64 `json:"prior"`
		Suggestions []string `json:"suggestions"`
	} `json:"diseases"`
}

// defaultOutcomePrior applies when a concept map entry omits a prior.
const defaultOutcomePrior = 0.5

// LoadConceptMap reads a JSON concept map file. A missing file is a valid
// empty state, not an error.
func LoadConceptMap(path string) ([]core.Concept, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open concept map: %w", err)
	}
	defer f.Close()
	return ParseConceptMap(f)
}

// ParseConceptMap decodes a concept map: a single JSON object keyed by
// canonical concept label. Keys are decoded in file order so the resulting
// concept list, and therefore match tie-breaking, is deterministic.
func ParseConceptMap(r io.Reader) ([]core.Concept, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedConceptMap, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected top-level object", ErrMalformedConceptMap)
	}

	var concepts []core.Concept
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedConceptMap, err)
		}
		label, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string key", ErrMalformedConceptMap)
		}
		var entry conceptEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %w", ErrMalformedConceptMap, label, err)
		}
		concepts = append(concepts, conceptFromEntry(label, entry))
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedConceptMap, err)
	}
	return concepts, nil
}

func conceptFromEntry(label string, entry conceptEntry) core.Concept {
	concept := core.Concept{
		Id:          core.IDFromContent(strings.ToLower(label)),
		Label:       label,
		Synonyms:    entry.Synonyms,
		Category:    entry.Category,
		Description: entry.Description,
	}
	for _, outcome := range entry.Outcomes {
		prior := defaultOutcomePrior
		if outcome.Prior != nil {
			prior = *outcome.Prior
		}
		concept.Outcomes = append(concept.Outcomes, core.Outcome{
			Name:        outcome.Name,
			Prior:       prior,
			Suggestions: outcome.Suggestions,
		})
	}
	return concept
}

var treatmentSeparator = regexp.MustCompile(`[,;]`)

// LoadCandidatesCSV imports candidate concepts from a CSV export. Header names
// vary between datasets, so the common aliases are all accepted; rows that
// cannot be parsed are skipped rather than aborting the import. A missing file
// is a valid empty state.
func LoadCandidatesCSV(path string) ([]core.Concept, []core.SkippedCandidate, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open candidates csv: %w", err)
	}
	defer f.Close()
	return ParseCandidatesCSV(f)
}

// ParseCandidatesCSV decodes candidate rows. One concept per row: label from
// the disease column, description from the symptoms column, and treatments
// carried as suggestions on a single outcome named after the label.
func ParseCandidatesCSV(r io.Reader) ([]core.Concept, []core.SkippedCandidate, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := indexColumns(header)

	var (
		concepts []core.Concept
		skipped  []core.SkippedCandidate
		row      = 0
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			skipped = append(skipped, core.SkippedCandidate{
				Label:  fmt.Sprintf("row %d", row),
				Reason: err.Error(),
			})
			continue
		}
		label := field(record, columns, "disease")
		if label == "" {
			label = fmt.Sprintf("disease-%d", row-1)
		}
		symptoms := strings.ReplaceAll(field(record, columns, "symptoms"), "|", ", ")
		treatments := field(record, columns, "treatments")

		concept := core.Concept{
			Id:          core.IDFromContent(strings.ToLower(label)),
			Label:       label,
			Description: symptoms,
		}
		if suggestions := splitTreatments(treatments); len(suggestions) > 0 {
			concept.Outcomes = []core.Outcome{{
				Name:        label,
				Prior:       defaultOutcomePrior,
				Suggestions: suggestions,
			}}
		}
		concepts = append(concepts, concept)
	}
	return concepts, skipped, nil
}

// indexColumns maps logical column names to positions, accepting the header
// aliases seen across dataset exports.
func indexColumns(header []string) map[string]int {
	aliases := map[string]string{
		"disease":    "disease",
		"name":       "disease",
		"symptoms":   "symptoms",
		"symptom":    "symptoms",
		"treatments": "treatments",
		"therapy":    "treatments",
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		logical, ok := aliases[key]
		if !ok {
			continue
		}
		if _, taken := columns[logical]; taken {
			continue
		}
		columns[logical] = i
	}
	return columns
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func splitTreatments(treatments string) []string {
	if treatments == "" {
		return nil
	}
	var out []string
	for _, part := range treatmentSeparator.Split(treatments, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
