// Package catalog reads objective catalogs: YAML or JSON documents holding the
// objectives to sequence and, optionally, the learner profile to personalize
// for.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/lattice-paths/internal/objective"
)

// DefaultCatalogDir is the conventional location of catalog files.
const DefaultCatalogDir = "catalogs"

// ErrEmptyDocument is returned when a catalog payload holds no data at all.
var ErrEmptyDocument = errors.New("catalog: document is empty")

var validate = validator.New()

// Document is one catalog file.
type Document struct {
	ID          string                `json:"id" yaml:"id"`
	Name        string                `json:"name,omitempty" yaml:"name,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Objectives  []objective.Objective `json:"objectives" yaml:"objectives"`
	Profile     *objective.Profile    `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// Clone returns a deep copy of the document.
func (doc Document) Clone() Document {
	clone := Document{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
	}
	if len(doc.Objectives) > 0 {
		clone.Objectives = make([]objective.Objective, len(doc.Objectives))
		for i, o := range doc.Objectives {
			clone.Objectives[i] = o.Clone()
		}
	}
	if doc.Profile != nil {
		p := doc.Profile.Clone()
		clone.Profile = &p
	}
	return clone
}

// Validate checks the document shape. Problems inside individual objectives
// (duplicate ids, cycles, out-of-range levels) are not errors here; the engine
// reports them as findings.
func (doc Document) Validate() error {
	if strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("catalog: id is required")
	}
	if doc.Profile != nil {
		if err := checkProfile(*doc.Profile); err != nil {
			return fmt.Errorf("catalog %s profile: %w", doc.ID, err)
		}
	}
	return nil
}

func checkProfile(p objective.Profile) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
		}
		return fmt.Errorf("%s %q is not allowed (%s)", strings.ToLower(fe.Field()), fe.Value(), fe.Param())
	}
	return err
}

// normalizeProfile trims the id and lowercases pace and style in place.
func normalizeProfile(p *objective.Profile) {
	p.ID = strings.TrimSpace(p.ID)
	p.Pace = objective.Pace(strings.ToLower(strings.TrimSpace(string(p.Pace))))
	p.Style = objective.LearningStyle(strings.ToLower(strings.TrimSpace(string(p.Style))))
}

// Normalized clones the document, trims identifiers, drops blank and repeated
// prerequisite references, and validates the result.
func (doc Document) Normalized() (Document, error) {
	clone := doc.Clone()
	clone.ID = strings.TrimSpace(clone.ID)
	for i := range clone.Objectives {
		o := &clone.Objectives[i]
		o.ID = strings.TrimSpace(o.ID)
		o.Domain = strings.TrimSpace(o.Domain)
		o.Prerequisites = dedupe(o.Prerequisites)
	}
	if clone.Profile != nil {
		normalizeProfile(clone.Profile)
	}
	if err := clone.Validate(); err != nil {
		return Document{}, err
	}
	return clone, nil
}

// ObjectiveIDs returns the objective identifiers in declaration order.
func (doc Document) ObjectiveIDs() []string {
	ids := make([]string, 0, len(doc.Objectives))
	for _, o := range doc.Objectives {
		ids = append(ids, o.ID)
	}
	return ids
}

// dedupe keeps the first occurrence of each non-blank id, in order.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Parse decodes a catalog from YAML or JSON bytes and normalizes it.
func Parse(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, ErrEmptyDocument
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("catalog: decode document: %w", err)
	}
	return doc.Normalized()
}

// LoadReader reads catalog data from r.
func LoadReader(r io.Reader) (Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("catalog: read document: %w", err)
	}
	return Parse(content)
}

// LoadFile loads a catalog from an explicit file path.
func LoadFile(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	doc, parseErr := Parse(content)
	if parseErr != nil {
		return Document{}, fmt.Errorf("catalog: %s: %w", path, parseErr)
	}
	return doc, nil
}

// LoadRelative loads a catalog from the catalogs directory, or from baseDir
// when one is given.
func LoadRelative(baseDir, name string) (Document, error) {
	if baseDir == "" {
		baseDir = DefaultCatalogDir
	}
	return LoadFile(filepath.Join(baseDir, name))
}

// ParseProfile decodes a standalone learner profile from YAML or JSON bytes,
// normalizes it the way catalog profiles are normalized and validates it.
func ParseProfile(data []byte) (objective.Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return objective.Profile{}, ErrEmptyDocument
	}
	var profile objective.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return objective.Profile{}, fmt.Errorf("catalog: decode profile: %w", err)
	}
	normalizeProfile(&profile)
	if err := checkProfile(profile); err != nil {
		return objective.Profile{}, fmt.Errorf("catalog: profile: %w", err)
	}
	return profile, nil
}

// LoadProfile reads a learner profile file.
func LoadProfile(path string) (objective.Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return objective.Profile{}, fmt.Errorf("catalog: read profile %s: %w", path, err)
	}
	profile, parseErr := ParseProfile(content)
	if parseErr != nil {
		return objective.Profile{}, fmt.Errorf("catalog: %s: %w", path, parseErr)
	}
	return profile, nil
}
