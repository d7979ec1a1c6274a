// Package config builds client snapshots for the calculation engine. The
// engine never reaches for an ambient data source: callers construct a
// SnapshotSource and hand the resulting ClientData values to the
// calculators.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/advisorkit/finhealth/internal/disability"
	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/advisorkit/finhealth/internal/logging"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SnapshotSource supplies client snapshots and optional expense history.
// Implementations wrap a database, a file, or hand-authored samples.
type SnapshotSource interface {
	// LoadClients returns every available client snapshot.
	LoadClients() ([]domain.ClientData, error)
	// HistoricalExpenses returns the monthly expense totals for a client,
	// oldest first. A nil slice means no history is available.
	HistoricalExpenses(clientID string) ([]decimal.Decimal, error)
}

// SnapshotDocument is the on-disk layout consumed by FileSource.
type SnapshotDocument struct {
	Clients            []domain.ClientData          `yaml:"clients" json:"clients"`
	HistoricalExpenses map[string][]decimal.Decimal `yaml:"historical_expenses" json:"historical_expenses"`
}

// FileSource loads snapshots from a YAML or JSON document.
type FileSource struct {
	path string

	doc *SnapshotDocument
}

// NewFileSource creates a source backed by the given file. The file is read
// lazily on first use.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (fs *FileSource) load() (*SnapshotDocument, error) {
	if fs.doc != nil {
		return fs.doc, nil
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file %s: %w", fs.path, err)
	}

	var doc SnapshotDocument
	switch strings.ToLower(filepath.Ext(fs.path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON snapshot: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML snapshot: %w", err)
		}
	}

	for i := range doc.Clients {
		if err := validateClient(&doc.Clients[i]); err != nil {
			return nil, fmt.Errorf("client %d validation failed: %w", i, err)
		}
	}

	logging.L().Info("loaded client snapshots",
		zap.String("path", fs.path),
		zap.Int("clients", len(doc.Clients)))

	fs.doc = &doc
	return fs.doc, nil
}

// LoadClients returns every client in the document.
func (fs *FileSource) LoadClients() ([]domain.ClientData, error) {
	doc, err := fs.load()
	if err != nil {
		return nil, err
	}
	return doc.Clients, nil
}

// HistoricalExpenses returns the expense history recorded for a client.
func (fs *FileSource) HistoricalExpenses(clientID string) ([]decimal.Decimal, error) {
	doc, err := fs.load()
	if err != nil {
		return nil, err
	}
	return doc.HistoricalExpenses[clientID], nil
}

// validateClient checks the invariants the engine assumes but does not
// enforce itself. Missing identifiers are filled in rather than rejected.
func validateClient(client *domain.ClientData) error {
	if client.Profile.ClientID == "" {
		client.Profile.ClientID = uuid.NewString()
	}
	if client.Profile.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if client.Profile.RetirementAge < 0 {
		return fmt.Errorf("retirement age cannot be negative")
	}
	if client.Profile.RiskTolerance == "" {
		client.Profile.RiskTolerance = domain.RiskModerate
	}
	if !client.Profile.RiskTolerance.Valid() {
		return fmt.Errorf("unknown risk tolerance %q", client.Profile.RiskTolerance)
	}
	if client.Profile.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}

	for i := range client.Goals {
		goal := &client.Goals[i]
		if goal.GoalID == "" {
			goal.GoalID = uuid.NewString()
		}
		if goal.TargetAmount.LessThan(decimal.Zero) {
			return fmt.Errorf("goal %q: target amount cannot be negative", goal.Name)
		}
		if goal.CurrentAmount.LessThan(decimal.Zero) {
			return fmt.Errorf("goal %q: current amount cannot be negative", goal.Name)
		}
	}
	return nil
}

// PolicyDocument is the on-disk pairing of an extracted disability policy
// with the client-supplied inputs for a projection.
type PolicyDocument struct {
	Policy disability.GroupDisabilityPolicy `yaml:"policy" json:"policy"`
	Inputs disability.UserInputs            `yaml:"inputs" json:"inputs"`
}

// LoadPolicyFile reads a structured disability policy document (YAML or
// JSON) as produced by the document-extraction collaborator.
func LoadPolicyFile(path string) (*PolicyDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	var doc PolicyDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON policy: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML policy: %w", err)
		}
	}
	if err := doc.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}
	return &doc, nil
}
