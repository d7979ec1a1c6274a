package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const snapshotYAML = `
clients:
  - profile:
      client_id: TC001
      name: Test Client
      age: 42
      retirement_age: 65
      risk_tolerance: high
      dependents: 1
      marital_status: married
      state: NY
    income:
      annual_salary: 150000
      bonus: 20000
    expenses:
      housing: 3000
      groceries: 800
    assets:
      checking_accounts: 20000
      retirement_401k: 250000
    liabilities:
      mortgage_primary: 400000
    goals:
      - goal_id: g1
        name: House Fund
        target_amount: 100000
        current_amount: 25000
        monthly_contribution: 500
historical_expenses:
  TC001: [5000, 5100, 5200]
`

func TestFileSourceYAML(t *testing.T) {
	path := writeSnapshot(t, "clients.yaml", snapshotYAML)
	source := NewFileSource(path)

	clients, err := source.LoadClients()
	require.NoError(t, err)
	require.Len(t, clients, 1)

	client := clients[0]
	assert.Equal(t, "TC001", client.Profile.ClientID)
	assert.Equal(t, 42, client.Profile.Age)
	assert.Equal(t, domain.RiskHigh, client.Profile.RiskTolerance)
	assert.True(t, decimal.NewFromInt(150000).Equal(client.Income.AnnualSalary))
	assert.True(t, decimal.NewFromInt(3800).Equal(client.Expenses.TotalMonthlyExpenses()))
	assert.True(t, decimal.NewFromInt(400000).Equal(client.Liabilities.MortgagePrimary))

	history, err := source.HistoricalExpenses("TC001")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, decimal.NewFromInt(5100).Equal(history[1]))

	missing, err := source.HistoricalExpenses("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFileSourceJSON(t *testing.T) {
	path := writeSnapshot(t, "clients.json", `{
		"clients": [{
			"profile": {"client_id": "TC002", "name": "J", "age": 30, "retirement_age": 60,
				"risk_tolerance": "low", "dependents": 0, "marital_status": "single", "state": "TX"},
			"income": {"annual_salary": 90000},
			"expenses": {}, "assets": {}, "liabilities": {}, "insurance": {},
			"portfolio_allocation": {}, "portfolio_metrics": {}, "goals": [], "estate": {}
		}],
		"historical_expenses": {}
	}`)

	clients, err := NewFileSource(path).LoadClients()
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "TC002", clients[0].Profile.ClientID)
	assert.True(t, decimal.NewFromInt(90000).Equal(clients[0].Income.AnnualSalary))
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource("/nonexistent/clients.yaml").LoadClients()
	assert.Error(t, err)
}

func TestFileSourceValidation(t *testing.T) {
	t.Run("negative age rejected", func(t *testing.T) {
		path := writeSnapshot(t, "bad.yaml", `
clients:
  - profile: {name: Bad, age: -5, retirement_age: 65}
`)
		_, err := NewFileSource(path).LoadClients()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "age cannot be negative")
	})

	t.Run("unknown risk tolerance rejected", func(t *testing.T) {
		path := writeSnapshot(t, "bad.yaml", `
clients:
  - profile: {name: Bad, age: 40, retirement_age: 65, risk_tolerance: yolo}
`)
		_, err := NewFileSource(path).LoadClients()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown risk tolerance")
	})

	t.Run("negative goal target rejected", func(t *testing.T) {
		path := writeSnapshot(t, "bad.yaml", `
clients:
  - profile: {name: Bad, age: 40, retirement_age: 65}
    goals:
      - {name: Broken, target_amount: -100}
`)
		_, err := NewFileSource(path).LoadClients()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "target amount cannot be negative")
	})
}

func TestFileSourceBackfillsDefaults(t *testing.T) {
	path := writeSnapshot(t, "sparse.yaml", `
clients:
  - profile: {name: Sparse, age: 40, retirement_age: 65}
    goals:
      - {name: Unnamed Goal, target_amount: 1000}
`)
	clients, err := NewFileSource(path).LoadClients()
	require.NoError(t, err)
	require.Len(t, clients, 1)

	assert.NotEmpty(t, clients[0].Profile.ClientID, "missing client IDs are generated")
	assert.Equal(t, domain.RiskModerate, clients[0].Profile.RiskTolerance)
	assert.NotEmpty(t, clients[0].Goals[0].GoalID, "missing goal IDs are generated")
}

func TestSampleSource(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	source := NewSampleSource(now)

	clients, err := source.LoadClients()
	require.NoError(t, err)
	require.Len(t, clients, 3)

	assert.Equal(t, "SC001", clients[0].Profile.ClientID)
	assert.Equal(t, "MW002", clients[1].Profile.ClientID)
	assert.Equal(t, "JDP003", clients[2].Profile.ClientID)

	sarah := clients[0]
	assert.Equal(t, 38, sarah.Profile.Age)
	assert.Equal(t, 2, sarah.Profile.Dependents)
	assert.True(t, decimal.NewFromInt(285000).Equal(sarah.Income.AnnualSalary))
	assert.True(t, sarah.NetWorth().GreaterThan(decimal.Zero))
	assert.Len(t, sarah.Goals, 3)
	require.NotNil(t, sarah.Estate.WillLastUpdated)
	assert.True(t, sarah.Estate.WillLastUpdated.Before(now))

	for _, id := range []string{"SC001", "MW002", "JDP003"} {
		history, err := source.HistoricalExpenses(id)
		require.NoError(t, err)
		assert.Len(t, history, 24, "history for %s", id)
	}

	none, err := source.HistoricalExpenses("unknown")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLoadPolicyFile(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		path := writeSnapshot(t, "policy.yaml", `
policy:
  policy_metadata: {insurer_name: Acme Mutual, policy_type: group LTD}
  benefit_parameters:
    replacement_percentage: 60
    maximum_monthly_benefit: 8000
    minimum_monthly_benefit: 100
    elimination_period_days: 90
  earnings_definition: {includes_base_salary: true}
  deductible_offsets: {offsets_primary_ssdi: true}
inputs:
  annual_base_salary: 180000
  aime: 8000
  date_of_disability: 2025-01-15T00:00:00Z
  date_of_birth: 1980-01-15T00:00:00Z
`)
		doc, err := LoadPolicyFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Acme Mutual", doc.Policy.PolicyMetadata.InsurerName)
		assert.Equal(t, 90, doc.Policy.BenefitParameters.EliminationPeriodDays)
		assert.True(t, doc.Policy.DeductibleOffsets.OffsetsPrimarySSDI)
		assert.True(t, decimal.NewFromInt(180000).Equal(doc.Inputs.AnnualBaseSalary))
		assert.Equal(t, 2025, doc.Inputs.DateOfDisability.Year())
	})

	t.Run("zero replacement rejected", func(t *testing.T) {
		path := writeSnapshot(t, "bad_policy.yaml", `
policy:
  benefit_parameters: {replacement_percentage: 0}
`)
		_, err := LoadPolicyFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "replacement percentage")
	})
}
