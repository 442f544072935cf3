package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvExpr(t *testing.T) {
	t.Setenv("PROCSIM_CYCLES", "40")
	t.Setenv("PROCSIM_QUANTUM", "3")
	t.Setenv("PROCSIM_REPORT", "mem://localhost/reports/run.yaml")
	t.Setenv("PROCSIM_WEBHOOK", "")

	testCases := []struct {
		description string
		input       string
		expect      string
	}{
		{
			description: "plain config",
			input:       "simulation:\n  cycles: 10\n",
			expect:      "simulation:\n  cycles: 10\n",
		},
		{
			description: "cycles from env",
			input:       "simulation:\n  cycles: ${env.PROCSIM_CYCLES}\n",
			expect:      "simulation:\n  cycles: 40\n",
		},
		{
			description: "several keys in one document",
			input:       "scheduler: {quantum: ${env.PROCSIM_QUANTUM}}\nreport: {url: ${env.PROCSIM_REPORT}}\n",
			expect:      "scheduler: {quantum: 3}\nreport: {url: mem://localhost/reports/run.yaml}\n",
		},
		{
			description: "empty variable",
			input:       "report:\n  webhook: ${env.PROCSIM_WEBHOOK}\n",
			expect:      "report:\n  webhook: \n",
		},
		{
			description: "unterminated expression kept",
			input:       "report: {url: ${env.PROCSIM_REPORT",
			expect:      "report: {url: ${env.PROCSIM_REPORT",
		},
		{
			description: "invalid key kept",
			input:       "seed: ${env.SEED-1}",
			expect:      "seed: ${env.SEED-1}",
		},
		{
			description: "valid key after invalid one",
			input:       "${env.a b}${env.PROCSIM_CYCLES}",
			expect:      "${env.a b}40",
		},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expect, expandEnvExpr(tc.input), tc.description)
	}
}
