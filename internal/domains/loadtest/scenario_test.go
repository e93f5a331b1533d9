package loadtest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	smoke, err := Builtin("SMOKE")
	require.NoError(t, err)
	assert.Equal(t, 2, smoke.VUs)
	assert.Equal(t, 2*time.Minute, smoke.Duration)
	assert.Equal(t, 3*time.Second, smoke.Thresholds.P95)

	_, err = Builtin("chaos")
	assert.ErrorIs(t, err, ErrUnknownScenario)

	names := make([]string, 0)
	for _, sc := range Builtins() {
		require.NoError(t, sc.Validate(), sc.Name)
		names = append(names, sc.Name)
	}
	assert.Equal(t, []string{"load", "smoke", "soak", "spike", "stress", "volume"}, names)
}

func TestParseScenarioExtendsBuiltin(t *testing.T) {
	sc, err := ParseScenario([]byte(`
extends: stress
name: short-stress
duration: 30s
mix:
  create: 50
`))
	require.NoError(t, err)
	assert.Equal(t, "short-stress", sc.Name)
	assert.Equal(t, 30, sc.VUs)
	assert.Equal(t, 30*time.Second, sc.Duration)
	assert.Equal(t, Mix{List: 50, Get: 30, Search: 15, Create: 50}, sc.Mix)
	assert.Equal(t, 5*time.Second, sc.Thresholds.P95)
}

func TestLoadScenarioFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vus: 3\nduration: 1m\nrps: 20\nthresholds:\n  p95: 250ms\n  maxFailRate: 0.02\n"), 0o600))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", sc.Name)
	assert.Equal(t, 3, sc.VUs)
	assert.Equal(t, float64(20), sc.RPS)
	assert.Equal(t, defaultMix, sc.Mix)
	assert.Equal(t, Thresholds{P95: 250 * time.Millisecond, MaxFailRate: 0.02}, sc.Thresholds)
}

func TestParseScenarioRejectsInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"no users":       "vus: 0\nduration: 1m\n",
		"no duration":    "vus: 1\n",
		"empty mix":      "vus: 1\nduration: 1m\nmix: {list: 0, get: 0, search: 0, create: 0}\n",
		"unknown parent": "extends: chaos\n",
		"bad yaml":       "vus: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScenario([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestConfigResolve(t *testing.T) {
	sc, err := Config{}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "smoke", sc.Name)

	sc, err = Config{Scenario: "load", VUs: 4, Duration: "90s", RPS: 5}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 4, sc.VUs)
	assert.Equal(t, 90*time.Second, sc.Duration)
	assert.Equal(t, float64(5), sc.RPS)

	_, err = Config{Duration: "soon"}.Resolve()
	assert.Error(t, err)
}

func TestMixPick(t *testing.T) {
	m := Mix{List: 2, Get: 1, Search: 1, Create: 1}
	got := make([]Operation, 0, m.total())
	for i := 0; i < m.total(); i++ {
		got = append(got, m.pick(i))
	}
	assert.Equal(t, []Operation{OpList, OpList, OpGet, OpSearch, OpCreate}, got)
}
