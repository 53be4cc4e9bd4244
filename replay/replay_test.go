package replay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/cnfuzz/gen"
)

func generate(t *testing.T, cfg gen.Config) string {
	t.Helper()
	f, err := gen.Generate(cfg)
	require.NoError(t, err)
	return f.CNF()
}

func TestCheckEqual(t *testing.T) {
	for _, qbf := range []bool{false, true} {
		text := generate(t, gen.Config{Seed: 77, QBF: qbf})
		res, err := Check(strings.NewReader(text), nil)
		require.NoError(t, err)
		assert.True(t, res.Equal)
		assert.Equal(t, int64(77), res.Seed)
		assert.Equal(t, qbf, res.QBF)
		assert.Empty(t, res.Lines())
	}
}

func TestCheckTampered(t *testing.T) {
	text := generate(t, gen.Config{Seed: 3})
	lines := strings.Split(text, "\n")
	i := len(lines) - 2 // last clause
	orig := lines[i]
	lines[i] = "c tampered"
	res, err := Check(strings.NewReader(strings.Join(lines, "\n")), nil)
	require.NoError(t, err)
	assert.False(t, res.Equal)
	assert.Equal(t, []string{"-c tampered", "+" + orig}, res.Lines())
}

func TestCheckOptions(t *testing.T) {
	opts := &gen.OptionFile{Options: []gen.Option{{Name: "restart", Value: 5, Min: 0, Max: 10}}}
	text := generate(t, gen.Config{Seed: 8, Options: opts})

	_, err := Check(strings.NewReader(text), nil)
	assert.ErrorIs(t, err, ErrMissingOptions)

	res, err := Check(strings.NewReader(text), opts)
	require.NoError(t, err)
	assert.True(t, res.Equal)
}

func TestCheckNoSeed(t *testing.T) {
	_, err := Check(strings.NewReader("p cnf 1 1\n1 0\n"), nil)
	assert.ErrorIs(t, err, ErrNoSeed)
}
