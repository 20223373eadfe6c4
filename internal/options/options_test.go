package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.AddCheck("UCI_Chess960", false)
	r.AddSpin("Threads", 2, 1, 128)
	r.AddCombo("Backend", "eigen", []string{"eigen", "blas", "random"})
	r.AddString("WeightsFile", "<autodiscover>")
	return r
}

func TestUciLines(t *testing.T) {
	r := newTestRegistry()

	assert.Equal(t, []string{
		"option name UCI_Chess960 type check default false",
		"option name Threads type spin default 2 min 1 max 128",
		"option name Backend type combo default eigen var eigen var blas var random",
		"option name WeightsFile type string default <autodiscover>",
	}, r.UciLines())
}

func TestSet_Check(t *testing.T) {
	r := newTestRegistry()

	require.NoError(t, r.Set("UCI_Chess960", "true", ""))
	assert.True(t, r.Bool("UCI_Chess960"))

	err := r.Set("UCI_Chess960", "yes", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects true or false")
}

func TestSet_SpinBounds(t *testing.T) {
	r := newTestRegistry()

	require.NoError(t, r.Set("Threads", "64", ""))
	assert.Equal(t, 64, r.Int("Threads"))

	err := r.Set("Threads", "0", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [1, 128]")

	err = r.Set("Threads", "many", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects an integer")
}

func TestSet_Combo(t *testing.T) {
	r := newTestRegistry()

	require.NoError(t, r.Set("Backend", "blas", ""))
	assert.Equal(t, "blas", r.Get("Backend"))

	err := r.Set("Backend", "cuda", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choice")
}

func TestSet_UnknownOption(t *testing.T) {
	r := newTestRegistry()

	err := r.Set("Nonesuch", "1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown option: Nonesuch")
}

func TestSet_ContextOverride(t *testing.T) {
	r := newTestRegistry()

	require.NoError(t, r.Set("Threads", "8", "analysis"))
	// The default context is untouched by a scoped set.
	assert.Equal(t, 2, r.Int("Threads"))
	assert.Equal(t, "8", r.GetContext("Threads", "analysis"))
	assert.Equal(t, "2", r.GetContext("Threads", "play"))
}

func TestSet_ContextValueStillValidated(t *testing.T) {
	r := newTestRegistry()

	err := r.Set("Threads", "1000", "analysis")
	require.Error(t, err)
}

func TestFloat(t *testing.T) {
	r := NewRegistry()
	r.AddString("Temperature", "0.6")
	assert.InDelta(t, 0.6, r.Float("Temperature"), 1e-9)
}
