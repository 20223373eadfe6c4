package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeEngine records dispatched controller calls.
type fakeEngine struct {
	calls    []string
	fen      string
	moves    []string
	goReq    GoRequest
	err      error
	readyErr error
}

func (f *fakeEngine) EnsureReady() error { f.calls = append(f.calls, "ready"); return f.readyErr }
func (f *fakeEngine) NewGame() error     { f.calls = append(f.calls, "newgame"); return f.err }
func (f *fakeEngine) SetPosition(fen string, moves []string) error {
	f.calls = append(f.calls, "position")
	f.fen = fen
	f.moves = moves
	return f.err
}
func (f *fakeEngine) Go(req GoRequest) error {
	f.calls = append(f.calls, "go")
	f.goReq = req
	return f.err
}
func (f *fakeEngine) Stop() error      { f.calls = append(f.calls, "stop"); return f.err }
func (f *fakeEngine) PonderHit() error { f.calls = append(f.calls, "ponderhit"); return f.err }

// fakeOptions records setoption forwards and advertises fixed lines.
type fakeOptions struct {
	lines                []string
	name, value, context string
	err                  error
	toggles              map[string]bool
}

func (f *fakeOptions) UciLines() []string { return f.lines }
func (f *fakeOptions) Set(name, value, context string) error {
	f.name, f.value, f.context = name, value, context
	return f.err
}
func (f *fakeOptions) Bool(name string) bool { return f.toggles[name] }

func newTestLoop(t *testing.T) (*Loop, *fakeEngine, *fakeOptions, *bytes.Buffer) {
	t.Helper()
	eng := &fakeEngine{}
	opts := &fakeOptions{
		lines:   []string{"option name UCI_Chess960 type check default false"},
		toggles: map[string]bool{},
	}
	out := &bytes.Buffer{}
	log := zap.NewNop().Sugar()
	responder := NewResponder(out, opts, log)
	return NewLoop(responder, opts, eng, log), eng, opts, out
}

func TestDispatch_Uci(t *testing.T) {
	loop, _, _, out := newTestLoop(t)

	cont, err := loop.ProcessLine("uci")
	require.NoError(t, err)
	assert.True(t, cont)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "id name Lc0 v"))
	assert.Equal(t, "id author The LCZero Authors.", lines[1])
	assert.Equal(t, "option name UCI_Chess960 type check default false", lines[2])
	assert.Equal(t, "uciok", lines[3])
}

func TestDispatch_IsReady(t *testing.T) {
	loop, eng, _, out := newTestLoop(t)

	cont, err := loop.ProcessLine("isready")
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Equal(t, []string{"ready"}, eng.calls)
	assert.Equal(t, "readyok\n", out.String())
}

func TestDispatch_SetOptionForwards(t *testing.T) {
	loop, _, opts, _ := newTestLoop(t)

	_, err := loop.ProcessLine("setoption name Skill Level value 10 context play")
	require.NoError(t, err)
	assert.Equal(t, "Skill Level", opts.name)
	assert.Equal(t, "10", opts.value)
	assert.Equal(t, "play", opts.context)
}

func TestDispatch_SetOptionStoreErrorPropagates(t *testing.T) {
	loop, _, opts, _ := newTestLoop(t)
	opts.err = assert.AnError

	_, err := loop.ProcessLine("setoption name Nope value 1")
	require.Error(t, err)
	assert.Equal(t, DelegatedError, err.(*Error).Kind)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDispatch_PositionStartpos(t *testing.T) {
	loop, eng, _, _ := newTestLoop(t)

	cont, err := loop.ProcessLine("position startpos moves e2e4 e7e5")
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Equal(t, StartposFen, eng.fen)
	assert.Equal(t, []string{"e2e4", "e7e5"}, eng.moves)
}

func TestDispatch_PositionFen(t *testing.T) {
	loop, eng, _, _ := newTestLoop(t)

	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	_, err := loop.ProcessLine("position fen " + fen)
	require.NoError(t, err)
	assert.Equal(t, fen, eng.fen)
	assert.Empty(t, eng.moves)
}

func TestDispatch_PositionBothOrNeither(t *testing.T) {
	loop, _, _, _ := newTestLoop(t)

	_, err := loop.ProcessLine("position fen x startpos")
	require.Error(t, err)
	assert.Equal(t, SemanticError, err.(*Error).Kind)
	assert.Contains(t, err.Error(), "requires either fen or startpos")

	_, err = loop.ProcessLine("position moves e2e4")
	require.Error(t, err)
	assert.Equal(t, SemanticError, err.(*Error).Kind)
}

func TestDispatch_GoFull(t *testing.T) {
	loop, eng, _, _ := newTestLoop(t)

	_, err := loop.ProcessLine("go wtime 60000 btime 60000 winc 1000 binc 1000 movestogo 40 depth 12 nodes 500000 movetime 3000 searchmoves e2e4 d2d4")
	require.NoError(t, err)
	req := eng.goReq
	require.NotNil(t, req.WTime)
	assert.Equal(t, 60000, *req.WTime)
	require.NotNil(t, req.MovesToGo)
	assert.Equal(t, 40, *req.MovesToGo)
	require.NotNil(t, req.Depth)
	assert.Equal(t, 12, *req.Depth)
	require.NotNil(t, req.MoveTime)
	assert.Equal(t, 3000, *req.MoveTime)
	assert.Equal(t, []string{"e2e4", "d2d4"}, req.SearchMoves)
	assert.False(t, req.Infinite)
	assert.Nil(t, req.Mate)
}

func TestDispatch_GoFlags(t *testing.T) {
	loop, eng, _, _ := newTestLoop(t)

	_, err := loop.ProcessLine("go infinite")
	require.NoError(t, err)
	assert.True(t, eng.goReq.Infinite)

	_, err = loop.ProcessLine("go ponder wtime 500")
	require.NoError(t, err)
	assert.True(t, eng.goReq.Ponder)
}

func TestDispatch_GoFlagWithValue(t *testing.T) {
	loop, _, _, _ := newTestLoop(t)

	_, err := loop.ProcessLine("go infinite e2e4")
	require.Error(t, err)
	assert.Equal(t, SemanticError, err.(*Error).Kind)
	assert.Contains(t, err.Error(), "unexpected token e2e4")
}

func TestDispatch_GoNumericErrors(t *testing.T) {
	loop, _, _, _ := newTestLoop(t)

	_, err := loop.ProcessLine("go depth abc")
	require.Error(t, err)
	assert.Equal(t, NumericError, err.(*Error).Kind)
	assert.Contains(t, err.Error(), "invalid value abc")

	_, err = loop.ProcessLine("go depth")
	require.Error(t, err)
	assert.Equal(t, NumericError, err.(*Error).Kind)
	assert.Contains(t, err.Error(), "expected value after depth")

	_, err = loop.ProcessLine("go nodes 99999999999999999999999999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range value")
}

func TestDispatch_StopAndPonderhit(t *testing.T) {
	loop, eng, _, _ := newTestLoop(t)

	_, err := loop.ProcessLine("stop")
	require.NoError(t, err)
	_, err = loop.ProcessLine("ponderhit")
	require.NoError(t, err)
	assert.Equal(t, []string{"stop", "ponderhit"}, eng.calls)
}

func TestDispatch_Xyzzy(t *testing.T) {
	loop, eng, _, out := newTestLoop(t)

	cont, err := loop.ProcessLine("xyzzy")
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Equal(t, "Nothing happens.\n", out.String())
	assert.Empty(t, eng.calls)
}

func TestDispatch_QuitStopsLoop(t *testing.T) {
	loop, eng, _, _ := newTestLoop(t)

	cont, err := loop.ProcessLine("quit")
	require.NoError(t, err)
	assert.False(t, cont)
	assert.Empty(t, eng.calls)
}

func TestDispatch_BareFenIsUnknown(t *testing.T) {
	// "fen" parses against the schema but dispatch rejects it.
	loop, _, _, _ := newTestLoop(t)

	cont, err := loop.ProcessLine("fen")
	require.Error(t, err)
	assert.True(t, cont)
	assert.Equal(t, GrammarError, err.(*Error).Kind)
	assert.Contains(t, err.Error(), "unknown command: fen")
}

func TestProcessLine_EmptyIsNoop(t *testing.T) {
	loop, eng, _, out := newTestLoop(t)

	cont, err := loop.ProcessLine("   ")
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Empty(t, eng.calls)
	assert.Empty(t, out.String())
}

func TestRun_ReportsErrorsAndContinues(t *testing.T) {
	loop, eng, _, out := newTestLoop(t)

	input := strings.NewReader("bogus\nisready\nquit\nisready\n")
	require.NoError(t, loop.Run(input))

	assert.Equal(t, []string{"ready"}, eng.calls)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "error unknown command: bogus")
	assert.Equal(t, "readyok", lines[1])
}
