package uci

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Engine is the external decision-making controller the dispatcher
// forwards structured requests to. Blocking semantics of EnsureReady
// are owned entirely by the implementation; the loop neither times out
// nor cancels it.
type Engine interface {
	EnsureReady() error
	NewGame() error
	SetPosition(fen string, moves []string) error
	Go(req GoRequest) error
	Stop() error
	PonderHit() error
}

// OptionStore is the option registry the setoption command writes to
// and the uci command advertises from. Errors it returns (unknown name,
// invalid value) propagate to the caller unchanged.
type OptionStore interface {
	UciLines() []string
	Set(name, value, context string) error
}

// Loop drives one parse/dispatch cycle per input line. It holds no
// state of its own beyond the collaborator references; each dispatch is
// a complete request/response exchange.
type Loop struct {
	responder *Responder
	options   OptionStore
	engine    Engine
	log       *zap.SugaredLogger
}

func NewLoop(responder *Responder, options OptionStore, engine Engine, log *zap.SugaredLogger) *Loop {
	return &Loop{responder: responder, options: options, engine: engine, log: log}
}

// ProcessLine parses and dispatches a single line. The returned bool
// tells the caller whether to keep reading; it is false only for quit.
// A blank line is a no-op. Any error aborts only the current line.
func (l *Loop) ProcessLine(line string) (bool, error) {
	command, params, err := ParseCommand(line)
	if err != nil {
		return true, err
	}
	if command == "" {
		return true, nil
	}
	return l.Dispatch(command, params)
}

// HandleLine processes one line and reports any failure on the output
// sink, so malformed input never stops the loop.
func (l *Loop) HandleLine(line string) bool {
	l.log.Debugf(">> %s", line)
	cont, err := l.ProcessLine(line)
	if err != nil {
		var uciErr *Error
		if errors.As(err, &uciErr) {
			l.log.Warnw("rejected line", "kind", uciErr.Kind.String(), "error", err)
		}
		l.responder.SendRaw("error " + err.Error())
	}
	return cont
}

// Run reads commands from r until quit or end of input.
func (l *Loop) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !l.HandleLine(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Dispatch maps a parsed command onto a controller or option-store
// call. It returns false only for quit; grammar and semantic failures
// return an error with the continue flag still true.
func (l *Loop) Dispatch(command string, params map[string]string) (bool, error) {
	switch command {
	case "uci":
		l.responder.SendID()
		lines := append(l.options.UciLines(), "uciok")
		l.responder.SendRaw(lines...)

	case "isready":
		if err := l.engine.EnsureReady(); err != nil {
			return true, delegated(err)
		}
		l.responder.SendRaw("readyok")

	case "setoption":
		so, err := ParseSetOption(params[setoptionArgsKey])
		if err != nil {
			return true, err
		}
		if err := l.options.Set(so.Name, so.Value, so.Context); err != nil {
			return true, delegated(err)
		}

	case "ucinewgame":
		if err := l.engine.NewGame(); err != nil {
			return true, delegated(err)
		}

	case "position":
		_, hasFen := params["fen"]
		_, hasStartpos := params["startpos"]
		if hasFen == hasStartpos {
			return true, semanticf("position requires either fen or startpos")
		}
		fen := params["fen"]
		if fen == "" {
			fen = StartposFen
		}
		moves := strings.Fields(params["moves"])
		if err := l.engine.SetPosition(fen, moves); err != nil {
			return true, delegated(err)
		}

	case "go":
		req, err := buildGoRequest(params)
		if err != nil {
			return true, err
		}
		if err := l.engine.Go(req); err != nil {
			return true, delegated(err)
		}

	case "stop":
		if err := l.engine.Stop(); err != nil {
			return true, delegated(err)
		}

	case "ponderhit":
		if err := l.engine.PonderHit(); err != nil {
			return true, delegated(err)
		}

	case "xyzzy":
		l.responder.SendRaw("Nothing happens.")

	case "quit":
		return false, nil

	default:
		return true, grammarf("unknown command: %s", command)
	}
	return true, nil
}

// buildGoRequest converts the raw keyword map of a go command into a
// typed request. infinite and ponder are flags and must not carry a
// value; every other keyword takes a base-10 integer.
func buildGoRequest(params map[string]string) (GoRequest, error) {
	var req GoRequest

	if v, ok := params["infinite"]; ok {
		if v != "" {
			return GoRequest{}, semanticf("unexpected token %s", v)
		}
		req.Infinite = true
	}
	if v, ok := params["ponder"]; ok {
		if v != "" {
			return GoRequest{}, semanticf("unexpected token %s", v)
		}
		req.Ponder = true
	}
	if v, ok := params["searchmoves"]; ok {
		req.SearchMoves = strings.Fields(v)
	}

	limits := []struct {
		key string
		dst **int
	}{
		{"wtime", &req.WTime},
		{"btime", &req.BTime},
		{"winc", &req.WInc},
		{"binc", &req.BInc},
		{"movestogo", &req.MovesToGo},
		{"depth", &req.Depth},
		{"mate", &req.Mate},
		{"nodes", &req.Nodes},
		{"movetime", &req.MoveTime},
	}
	for _, limit := range limits {
		raw, ok := params[limit.key]
		if !ok {
			continue
		}
		n, err := parseGoNumber(limit.key, raw)
		if err != nil {
			return GoRequest{}, err
		}
		*limit.dst = &n
	}
	return req, nil
}

func parseGoNumber(key, raw string) (int, error) {
	if raw == "" {
		return 0, numericf("expected value after %s", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, numericf("out of range value %s", raw)
		}
		return 0, numericf("invalid value %s", raw)
	}
	return n, nil
}
