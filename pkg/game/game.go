package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/qnkhuat/tetristerm/pkg"
	"github.com/qnkhuat/tetristerm/pkg/mino"
	"github.com/qnkhuat/tetristerm/pkg/scores"
)

const (
	LogStandard = iota
	LogDebug
	LogVerbose
)

const (
	CadenceInput      = "input"
	CadenceGravity    = "gravity"
	CadenceRender     = "render"
	CadenceFPS        = "fps"
	CadenceDifficulty = "difficulty"
)

var ErrNoPort = errors.New("game requires a port")

type Options struct {
	Difficulty int
	Seed       int64

	// Clock defaults to the wall clock.
	Clock pkg.Clock

	EscalationInterval time.Duration
	LogLevel           int

	// Spawn overrides random piece selection.
	Spawn func() *mino.Piece
}

// Result is the outcome of a finished session.
type Result struct {
	Score      int
	Difficulty int
	Lines      int
	Name       string
	Saved      bool
	HighScores []scores.Entry
}

// Game wires an engine to a port, a score store and the cadences that
// drive it.
type Game struct {
	Engine    *Engine
	Scheduler *Scheduler

	port     Port
	store    scores.Store
	clock    pkg.Clock
	seed     int64
	LogLevel int

	highScores   []scores.Entry
	frames       int
	fps          int
	drawnVersion uint64
	drawn        bool
}

// NewGame builds a session. A nil store disables the leaderboard.
func NewGame(port Port, store scores.Store, opts Options) (*Game, error) {
	if port == nil {
		return nil, ErrNoPort
	}

	if opts.Clock == nil {
		opts.Clock = pkg.WallClock{}
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.EscalationInterval <= 0 {
		opts.EscalationInterval = DefaultEscalationInterval
	}

	spawn := opts.Spawn
	if spawn == nil {
		r := rand.New(rand.NewSource(opts.Seed))
		spawn = func() *mino.Piece {
			return mino.RandomPiece(r)
		}
	}

	g := &Game{
		Engine:   NewEngine(spawn, opts.Difficulty),
		port:     port,
		store:    store,
		clock:    opts.Clock,
		seed:     opts.Seed,
		LogLevel: opts.LogLevel,
	}
	g.Scheduler = NewScheduler(opts.Clock, func() bool { return g.Engine.Ended })

	escalation := opts.EscalationInterval
	g.Scheduler.Every(CadenceInput, fixed(InputInterval), g.pollInput)
	g.Scheduler.Every(CadenceGravity, func() time.Duration {
		return GravityInterval(BaseGravityInterval, g.Engine.Difficulty)
	}, g.gravity)
	g.Scheduler.Every(CadenceRender, fixed(FrameInterval), g.render)
	g.Scheduler.After(CadenceFPS, fixed(FPSInterval), g.countFPS)
	g.Scheduler.After(CadenceDifficulty, fixed(escalation), g.escalate)

	return g, nil
}

func fixed(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}

func (g *Game) Log(level int, a ...interface{}) {
	if level > g.LogLevel {
		return
	}

	log.Print(a...)
}

func (g *Game) Logf(level int, format string, a ...interface{}) {
	if level > g.LogLevel {
		return
	}

	log.Printf(format, a...)
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:      g.Engine.Board(),
		Score:      g.Engine.Score,
		Difficulty: g.Engine.Difficulty,
		Lines:      g.Engine.Lines,
		FPS:        g.fps,
		HighScores: g.highScores,
		Ended:      g.Engine.Ended,
	}
}

func (g *Game) logMove(source string, m Move) {
	switch m.Outcome {
	case OutcomeLocked:
		g.Logf(LogDebug, "%s: piece locked, next %s", source, g.Engine.Piece)
	case OutcomeEnded:
		g.Logf(LogStandard, "game over with score %d", g.Engine.Score)
	}

	if m.Cleared > 0 {
		g.Logf(LogDebug, "%s: cleared %d rows, score %d", source, m.Cleared, g.Engine.Score)
	}
}

func (g *Game) pollInput() {
	in, ok := g.port.Poll()
	if !ok {
		return
	}

	g.Logf(LogVerbose, "input %+v", in)
	g.logMove("input", g.Engine.Apply(in))
}

func (g *Game) gravity() {
	g.logMove("gravity", g.Engine.Gravity())
}

func (g *Game) render() {
	if g.drawn && g.drawnVersion == g.Engine.Version() {
		return
	}

	g.port.Display(g.Snapshot())
	g.drawnVersion = g.Engine.Version()
	g.drawn = true
	g.frames++
}

func (g *Game) countFPS() {
	g.fps = g.frames
	g.frames = 0
	g.Logf(LogVerbose, "fps %d", g.fps)
}

func (g *Game) escalate() {
	g.Engine.Escalate()
	g.Logf(LogDebug, "difficulty raised to %d, gravity every %s",
		g.Engine.Difficulty, GravityInterval(BaseGravityInterval, g.Engine.Difficulty))
}

func (g *Game) loadHighScores(ctx context.Context) {
	if g.store == nil {
		return
	}

	top, err := g.store.Top(ctx, scores.DefaultTop)
	if err != nil {
		g.Logf(LogStandard, "failed to load high scores: %v", err)
		g.highScores = nil
		return
	}

	g.highScores = top
}

// Run plays the session until the game ends or ctx is done. After the game
// ends the player is asked for a name and the score is saved when a store
// is configured. Storage failures are logged and never returned.
func (g *Game) Run(ctx context.Context) (Result, error) {
	g.Logf(LogStandard, "game started with seed %d at difficulty %d", g.seed, g.Engine.Difficulty)

	g.loadHighScores(ctx)

	if err := g.Scheduler.Run(ctx); err != nil {
		return g.result(), fmt.Errorf("game loop: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return g.result(), err
	}

	g.port.Display(g.Snapshot())

	name, ok := g.port.InputName(ctx)
	if err := ctx.Err(); err != nil {
		return g.result(), err
	}

	res := g.result()
	if !ok {
		g.Logf(LogStandard, "player declined to save score %d", res.Score)
		return res, nil
	}

	res.Name = pkg.Nickname(name)
	if g.store != nil {
		if err := g.store.Add(ctx, scores.Entry{Name: res.Name, Score: res.Score}); err != nil {
			g.Logf(LogStandard, "failed to save score for %s: %v", res.Name, err)
		} else {
			res.Saved = true
			g.Logf(LogStandard, "saved score %d for %s", res.Score, res.Name)
		}

		g.loadHighScores(ctx)
		g.port.Display(g.Snapshot())
	}

	res.HighScores = g.highScores
	return res, nil
}

func (g *Game) result() Result {
	return Result{
		Score:      g.Engine.Score,
		Difficulty: g.Engine.Difficulty,
		Lines:      g.Engine.Lines,
		HighScores: g.highScores,
	}
}
