package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/qnkhuat/tetristerm/pkg"
	"github.com/qnkhuat/tetristerm/pkg/config"
	"github.com/qnkhuat/tetristerm/pkg/console"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/gui"
	"github.com/qnkhuat/tetristerm/pkg/scores"
	"github.com/qnkhuat/tetristerm/pkg/scores/sqlite"
)

type options struct {
	difficulty int
	name       string
	plain      bool
	logPath    string
	scoresPath string
	theme      string
	seed       int64
	logDebug   bool
	logVerbose bool
}

func (o options) logLevel() int {
	if o.logVerbose {
		return game.LogVerbose
	} else if o.logDebug {
		return game.LogDebug
	}
	return game.LogStandard
}

func parseFlags(args []string, output io.Writer, cfg config.Config) (options, error) {
	opts := options{
		logPath:    cfg.LogPath,
		scoresPath: cfg.ScoresPath,
		theme:      cfg.Theme,
	}

	fs := flag.NewFlagSet("tetristerm", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: tetristerm [options]\n\nKeys: A/D or arrows move, S or down drops, Q/E rotate, Esc quits\n\nOptions:\n")
		fs.PrintDefaults()
	}

	fs.IntVar(&opts.difficulty, "difficulty", 0, "how fast the pieces move down")
	fs.IntVar(&opts.difficulty, "d", 0, "shorthand for --difficulty")
	fs.StringVar(&opts.name, "name", "", "default name saved with the score")
	fs.StringVar(&opts.name, "n", "", "shorthand for --name")
	fs.BoolVar(&opts.plain, "plain", false, "draw with plain console output instead of the full screen interface")
	fs.StringVar(&opts.logPath, "log", opts.logPath, "path to log file")
	fs.StringVar(&opts.scoresPath, "scores", opts.scoresPath, "path to the high score database")
	fs.StringVar(&opts.theme, "theme", opts.theme, "color theme (basic, mono)")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed for piece selection (0 picks one)")
	fs.BoolVar(&opts.logDebug, "debug", false, "enable debug logging")
	fs.BoolVar(&opts.logVerbose, "verbose", false, "enable verbose logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(output, err)
		fs.Usage()
		return options{}, err
	}
	if opts.difficulty < 0 {
		err := fmt.Errorf("difficulty must not be negative, got %d", opts.difficulty)
		fmt.Fprintln(output, err)
		return options{}, err
	}

	return opts, nil
}

// parseArgs reads the environment config and the flags. Help is honored
// even when the environment is invalid.
func parseArgs(args []string, output io.Writer, load func() (config.Config, error)) (config.Config, options, error) {
	cfg, cfgErr := load()

	opts, err := parseFlags(args, output, cfg)
	if err != nil {
		return config.Config{}, options{}, err
	}
	if cfgErr != nil {
		fmt.Fprintf(output, "failed to load config: %s\n", cfgErr)
		return config.Config{}, options{}, cfgErr
	}

	return cfg, opts, nil
}

// defaultName substitutes a preset name when the player submits an empty one.
type defaultName struct {
	game.Port
	name string
}

func (p defaultName) InputName(ctx context.Context) (string, bool) {
	name, ok := p.Port.InputName(ctx)
	if ok && strings.TrimSpace(name) == "" {
		name = p.name
	}
	return name, ok
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, opts, err := parseArgs(args, os.Stderr, config.Load)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	} else if err != nil {
		return 2
	}

	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !tty {
		fmt.Fprintln(os.Stderr, "failed to start tetristerm: non-interactive terminals are not supported")
		return 1
	}

	pkg.InitLog(opts.logPath, "CLIENT: ")
	log.Println("New Client")

	theme, err := gui.LookupTheme(opts.theme)
	if err != nil {
		log.Printf("unknown theme %q, using %s", opts.theme, gui.ThemeBasic.Name)
		theme = gui.ThemeBasic
	}

	var store scores.Store
	db, err := sqlite.Open(opts.scoresPath)
	if err != nil {
		log.Printf("high scores disabled: %s", err)
	} else {
		defer db.Close()
		store = db
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gameOpts := game.Options{
		Difficulty:         opts.difficulty,
		Seed:               opts.seed,
		EscalationInterval: cfg.EscalationInterval,
		LogLevel:           opts.logLevel(),
	}

	var res game.Result
	if opts.plain {
		res, err = runConsole(ctx, cancel, store, gameOpts, opts.name)
	} else {
		res, err = runGUI(ctx, cancel, store, gameOpts, opts.name, theme)
	}

	if errors.Is(err, context.Canceled) {
		log.Printf("session cancelled with score %d", res.Score)
		return 0
	} else if err != nil {
		log.Printf("session failed: %s", err)
		fmt.Fprintf(os.Stderr, "failed to run tetristerm: %s\n", err)
		return 1
	}

	console.PrintSummary(os.Stdout, res)
	return 0
}

func newGame(port game.Port, name string, store scores.Store, opts game.Options) (*game.Game, error) {
	if name != "" {
		port = defaultName{Port: port, name: name}
	}

	return game.NewGame(port, store, opts)
}

func runGUI(ctx context.Context, cancel func(), store scores.Store, opts game.Options, name string, theme gui.Theme) (game.Result, error) {
	ui := gui.New(theme, cancel)

	g, err := newGame(ui, name, store, opts)
	if err != nil {
		return game.Result{}, err
	}

	var (
		res    game.Result
		runErr error
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)

		res, runErr = g.Run(ctx)
		ui.Stop()
	}()

	if err := ui.Run(); err != nil {
		cancel()
		<-finished
		return res, fmt.Errorf("run interface: %w", err)
	}

	// The interface may stop before the game loop notices.
	cancel()
	<-finished
	return res, runErr
}

func runConsole(ctx context.Context, cancel func(), store scores.Store, opts game.Options, name string) (game.Result, error) {
	c := console.New(os.Stdin, os.Stdout, cancel)

	g, err := newGame(c, name, store, opts)
	if err != nil {
		return game.Result{}, err
	}

	if err := c.Start(); err != nil {
		return game.Result{}, err
	}

	res, err := g.Run(ctx)
	if rerr := c.Restore(); rerr != nil {
		log.Printf("failed to restore terminal: %s", rerr)
	}
	fmt.Fprintln(os.Stdout)

	return res, err
}
