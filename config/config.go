package config

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/strategy"
)

type Config struct {
	Board    BoardConfig    `mapstructure:"board"`
	Players  PlayersConfig  `mapstructure:"players"`
	Strategy StrategyConfig `mapstructure:"strategy"`
	Display  DisplayConfig  `mapstructure:"display"`
	Game     GameConfig     `mapstructure:"game"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

type BoardConfig struct {
	Columns int `mapstructure:"columns"`
	Rows    int `mapstructure:"rows"`
}

type PlayersConfig struct {
	// Humans is 0 (computer vs computer), 1 (human vs computer) or 2.
	Humans int `mapstructure:"humans"`
}

type StrategyConfig struct {
	Module string `mapstructure:"module"`
	// Levels is "#" for both seats or "#,#".
	Levels string `mapstructure:"levels"`
}

type DisplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Colors  string `mapstructure:"colors"`
	Plain   bool   `mapstructure:"plain"`
}

type GameConfig struct {
	// Seed for the first-player coin flip; 0 means time based.
	Seed int64 `mapstructure:"seed"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Seat describes how one player is built. An empty Module means a human.
type Seat struct {
	Player board.Player
	Module string
	Level  int
}

var ErrUsage = errors.New("usage error")

// Load parses args, an optional YAML file named by --config and CONNECT4_*
// environment variables, in increasing order of precedence for flags. It
// returns pflag.ErrHelp when help was requested.
func Load(args []string, stderr io.Writer) (*Config, error) {
	fs := pflag.NewFlagSet("connect4", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntP("players", "p", 1, "number of human players: 0 (computer-v-computer), 1 (human-v-computer), 2 (human-v-human)")
	fs.StringP("file", "f", strategy.DefaultModule, "computer strategy: a built-in name or a plugin .so path")
	fs.StringP("level", "l", strconv.Itoa(strategy.DefaultLevel), "computer level, # or #,# per player")
	fs.StringP("colors", "c", "", "player colors RRGGBB,RRGGBB")
	fs.BoolP("nographics", "n", false, "do not draw the board, only print the result")
	fs.Bool("plain", false, "draw the board without color")
	fs.Int("cols", board.DefaultColumns, "number of columns")
	fs.Int("rows", board.DefaultRows, "number of rows")
	fs.Int64("seed", 0, "random seed for the first player (0: time based)")
	fs.String("metrics-addr", "", "serve prometheus metrics on this address")
	fs.String("log-level", "warn", "log level")
	fs.String("log-format", "console", "log format: console or json")
	fs.String("config", "", "YAML config file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: connect4 <options>")
		fmt.Fprintln(stderr, "Options include:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}

	v := viper.New()
	bindings := map[string]string{
		"players.humans":  "players",
		"strategy.module": "file",
		"strategy.levels": "level",
		"display.colors":  "colors",
		"display.plain":   "plain",
		"board.columns":   "cols",
		"board.rows":      "rows",
		"game.seed":       "seed",
		"metrics.address": "metrics-addr",
		"log.level":       "log-level",
		"log.format":      "log-format",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, err
		}
	}
	// display.enabled is the negation of --nographics.
	v.SetDefault("display.enabled", true)
	if nographics, _ := fs.GetBool("nographics"); nographics {
		v.Set("display.enabled", false)
	}

	v.SetEnvPrefix("CONNECT4")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Players.Humans < 0 || c.Players.Humans > 2 {
		return fmt.Errorf("%w: players must be 0, 1 or 2, got %d", ErrUsage, c.Players.Humans)
	}
	if c.Board.Columns < 1 || c.Board.Rows < board.MinRows {
		return fmt.Errorf("%w: board must be at least 1x%d, got %dx%d", ErrUsage, board.MinRows, c.Board.Columns, c.Board.Rows)
	}
	if _, err := ParseLevels(c.Strategy.Levels); err != nil {
		return err
	}
	if c.Players.Humans < 2 && c.Strategy.Module == "" {
		return fmt.Errorf("%w: a computer player needs a strategy", ErrUsage)
	}
	return nil
}

// ParseLevels reads "#" (both players) or "#,#".
func ParseLevels(s string) ([2]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return [2]int{}, fmt.Errorf("%w: level %q has more than two values", ErrUsage, s)
	}
	var levels [2]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return [2]int{}, fmt.Errorf("%w: level %q: %v", ErrUsage, s, err)
		}
		if n < 1 {
			return [2]int{}, fmt.Errorf("%w: level must be at least 1, got %d", ErrUsage, n)
		}
		levels[i] = n
	}
	if len(parts) == 1 {
		levels[1] = levels[0]
	}
	return levels, nil
}

// Seats lays out both players. With one human, the human is player 1.
func (c *Config) Seats() [2]Seat {
	levels, _ := ParseLevels(c.Strategy.Levels)
	seats := [2]Seat{
		{Player: board.Player1, Module: c.Strategy.Module, Level: levels[0]},
		{Player: board.Player2, Module: c.Strategy.Module, Level: levels[1]},
	}
	switch c.Players.Humans {
	case 1:
		seats[0].Module = ""
	case 2:
		seats[0].Module = ""
		seats[1].Module = ""
	}
	return seats
}
