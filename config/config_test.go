package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/strategy"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Board.Columns != board.DefaultColumns || cfg.Board.Rows != board.DefaultRows {
		t.Errorf("Expected a %dx%d board, got %dx%d", board.DefaultColumns, board.DefaultRows, cfg.Board.Columns, cfg.Board.Rows)
	}
	if cfg.Players.Humans != 1 {
		t.Errorf("Expected one human by default, got %d", cfg.Players.Humans)
	}
	if cfg.Strategy.Module != strategy.DefaultModule {
		t.Errorf("Expected default module %s, got %s", strategy.DefaultModule, cfg.Strategy.Module)
	}
	if !cfg.Display.Enabled {
		t.Error("Display should be enabled by default")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected warn log level, got %s", cfg.Log.Level)
	}

	seats := cfg.Seats()
	if seats[0].Module != "" {
		t.Error("Player 1 should be the human")
	}
	if seats[1].Module != strategy.DefaultModule || seats[1].Level != strategy.DefaultLevel {
		t.Errorf("Unexpected computer seat %+v", seats[1])
	}
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load([]string{"-p", "0", "-f", "greedy", "-l", "2,5", "-n", "--cols", "9", "--rows", "7", "--seed", "42"}, io.Discard)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Display.Enabled {
		t.Error("--nographics should disable the display")
	}
	if cfg.Board.Columns != 9 || cfg.Board.Rows != 7 {
		t.Errorf("Expected a 9x7 board, got %dx%d", cfg.Board.Columns, cfg.Board.Rows)
	}
	if cfg.Game.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Game.Seed)
	}

	seats := cfg.Seats()
	if seats[0].Module != "greedy" || seats[0].Level != 2 {
		t.Errorf("Unexpected seat 1 %+v", seats[0])
	}
	if seats[1].Module != "greedy" || seats[1].Level != 5 || seats[1].Player != board.Player2 {
		t.Errorf("Unexpected seat 2 %+v", seats[1])
	}
}

func TestLoad_TwoHumans(t *testing.T) {
	cfg, err := Load([]string{"--players=2"}, io.Discard)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for _, seat := range cfg.Seats() {
		if seat.Module != "" {
			t.Errorf("Expected both seats to be human, got %+v", seat)
		}
	}
}

func TestLoad_Help(t *testing.T) {
	if _, err := Load([]string{"-h"}, io.Discard); !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("Expected pflag.ErrHelp, got: %v", err)
	}
}

func TestLoad_UsageErrors(t *testing.T) {
	cases := [][]string{
		{"--bogus"},
		{"-p", "3"},
		{"-l", "0"},
		{"-l", "1,2,3"},
		{"-l", "x"},
		{"--rows", "3"},
		{"--cols", "0"},
		{"extra"},
	}
	for _, args := range cases {
		if _, err := Load(args, io.Discard); !errors.Is(err, ErrUsage) {
			t.Errorf("Expected ErrUsage for %v, got: %v", args, err)
		}
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connect4.yaml")
	content := "board:\n  columns: 8\nlog:\n  level: debug\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load([]string{"--config", path, "--rows", "5"}, io.Discard)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Board.Columns != 8 {
		t.Errorf("Expected columns from the file, got %d", cfg.Board.Columns)
	}
	if cfg.Board.Rows != 5 {
		t.Errorf("Expected rows from the flag, got %d", cfg.Board.Rows)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config %+v", cfg.Log)
	}

	if _, err := Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, io.Discard); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CONNECT4_STRATEGY_MODULE", "random")
	cfg, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Strategy.Module != "random" {
		t.Errorf("Expected the module from the environment, got %s", cfg.Strategy.Module)
	}
}

func TestParseLevels(t *testing.T) {
	levels, err := ParseLevels("3")
	if err != nil || levels != [2]int{3, 3} {
		t.Errorf("Expected [3 3], got %v, %v", levels, err)
	}
	levels, err = ParseLevels("1, 6")
	if err != nil || levels != [2]int{1, 6} {
		t.Errorf("Expected [1 6], got %v, %v", levels, err)
	}
}
