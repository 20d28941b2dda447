package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/assemble"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/config"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/pinyin"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/repertoire"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/scheme"
)

// Function names served by Engine.Handlers.
const (
	FuncAnalyze  = "给出部件分析"
	FuncEncode   = "encode"
	FuncReadings = "readings"
	FuncFilter   = "filter"
)

// Engine bundles what one run needs: the repertoire, a scheme analyzer and
// an assembler built from the same config.
type Engine struct {
	Config     *config.Config
	Repertoire *repertoire.Repertoire
	Analyzer   *scheme.Analyzer
	Assembler  *assemble.Assembler
	Source     *pinyin.Source
}

// NewEngine builds an engine for cfg over rep.
func NewEngine(cfg *config.Config, rep *repertoire.Repertoire) (*Engine, error) {
	an, err := scheme.NewAnalyzer(rep, cfg.SchemeOptions())
	if err != nil {
		return nil, fmt.Errorf("building analyzer: %w", err)
	}
	as, err := assemble.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("building assembler: %w", err)
	}
	return &Engine{
		Config:     cfg,
		Repertoire: rep,
		Analyzer:   an,
		Assembler:  as,
		Source:     pinyin.NewSource(),
	}, nil
}

// Fork returns an engine with its own analyzer memo.
func (e *Engine) Fork() *Engine {
	f := *e
	f.Analyzer = e.Analyzer.Fork()
	return &f
}

// Readings returns the repertoire's readings of char, or go-pinyin's when
// it records none.
func (e *Engine) Readings(char string) []chai.Reading {
	return e.Source.Lookup(e.Repertoire.Readings(char), char)
}

// Character pairs an analysis with the readings of its character.
func (e *Engine) Character(a scheme.Analysis) assemble.Character {
	return assemble.Character{Char: a.Char, Roots: a.Roots, Readings: e.Readings(a.Char)}
}

// EncodeChar analyzes char and returns its codes.
func (e *Engine) EncodeChar(char string) ([]assemble.CharCode, error) {
	a, err := e.Analyzer.Analyze(char)
	if err != nil {
		return nil, err
	}
	return e.Assembler.EncodeChar(e.Character(a))
}

// Handlers exposes the engine's operations to a Worker. The handlers share
// e's analyzer, so they belong to a single worker.
func (e *Engine) Handlers() map[string]Handler {
	return map[string]Handler{
		FuncAnalyze: func(_ context.Context, args []json.RawMessage) (any, error) {
			var char string
			if err := Arg(args, 0, &char); err != nil {
				return nil, err
			}
			return e.Analyzer.Analyze(char)
		},
		FuncEncode: func(_ context.Context, args []json.RawMessage) (any, error) {
			var char string
			if err := Arg(args, 0, &char); err != nil {
				return nil, err
			}
			return e.EncodeChar(char)
		},
		FuncReadings: func(_ context.Context, args []json.RawMessage) (any, error) {
			var char string
			if err := Arg(args, 0, &char); err != nil {
				return nil, err
			}
			return e.Readings(char), nil
		},
		FuncFilter: func(_ context.Context, args []json.RawMessage) (any, error) {
			var name string
			if err := Arg(args, 0, &name); err != nil {
				return nil, err
			}
			set, err := repertoire.ParseSet(name)
			if err != nil {
				return nil, chai.Configurationf("", "%w", err)
			}
			return e.Repertoire.Filter(set), nil
		},
	}
}

// Serve starts a worker over a fork of e.
func (e *Engine) Serve() *Worker {
	return New(e.Fork().Handlers())
}
