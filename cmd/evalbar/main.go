package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"strings"

	"github.com/daystram/evalbar/bench"
	"github.com/daystram/evalbar/board"
	"github.com/daystram/evalbar/console"
	"github.com/daystram/evalbar/server"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", getenb("EVALBAR_PROFILE", false), "serve pprof endpoint")
	seed    = flag.Uint64("seed", getenu("EVALBAR_SEED", 1), "seed for random moves")

	serveAddr = flag.String("serve", getenv("EVALBAR_SERVE", ""), "serve the HTTP API on this address instead of the console")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	stepRun   = flag.Bool("step", false, "run step mode")
	stepLimit = flag.Int("step.limit", 500, "maximum plies in step mode")

	perftDepth    = flag.Int("perft", 0, fmt.Sprintf("run perft to the given depth, at most %d", bench.MaxDepth))
	perftParallel = flag.Bool("perft.parallel", getenb("EVALBAR_PERFT_PARALLEL", true), "run perft with one goroutine per move")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	err := realMain(flag.Args())
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

// realMain takes an optional FEN as the remaining arguments.
func realMain(args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	if *movegenRun {
		return movegen(fen, *movegenDraw)
	}
	if *stepRun {
		return step(fen, *seed, *stepLimit)
	}
	if *perftDepth > 0 {
		return perft(*perftDepth, fen, *perftParallel)
	}
	if *serveAddr != "" {
		return server.NewServer(&server.Config{
			Seed:   *seed,
			Logger: log.Println,
		}).Listen(*serveAddr)
	}

	return console.NewConsole(os.Stdin, os.Stdout, &console.Config{
		Seed:          *seed,
		ParallelPerft: *perftParallel,
	}).Run()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenu(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return def
}
