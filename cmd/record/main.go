package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	kifu "kifu/pkg/kifu"
)

// main walks a directory of USI move-list files and writes one parquet
// row per game, with the kifu notation rendered for every move.
func main() {
	inputDir := flag.String("input", "games", "input directory for .usi move-list files")
	outputPath := flag.String("output", "records.parquet", "output parquet file")
	workers := flag.Int("workers", 0, "number of parallel workers (0=NumCPU)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	var cfg kifu.Config
	if cfgPath, root, err := kifu.FindConfigPath(); err != nil {
		log.Warn().Err(err).Msg("using default config")
	} else {
		cfg, err = kifu.LoadConfig(cfgPath)
		if err != nil {
			fatal(err)
		}
		if err := os.Chdir(root); err != nil {
			fatal(err)
		}
	}
	parallel := cfg.Parallel
	if parallel <= 0 {
		parallel = 4
	}
	style := cfg.NumeralStyle()

	start := time.Now()

	paths := make(chan string, *workers*4)
	records := make(chan kifu.GameRecord, *workers*4)
	var processed, errCount atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				record, err := buildRecord(path, style)
				if err != nil {
					log.Warn().Str("path", path).Err(err).Msg("skipping game")
					errCount.Add(1)
					continue
				}
				records <- record
				processed.Add(1)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(records)
	}()

	feedErr := make(chan error, 1)
	go func() {
		feedErr <- feedFiles(*inputDir, paths)
	}()

	if err := kifu.WriteParquet(*outputPath, records, parallel); err != nil {
		fatal(err)
	}
	if err := <-feedErr; err != nil {
		fatal(err)
	}

	log.Info().
		Int64("games", processed.Load()).
		Int64("errors", errCount.Load()).
		Dur("elapsed", time.Since(start).Round(time.Millisecond)).
		Msg("done")
}

// feedFiles streams .usi file paths into ch and closes it when the walk
// finishes.
func feedFiles(inputDir string, ch chan<- string) error {
	defer close(ch)
	return filepath.WalkDir(inputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".usi") {
			return nil
		}
		ch <- path
		return nil
	})
}

// buildRecord reads one move-list file and replays it from the even
// start position. The file may start with an "sfen ..." line for games
// from an arbitrary position.
func buildRecord(path string, style kifu.NumeralStyle) (kifu.GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return kifu.GameRecord{}, err
	}
	defer f.Close()

	start := kifu.StartPosition()
	var moves []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "sfen ") {
			pos, err := kifu.PositionFromSFEN(line)
			if err != nil {
				return kifu.GameRecord{}, err
			}
			start = pos
			continue
		}
		moves = append(moves, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return kifu.GameRecord{}, err
	}

	gameID := strings.TrimSuffix(filepath.Base(path), ".usi")
	return kifu.BuildGameRecord(gameID, start, moves, style)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
