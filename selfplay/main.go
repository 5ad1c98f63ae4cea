// Command selfplay drives AI-vs-AI games against one or more running
// backend instances and tallies the results. One worker per backend
// address; each worker plays its games sequentially so a backend only
// ever hosts a single game at a time.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

type startRequest struct {
	BoardSize       int    `json:"board_size"`
	WinLength       int    `json:"win_length"`
	BlackType       int    `json:"black_type"`
	WhiteType       int    `json:"white_type"`
	BlackDifficulty string `json:"black_difficulty"`
	WhiteDifficulty string `json:"white_difficulty"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Winner  int    `json:"winner"`
	History []struct {
		ElapsedMs int64 `json:"elapsed_ms"`
	} `json:"history"`
}

type tally struct {
	games      atomic.Int64
	blackWins  atomic.Int64
	whiteWins  atomic.Int64
	draws      atomic.Int64
	totalMoves atomic.Int64
	moveTimeMs atomic.Int64
}

const playerTypeAI = 1

func main() {
	addrs := flag.String("addrs", "http://localhost:8080", "comma-separated backend base URLs, one worker each")
	games := flag.Int("games", 10, "total games to play")
	size := flag.Int("size", 15, "board size")
	winLength := flag.Int("win-length", 5, "stones in a row to win")
	black := flag.String("black", "hard", "black difficulty (easy|normal|hard)")
	white := flag.String("white", "hard", "white difficulty (easy|normal|hard)")
	gameTimeout := flag.Duration("game-timeout", 5*time.Minute, "per-game timeout")
	flag.Parse()
	log.SetPrefix("[selfplay] ")
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)

	backends := strings.Split(*addrs, ",")
	var remaining atomic.Int64
	remaining.Store(int64(*games))
	var results tally

	group, ctx := errgroup.WithContext(context.Background())
	for _, backend := range backends {
		backend := strings.TrimSpace(backend)
		group.Go(func() error {
			client := &http.Client{Timeout: 10 * time.Second}
			for remaining.Add(-1) >= 0 {
				if err := playGame(ctx, client, backend, *size, *winLength, *black, *white, *gameTimeout, &results); err != nil {
					return fmt.Errorf("%s: %w", backend, err)
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		log.Fatalf("arena aborted: %v", err)
	}

	played := results.games.Load()
	log.Printf("games=%d black_wins=%d white_wins=%d draws=%d",
		played, results.blackWins.Load(), results.whiteWins.Load(), results.draws.Load())
	if moves := results.totalMoves.Load(); moves > 0 {
		log.Printf("moves=%d mean_move_ms=%.1f", moves,
			float64(results.moveTimeMs.Load())/float64(moves))
	}
}

func playGame(ctx context.Context, client *http.Client, backend string, size, winLength int, black, white string, timeout time.Duration, results *tally) error {
	req := startRequest{
		BoardSize:       size,
		WinLength:       winLength,
		BlackType:       playerTypeAI,
		WhiteType:       playerTypeAI,
		BlackDifficulty: black,
		WhiteDifficulty: white,
	}
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	if err := postJSON(ctx, client, backend+"/api/start", body); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("game did not finish within %s", timeout)
		}
		status, err := fetchStatus(ctx, client, backend+"/api/status")
		if err != nil {
			return err
		}
		if status.Status == "running" || status.Status == "not_started" {
			continue
		}
		results.games.Add(1)
		switch status.Winner {
		case 1:
			results.blackWins.Add(1)
		case 2:
			results.whiteWins.Add(1)
		default:
			results.draws.Add(1)
		}
		for _, entry := range status.History {
			results.totalMoves.Add(1)
			results.moveTimeMs.Add(entry.ElapsedMs)
		}
		return nil
	}
}

func postJSON(ctx context.Context, client *http.Client, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	return nil
}

func fetchStatus(ctx context.Context, client *http.Client, url string) (statusResponse, error) {
	var status statusResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return status, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return status, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return status, fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	err = json.NewDecoder(resp.Body).Decode(&status)
	return status, err
}
