package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/iamasit07/connect4-ai/internal/config"
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

// one game to play
type battleTask struct {
	gameIndex int
	seed      int64
}

type battleResult struct {
	GameIndex int            `json:"game"`
	Outcome   domain.Outcome `json:"outcome"`
	Moves     []int          `json:"moves"`
	Board     string         `json:"board"`
	Duration  time.Duration  `json:"durationNs"`
	Err       string         `json:"error,omitempty"`
}

type side struct {
	difficulty bot.Difficulty
	depth      int
}

func main() {
	games := flag.Int("games", 10, "number of games to play")
	workers := flag.Int("workers", runtime.NumCPU(), "number of parallel workers")
	playerDifficulty := flag.String("player", "hard", "difficulty for the side moving first (easy, medium, hard)")
	opponentDifficulty := flag.String("opponent", "hard", "difficulty for the side moving second")
	playerDepth := flag.Int("player-depth", 0, "search depth for the first side, 0 uses SEARCH_DEPTH")
	opponentDepth := flag.Int("opponent-depth", 0, "search depth for the second side, 0 uses SEARCH_DEPTH")
	tieBreak := flag.String("tie-break", "random", "tie-break policy: first or random")
	seed := flag.Int64("seed", 1, "base random seed")
	start := flag.String("board", "", "starting position, six lines top row first ('.', 'X', 'O')")
	jsonOut := flag.Bool("json", false, "print every game as a JSON line")
	flag.Parse()

	config.LoadEnvFile()
	cfg := config.LoadConfig()

	policy, err := bot.ParseTieBreak(*tieBreak)
	if err != nil {
		log.Fatal(err)
	}

	initial := domain.NewBoard()
	if *start != "" {
		initial, err = domain.ParseBoard(*start)
		if err != nil {
			log.Fatalf("Invalid -board: %v", err)
		}
	}

	sides := map[domain.PlayerID]side{
		domain.Player:   {bot.ParseDifficulty(*playerDifficulty), *playerDepth},
		domain.Opponent: {bot.ParseDifficulty(*opponentDifficulty), *opponentDepth},
	}
	for id, s := range sides {
		if s.depth <= 0 {
			s.depth = cfg.SearchDepth
			sides[id] = s
		}
	}

	tasks := make(chan battleTask, *games)
	results := make(chan battleResult, *games)

	var wg sync.WaitGroup
	for i := 0; i < max(*workers, 1); i++ {
		wg.Add(1)
		go worker(tasks, results, cfg, policy, sides, initial, &wg)
	}

	for i := 0; i < *games; i++ {
		tasks <- battleTask{gameIndex: i, seed: *seed + int64(i)}
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	wins := map[domain.PlayerID]int{}
	draws, failed := 0, 0
	encoder := json.NewEncoder(os.Stdout)
	for res := range results {
		if *jsonOut {
			if err := encoder.Encode(res); err != nil {
				log.Printf("Error encoding game %d: %v", res.GameIndex, err)
			}
		}
		switch {
		case res.Err != "":
			failed++
		case res.Outcome.Status == domain.StatusDraw:
			draws++
		default:
			wins[res.Outcome.Winner]++
		}
	}

	fmt.Printf("games: %d  player(%s): %d  opponent(%s): %d  draws: %d  errors: %d\n",
		*games, sides[domain.Player].difficulty, wins[domain.Player],
		sides[domain.Opponent].difficulty, wins[domain.Opponent], draws, failed)
}

// worker owns its own engines, so each game is reproducible from its seed.
func worker(tasks <-chan battleTask, results chan<- battleResult, cfg *config.Config, policy bot.TieBreak,
	sides map[domain.PlayerID]side, initial domain.Board, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range tasks {
		services := make(map[domain.PlayerID]*game.Service, len(sides))
		for id, s := range sides {
			opts := cfg.EngineOptions()
			opts.Depth = s.depth
			opts.MaxDepth = max(opts.MaxDepth, s.depth)
			opts.TieBreak = policy
			opts.Seed = task.seed*2 + int64(id)
			services[id] = game.NewService(bot.NewEngine(opts), nil, 0)
		}
		results <- playGame(task.gameIndex, initial, services, sides)
	}
}

func playGame(index int, board domain.Board, services map[domain.PlayerID]*game.Service, sides map[domain.PlayerID]side) battleResult {
	started := time.Now()
	res := battleResult{GameIndex: index}

	turn := domain.Player
	if board.MoveCount()%2 == 1 {
		turn = domain.Opponent
	}

	ctx := context.Background()
	for {
		svc := services[turn]
		outcome := svc.CheckOutcome(board)
		if outcome.IsFinished() {
			res.Outcome = outcome
			break
		}

		move, err := svc.PlayFor(ctx, board, turn, sides[turn].difficulty)
		if err == nil {
			_, err = svc.ApplyMove(&board, move.Column, turn)
		}
		if err != nil {
			res.Err = err.Error()
			break
		}
		res.Moves = append(res.Moves, move.Column)
		turn = turn.Other()
	}

	res.Board = board.String()
	res.Duration = time.Since(started)
	return res
}
