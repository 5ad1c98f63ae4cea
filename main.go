package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	Settings        GameSettings      `json:"settings"`
	Config          Config            `json:"config"`
	BoardSize       int               `json:"board_size"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	AiThinking      bool              `json:"ai_thinking"`
	History         []historyEntryDTO `json:"history"`
	WinningLine     []Move            `json:"winning_line"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type historyEntryDTO struct {
	X         int   `json:"x"`
	Y         int   `json:"y"`
	Player    int   `json:"player"`
	ElapsedMs int64 `json:"elapsed_ms"`
	IsAi      bool  `json:"is_ai"`
	Depth     int   `json:"depth"`
}

type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type moveResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

type threatsResponse struct {
	Black []Threat `json:"black"`
	White []Threat `json:"white"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()
	log.SetPrefix("[backend] ")
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)

	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx.Done())
	go runGameLoop(ctx, controller, hub)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})
	router.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		settings := controller.Settings()
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
		}
		if err := settings.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		controller.StartGame(settings)
		hub.broadcastReset <- resetFromController(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})
	router.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset(controller.Settings())
		hub.broadcastReset <- resetFromController(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})
	router.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var req moveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		accepted, reason := controller.ApplyHumanMove(Move{X: req.X, Y: req.Y})
		if accepted {
			hub.broadcastBoard <- boardFromController(controller)
			hub.broadcastStatus <- controllerStatus(controller)
		}
		writeJSON(w, http.StatusOK, moveResponse{Accepted: accepted, Reason: reason})
	})
	router.Get("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controller.Settings())
	})
	router.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		settings := controller.Settings()
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if err := settings.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		controller.Reset(settings)
		hub.broadcastReset <- resetFromController(controller)
		writeJSON(w, http.StatusOK, settings)
	})
	router.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})
	router.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		config := GetConfig()
		if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		configStore.Update(config)
		writeJSON(w, http.StatusOK, config)
	})
	router.Get("/api/threats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, threatsResponse{
			Black: controller.Threats(PlayerBlack),
			White: controller.Threats(PlayerWhite),
		})
	})
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	server := &http.Server{Addr: *addr, Handler: router}
	go func() {
		log.Printf("listening on %s", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// runGameLoop polls the controller and pushes board updates whenever a
// tick changed the state.
func runGameLoop(ctx context.Context, controller *GameController, hub *Hub) {
	interval := time.Duration(GetConfig().TickMs) * time.Millisecond
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if controller.Tick() && hub.HasClients() {
				hub.broadcastBoard <- boardFromController(controller)
				hub.broadcastStatus <- controllerStatus(controller)
			}
		}
	}
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 64)}
	hub.Register(client)
	client.sendJSON(wsMessage{Type: "board", Payload: mustMarshal(boardFromController(controller))})

	// Incoming move messages go through the pending-move pipeline and are
	// applied by the next game-loop tick.
	go func() {
		defer func() {
			hub.Unregister(client)
			conn.Close()
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg wsMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			if msg.Type != "move" {
				continue
			}
			var req moveRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				continue
			}
			controller.SubmitHumanMove(Move{X: req.X, Y: req.Y})
		}
	}()
	if err := writeWSWithHeartbeat(conn, client.send); err != nil {
		log.Printf("ws write: %v", err)
	}
	conn.Close()
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		Settings:        controller.Settings(),
		Config:          GetConfig(),
		BoardSize:       state.Board.Size(),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		AiThinking:      controller.AiThinking(),
		History:         historyToDTO(controller.History()),
		WinningLine:     append([]Move(nil), state.WinningLine...),
		TurnStartedAtMs: controller.TurnStartedAtMs(),
	}
}

func boardFromController(controller *GameController) boardPayload {
	state := controller.State()
	return boardPayload{
		Board:      boardToSlice(state.Board),
		NextPlayer: playerToInt(state.ToMove),
		Winner:     winnerFromStatus(state.Status),
		MoveCount:  state.MoveCount,
		Status:     statusToString(state.Status),
		AiThinking: controller.AiThinking(),
		History:    historyToDTO(controller.History()),
	}
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		BoardSize:   state.Board.Size(),
		NextPlayer:  playerToInt(state.ToMove),
		Status:      statusToString(state.Status),
		WinningLine: append([]Move(nil), state.WinningLine...),
	}
}

func boardToSlice(board Board) [][]int {
	size := board.Size()
	rows := make([][]int, size)
	for y := 0; y < size; y++ {
		rows[y] = make([]int, size)
		for x := 0; x < size; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellBlack:
		return 1
	case CellWhite:
		return 2
	default:
		return 0
	}
}

func playerToInt(player PlayerColor) int {
	if player == PlayerBlack {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusBlackWon:
		return 1
	case StatusWhiteWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryDTO{
			X:         entry.Move.X,
			Y:         entry.Move.Y,
			Player:    playerToInt(entry.Player),
			ElapsedMs: entry.ElapsedMs,
			IsAi:      entry.IsAi,
			Depth:     entry.Depth,
		})
	}
	return result
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
