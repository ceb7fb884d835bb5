// Package web serves the task list and a command endpoint over HTTP.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/MihkelHunter/kif/internal/command"
	"github.com/MihkelHunter/kif/internal/todo"
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Server exposes one engine over HTTP. Requests are handled one at a time
// because the engine holds a single session.
type Server struct {
	mu     sync.Mutex
	engine *command.Engine
}

// NewServer creates a web server over e.
func NewServer(e *command.Engine) *Server {
	return &Server{engine: e}
}

// Routes returns the router.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleForm)
	mux.HandleFunc("GET /tasks", s.handleTasks)
	mux.HandleFunc("POST /command", s.handleCommand)
	return mux
}

// CommandRequest is the body of POST /command.
type CommandRequest struct {
	Line string `json:"line"`
}

// CommandResponse reports the reply to one command.
type CommandResponse struct {
	Reply  string `json:"reply"`
	Failed bool   `json:"failed"`
	Exit   bool   `json:"exit,omitempty"`
}

// TaskView is the JSON form of a task.
type TaskView struct {
	Position    int    `json:"position"`
	Kind        string `json:"kind"`
	Done        bool   `json:"done"`
	Description string `json:"description"`
	By          string `json:"by,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Text        string `json:"text"`
}

func newTaskView(pos int, t todo.Task) TaskView {
	v := TaskView{
		Position:    pos,
		Kind:        t.Kind.String(),
		Done:        t.Done,
		Description: t.Description,
		Text:        t.String(),
	}
	switch t.Kind {
	case todo.KindDeadline:
		v.By = t.Due.String()
	case todo.KindTimeRange:
		v.From, v.To = t.Start, t.End
	}
	return v
}

type indexData struct {
	Reply *command.Reply
	Tasks []todo.Task
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	tasks := s.engine.Service().Tasks()
	s.mu.Unlock()
	s.render(w, http.StatusOK, indexData{Tasks: tasks})
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	line := r.FormValue("line")

	s.mu.Lock()
	reply := s.engine.Handle(line)
	tasks := s.engine.Service().Tasks()
	s.mu.Unlock()

	status := http.StatusOK
	if reply.Failed() {
		status = http.StatusUnprocessableEntity
	}
	s.render(w, status, indexData{Reply: &reply, Tasks: tasks})
}

func (s *Server) handleTasks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	tasks := s.engine.Service().Tasks()
	s.mu.Unlock()

	views := make([]TaskView, 0, len(tasks))
	for i, t := range tasks {
		views = append(views, newTaskView(i+1, t))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	reply := s.engine.Handle(req.Line)
	s.mu.Unlock()

	status := http.StatusOK
	if reply.Failed() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, CommandResponse{Reply: reply.Text, Failed: reply.Failed(), Exit: reply.Exit})
}

func (s *Server) render(w http.ResponseWriter, status int, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("render index")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}
