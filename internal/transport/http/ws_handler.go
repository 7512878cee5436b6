// Package http exposes the quiz engine to a reactive web page over a
// websocket. The handler holds no quiz logic: it builds a session per
// connection, forwards answers into it, and renders its outputs.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"ela-quiz-service/internal/domain"
	"ela-quiz-service/internal/session"
	"ela-quiz-service/internal/translate"
)

// BankSource yields validated banks by id (a cached repository in practice).
type BankSource interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

type WSHandler struct {
	banks           BankSource
	resolver        *translate.Resolver
	defaultLanguage string
	upgrader        websocket.Upgrader
}

func NewWSHandler(banks BankSource, resolver *translate.Resolver, defaultLanguage string) *WSHandler {
	return &WSHandler{
		banks:           banks,
		resolver:        resolver,
		defaultLanguage: defaultLanguage,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Index int `json:"index"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
	// Recoverable marks in-session errors (bad index) the client should
	// re-prompt for, as opposed to setup failures that end the connection.
	Recoverable bool `json:"recoverable"`
}

type sessionPayload struct {
	BankID    string `json:"bankId"`
	Title     string `json:"title"`
	Criterion string `json:"criterion"`
	Language  string `json:"language"`
	Total     int    `json:"total"`
}

type questionPayload struct {
	Position   int      `json:"position"`
	Total      int      `json:"total"`
	QuestionID int      `json:"questionId"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
	Passage    string   `json:"passage,omitempty"`
	Prompt     string   `json:"prompt"`
	Choices    []string `json:"choices"`
}

type answerResultPayload struct {
	QuestionID    int          `json:"questionId"`
	Correct       bool         `json:"correct"`
	CorrectIndex  int          `json:"correctIndex"`
	CorrectChoice string       `json:"correctChoice"`
	Explanation   string       `json:"explanation,omitempty"`
	Score         domain.Score `json:"score"`
}

type completedPayload struct {
	Score        domain.Score                           `json:"score"`
	Accuracy     float64                                `json:"accuracy"`
	ByTopic      map[string]domain.GroupScore           `json:"byTopic"`
	ByDifficulty map[domain.Difficulty]domain.GroupScore `json:"byDifficulty"`
}

// ServeWS upgrades the request and runs one quiz session over the connection.
// Reads and writes stay on this goroutine, so no write locking is needed.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	bankID := query.Get("bank")
	if bankID == "" {
		http.Error(w, "missing bank", http.StatusBadRequest)
		return
	}
	language := query.Get("lang")
	if language == "" {
		language = h.defaultLanguage
	}
	criterion, err := criterionFromQuery(query.Get("topic"), query.Get("difficulty"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	bank, err := h.banks.GetBank(ctx, bankID)
	if err != nil {
		writeError(conn, err.Error(), false)
		return
	}

	quiz := session.New()
	if err := quiz.Start(bank, criterion); err != nil {
		// Empty selection: tell the client to offer another criterion.
		writeError(conn, err.Error(), errors.Is(err, domain.ErrEmptySelection))
		return
	}

	score := quiz.Score()
	if err := conn.WriteJSON(outboundMessage[sessionPayload]{Type: "session", Payload: sessionPayload{
		BankID:    bankID,
		Title:     bank.Metadata.Title,
		Criterion: criterion.String(),
		Language:  language,
		Total:     score.Total,
	}}); err != nil {
		return
	}
	if !h.sendCurrentQuestion(conn, quiz) {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(conn, "invalid answer payload", true)
				continue
			}
			if done := h.handleAnswer(ctx, conn, quiz, language, payload.Index); done {
				return
			}
		default:
			writeError(conn, "unsupported message type", true)
		}
	}
}

// handleAnswer submits one answer and reports true when the session finished.
func (h *WSHandler) handleAnswer(ctx context.Context, conn *websocket.Conn, quiz *session.Session, language string, index int) bool {
	question, ok := quiz.CurrentQuestion()
	if !ok {
		writeError(conn, domain.ErrSessionNotActive.Error(), false)
		return true
	}

	record, err := quiz.SubmitAnswer(index)
	if err != nil {
		var badIndex *domain.InvalidAnswerIndexError
		if errors.As(err, &badIndex) {
			writeError(conn, badIndex.Error(), true)
			return false
		}
		writeError(conn, err.Error(), false)
		return true
	}

	explanation := ""
	if h.resolver != nil {
		explanation = h.resolver.Resolve(ctx, question, language)
	} else {
		explanation = question.Explanation
	}

	if err := conn.WriteJSON(outboundMessage[answerResultPayload]{Type: "answerResult", Payload: answerResultPayload{
		QuestionID:    record.QuestionID,
		Correct:       record.IsCorrect,
		CorrectIndex:  question.CorrectAnswer,
		CorrectChoice: question.Choices[question.CorrectAnswer-1],
		Explanation:   explanation,
		Score:         quiz.Score(),
	}}); err != nil {
		return true
	}

	if quiz.State() == session.StateCompleted {
		score := quiz.Score()
		_ = conn.WriteJSON(outboundMessage[completedPayload]{Type: "completed", Payload: completedPayload{
			Score:        score,
			Accuracy:     score.Accuracy(),
			ByTopic:      quiz.BreakdownByTopic(),
			ByDifficulty: quiz.BreakdownByDifficulty(),
		}})
		return true
	}
	return !h.sendCurrentQuestion(conn, quiz)
}

func (h *WSHandler) sendCurrentQuestion(conn *websocket.Conn, quiz *session.Session) bool {
	question, ok := quiz.CurrentQuestion()
	if !ok {
		return false
	}
	position, total := quiz.Position()
	err := conn.WriteJSON(outboundMessage[questionPayload]{Type: "question", Payload: questionPayload{
		Position:   position,
		Total:      total,
		QuestionID: question.ID,
		Topic:      question.Topic,
		Difficulty: string(question.Difficulty),
		Passage:    question.Passage,
		Prompt:     question.Prompt,
		Choices:    question.Choices,
	}})
	return err == nil
}

func criterionFromQuery(topic, difficulty string) (domain.Criterion, error) {
	if topic != "" && difficulty != "" {
		return domain.Criterion{}, errors.New("topic and difficulty are mutually exclusive")
	}
	switch {
	case topic != "":
		return domain.ByTopic(topic), nil
	case difficulty != "":
		return domain.ByDifficulty(difficulty), nil
	default:
		return domain.AllQuestions(), nil
	}
}

func writeError(conn *websocket.Conn, message string, recoverable bool) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{
		Message:     message,
		Recoverable: recoverable,
	}})
}
