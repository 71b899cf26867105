// Package session provides the analysis state machine. A Session is the
// only writer of its State; renderers observe it through Subscribe.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fwojciec/pagelens"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Status is the state machine position of a Session.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

// String returns the lower case name of the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "idle"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is a snapshot of a Session.
type State struct {
	URL       string                   `json:"url"`
	Analysis  *pagelens.AnalysisResult `json:"analysis"`
	IsLoading bool                     `json:"isLoading"`
	Error     string                   `json:"error,omitempty"`
	Code      string                   `json:"code,omitempty"`
	Status    Status                   `json:"status"`
	RequestID string                   `json:"requestId,omitempty"`
}

// ObserverFunc receives every state the Session moves through.
type ObserverFunc func(state State)

// Session runs one analysis at a time through Extractor and Analyzer.
type Session struct {
	Extractor pagelens.ContentExtractor
	Analyzer  pagelens.Analyzer
	Logger    *slog.Logger

	// NewID returns request ids. Defaults to random UUIDs.
	NewID func() string

	inflight  *semaphore.Weighted
	mu        sync.RWMutex
	state     State
	observers []ObserverFunc
}

// New creates an idle Session.
func New(extractor pagelens.ContentExtractor, analyzer pagelens.Analyzer) *Session {
	return &Session{
		Extractor: extractor,
		Analyzer:  analyzer,
		Logger:    slog.New(slog.DiscardHandler),
		NewID:     uuid.NewString,
		inflight:  semaphore.NewWeighted(1),
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to be called after every state change.
func (s *Session) Subscribe(fn ObserverFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Submit analyzes rawURL and returns the terminal state. Pipeline failures
// are reported through State.Error. The returned error is non-nil only when
// another submission is still running, in which case state is untouched.
func (s *Session) Submit(ctx context.Context, rawURL string) (State, error) {
	if !s.inflight.TryAcquire(1) {
		return s.State(), pagelens.Errorf(pagelens.EBUSY, pagelens.MsgBusy)
	}
	defer s.inflight.Release(1)

	req := pagelens.AnalysisRequest{URL: rawURL}
	if err := req.Validate(); err != nil {
		return s.update(func(st *State) {
			st.URL = rawURL
			st.Error = pagelens.ErrorMessage(err)
			st.Code = pagelens.ErrorCode(err)
		}), nil
	}

	id := s.NewID()
	logger := s.Logger.With("request_id", id, "url", req.URL)

	s.update(func(st *State) {
		*st = State{
			URL:       req.URL,
			IsLoading: true,
			Status:    StatusLoading,
			RequestID: id,
		}
	})

	result, err := s.run(ctx, req.URL)
	if err != nil {
		logger.Error("analysis failed", "code", pagelens.ErrorCode(err), "err", err)
		return s.update(func(st *State) {
			st.IsLoading = false
			st.Status = StatusFailure
			st.Error = pagelens.ErrorMessage(err)
			st.Code = pagelens.ErrorCode(err)
		}), nil
	}

	logger.Info("analysis complete",
		"sibling_links", len(result.SiblingLinks),
		"stats", len(result.StatsAndKeyFacts),
	)
	return s.update(func(st *State) {
		st.IsLoading = false
		st.Status = StatusSuccess
		st.Analysis = result
	}), nil
}

func (s *Session) run(ctx context.Context, url string) (*pagelens.AnalysisResult, error) {
	content, err := s.Extractor.Extract(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.Analyzer.Analyze(ctx, content)
}

// update applies fn to the state and notifies observers with the result.
func (s *Session) update(fn func(st *State)) State {
	s.mu.Lock()
	fn(&s.state)
	state := s.state
	observers := make([]ObserverFunc, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o(state)
	}
	return state
}
