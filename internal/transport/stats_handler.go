package transport

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rieminer7000/internal/miner"
)

// StatsResponse is the /stats document.
type StatsResponse struct {
	ElapsedSeconds      float64 `json:"elapsedSeconds"`
	Segments            uint64  `json:"segments"`
	StaleSegments       uint64  `json:"staleSegments"`
	CandidatesQueued    uint64  `json:"candidatesQueued"`
	CandidatesVerified  uint64  `json:"candidatesVerified"`
	CandidatesPerSecond float64 `json:"candidatesPerSecond"`
	StaleCandidates     uint64  `json:"staleCandidates"`
	Primes              uint64  `json:"primes"`
	VerifyFailures      uint64  `json:"verifyFailures"`
	QueueLength         int     `json:"queueLength"`
	// Tuples[i] is the number of runs reaching length i+1.
	Tuples                []uint64 `json:"tuples"`
	Ratio                 float64  `json:"ratio"`
	EstimatedTupleSeconds float64  `json:"estimatedTupleSeconds"`
	JobsInstalled         uint64   `json:"jobsInstalled"`
	Supersessions         uint64   `json:"supersessions"`
	StaleResults          uint64   `json:"staleResults"`
	ResultsReported       uint64   `json:"resultsReported"`
	Submitted             uint64   `json:"submitted"`
	SubmitFailed          uint64   `json:"submitFailed"`
}

// NewStatsResponse derives the document from a snapshot. tupleLength is the
// length used for the time estimate.
func NewStatsResponse(s miner.Snapshot, tupleLength int) StatsResponse {
	tuples := make([]uint64, 0, len(s.Runs))
	for n := 1; n < len(s.Runs); n++ {
		tuples = append(tuples, s.AtLeast(n))
	}
	return StatsResponse{
		ElapsedSeconds:        s.Elapsed.Seconds(),
		Segments:              s.Segments,
		StaleSegments:         s.StaleSegments,
		CandidatesQueued:      s.CandidatesQueued,
		CandidatesVerified:    s.CandidatesVerified,
		CandidatesPerSecond:   s.CandidatesPerSecond(),
		StaleCandidates:       s.StaleCandidates,
		Primes:                s.Primes,
		VerifyFailures:        s.VerifyFailures,
		QueueLength:           s.QueueLength,
		Tuples:                tuples,
		Ratio:                 s.Ratio(),
		EstimatedTupleSeconds: s.EstimatedTupleTime(tupleLength).Seconds(),
		JobsInstalled:         s.Coordinator.JobsInstalled,
		Supersessions:         s.Coordinator.Supersessions,
		StaleResults:          s.Coordinator.StaleResults,
		ResultsReported:       s.Coordinator.ResultsReported,
		Submitted:             s.Coordinator.Submitted,
		SubmitFailed:          s.Coordinator.SubmitFailed,
	}
}

// StatsHandler serves the current statistics as JSON.
type StatsHandler struct {
	logger      *zap.Logger
	source      StatsSource
	tupleLength int
}

// NewStatsHandler returns a StatsHandler instance.
func NewStatsHandler(logger *zap.Logger, source StatsSource, tupleLength int) *StatsHandler {
	return &StatsHandler{logger: logger, source: source, tupleLength: tupleLength}
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(NewStatsResponse(h.source.Stats(), h.tupleLength)); err != nil {
		h.logger.Warn("write stats response", zap.Error(err))
	}
}
