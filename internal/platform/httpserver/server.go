package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	councilengine "conclave/contexts/governance/council-engine"
	domainerrors "conclave/contexts/governance/council-engine/domain/errors"
	governancehttp "conclave/contexts/governance/council-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "conclave/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	governance councilengine.Module
}

func New(governance councilengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		governance: governance,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/governance/v1/members", s.handleAddMember)
	s.mux.HandleFunc("GET /api/governance/v1/members", s.handleRoster)
	s.mux.HandleFunc("POST /api/governance/v1/proposals", s.handlePropose)
	s.mux.HandleFunc("GET /api/governance/v1/proposals", s.handleListProposals)
	s.mux.HandleFunc("GET /api/governance/v1/proposals/{proposal_id}", s.handleGetProposal)
	s.mux.HandleFunc("GET /api/governance/v1/proposals/{proposal_id}/history", s.handleProposalHistory)
	s.mux.HandleFunc("POST /api/governance/v1/proposals/{proposal_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /api/governance/v1/proposals/{proposal_id}/close", s.handleCloseProposal)
	s.mux.HandleFunc("POST /api/governance/v1/proposals/{proposal_id}/execute", s.handleExecuteProposal)
	s.mux.HandleFunc("GET /api/governance/v1/ledger", s.handleLedger)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req governancehttp.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.governance.Handler.AddMemberHandler(r.Context(), req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.RosterHandler(r.Context())
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePropose(w http.ResponseWriter, r *http.Request) {
	var req governancehttp.ProposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.governance.Handler.ProposeHandler(r.Context(), req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.ListProposalsHandler(r.Context())
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.GetProposalHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProposalHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.ProposalHistoryHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req governancehttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.governance.Handler.CastVoteHandler(r.Context(), r.PathValue("proposal_id"), req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCloseProposal(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.CloseProposalHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExecuteProposal(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.ExecuteProposalHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.LedgerHandler(r.Context())
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeGovernanceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrUnknownMember):
		writeGovernanceError(w, http.StatusNotFound, "unknown_member", err.Error())
	case errors.Is(err, domainerrors.ErrUnknownProposal):
		writeGovernanceError(w, http.StatusNotFound, "unknown_proposal", err.Error())
	case errors.Is(err, domainerrors.ErrDuplicateMember):
		writeGovernanceError(w, http.StatusConflict, "duplicate_member", err.Error())
	case errors.Is(err, domainerrors.ErrDuplicateVote):
		writeGovernanceError(w, http.StatusConflict, "duplicate_vote", err.Error())
	case errors.Is(err, domainerrors.ErrProposalNotOpen):
		writeGovernanceError(w, http.StatusConflict, "proposal_not_open", err.Error())
	case errors.Is(err, domainerrors.ErrProposalNotClosed):
		writeGovernanceError(w, http.StatusConflict, "proposal_not_closed", err.Error())
	case errors.Is(err, domainerrors.ErrAmbiguousProposal):
		writeGovernanceError(w, http.StatusConflict, "ambiguous_proposal", err.Error())
	case errors.Is(err, domainerrors.ErrConflict):
		writeGovernanceError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domainerrors.ErrInsufficientEnergy):
		writeGovernanceError(w, http.StatusUnprocessableEntity, "insufficient_energy", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidMemberInput),
		errors.Is(err, domainerrors.ErrInvalidProposalInput),
		errors.Is(err, domainerrors.ErrInvalidVoteInput),
		errors.Is(err, domainerrors.ErrInvalidConfiguration):
		writeGovernanceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeGovernanceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGovernanceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, governancehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
