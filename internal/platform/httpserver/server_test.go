package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	councilengine "conclave/contexts/governance/council-engine"
	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/ports"
	governancehttp "conclave/contexts/governance/council-engine/transport/http"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, ports.EventEnvelope) error {
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	module, err := councilengine.NewInMemoryModule(council.DefaultConfig(), nopPublisher{}, nil)
	if err != nil {
		t.Fatalf("new module failed: %v", err)
	}
	return New(module, nil, ":0")
}

func doJSON(t *testing.T, s *Server, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	s.mux.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(recorder.Body).Decode(&out); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return out
}

func TestGovernanceRoutesHappyPath(t *testing.T) {
	s := newTestServer(t)

	memberIDs := make([]string, 0, 2)
	for _, name := range []string{"alice", "bob"} {
		recorder := doJSON(t, s, http.MethodPost, "/api/governance/v1/members", governancehttp.AddMemberRequest{
			Name:          name,
			InitialEnergy: 100,
		})
		if recorder.Code != http.StatusCreated {
			t.Fatalf("add member status %d: %s", recorder.Code, recorder.Body.String())
		}
		member := decodeBody[governancehttp.MemberResponse](t, recorder)
		memberIDs = append(memberIDs, member.MemberID)
	}

	recorder := doJSON(t, s, http.MethodPost, "/api/governance/v1/proposals", governancehttp.ProposeRequest{
		Title: "ship it",
		Risk:  "low",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("propose status %d: %s", recorder.Code, recorder.Body.String())
	}
	proposal := decodeBody[governancehttp.ProposeResponse](t, recorder)

	for _, memberID := range memberIDs {
		recorder = doJSON(t, s, http.MethodPost,
			fmt.Sprintf("/api/governance/v1/proposals/%s/votes", proposal.ProposalID),
			governancehttp.CastVoteRequest{MemberID: memberID, Choice: "for"})
		if recorder.Code != http.StatusCreated {
			t.Fatalf("vote status %d: %s", recorder.Code, recorder.Body.String())
		}
	}

	recorder = doJSON(t, s, http.MethodPost,
		fmt.Sprintf("/api/governance/v1/proposals/%s/close", proposal.ProposalID), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("close status %d: %s", recorder.Code, recorder.Body.String())
	}
	closed := decodeBody[governancehttp.CloseProposalResponse](t, recorder)
	if closed.Outcome != "passed" {
		t.Fatalf("expected passed, got %s", closed.Outcome)
	}

	recorder = doJSON(t, s, http.MethodGet, "/api/governance/v1/members", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("roster status %d", recorder.Code)
	}
	roster := decodeBody[governancehttp.RosterResponse](t, recorder)
	if len(roster.Members) != 2 || roster.LastOutcome != "passed" {
		t.Fatalf("unexpected roster: %+v", roster)
	}

	recorder = doJSON(t, s, http.MethodGet, "/api/governance/v1/ledger", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("ledger status %d", recorder.Code)
	}
	ledger := decodeBody[governancehttp.LedgerResponse](t, recorder)
	// 2 adds + 1 create + 2 votes + 1 close.
	if len(ledger.Events) != 6 {
		t.Fatalf("expected 6 ledger events, got %d", len(ledger.Events))
	}

	recorder = doJSON(t, s, http.MethodGet,
		fmt.Sprintf("/api/governance/v1/proposals/%s/history", proposal.ProposalID), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("history status %d", recorder.Code)
	}
	history := decodeBody[governancehttp.LedgerResponse](t, recorder)
	if len(history.Events) != 4 {
		t.Fatalf("expected 4 history events, got %d", len(history.Events))
	}
}

func TestGovernanceErrorStatusMapping(t *testing.T) {
	s := newTestServer(t)

	recorder := doJSON(t, s, http.MethodPost, "/api/governance/v1/members", governancehttp.AddMemberRequest{
		Name:          "alice",
		InitialEnergy: 10,
	})
	member := decodeBody[governancehttp.MemberResponse](t, recorder)

	recorder = doJSON(t, s, http.MethodPost, "/api/governance/v1/proposals", governancehttp.ProposeRequest{
		Title: "target",
		Risk:  "high",
	})
	proposal := decodeBody[governancehttp.ProposeResponse](t, recorder)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{
			name:   "unknown proposal is 404",
			method: http.MethodGet,
			path:   "/api/governance/v1/proposals/zzz",
			status: http.StatusNotFound,
			code:   "unknown_proposal",
		},
		{
			name:   "unknown member is 404",
			method: http.MethodPost,
			path:   fmt.Sprintf("/api/governance/v1/proposals/%s/votes", proposal.ProposalID),
			body:   governancehttp.CastVoteRequest{MemberID: "ghost", Choice: "for"},
			status: http.StatusNotFound,
			code:   "unknown_member",
		},
		{
			name:   "invalid choice is 400",
			method: http.MethodPost,
			path:   fmt.Sprintf("/api/governance/v1/proposals/%s/votes", proposal.ProposalID),
			body:   governancehttp.CastVoteRequest{MemberID: member.MemberID, Choice: "maybe"},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
		{
			name:   "invalid risk is 400",
			method: http.MethodPost,
			path:   "/api/governance/v1/proposals",
			body:   governancehttp.ProposeRequest{Title: "x", Risk: "extreme"},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
		{
			name:   "execute before close is 409",
			method: http.MethodPost,
			path:   fmt.Sprintf("/api/governance/v1/proposals/%s/execute", proposal.ProposalID),
			status: http.StatusConflict,
			code:   "proposal_not_closed",
		},
		{
			name:   "duplicate member id is 409",
			method: http.MethodPost,
			path:   "/api/governance/v1/members",
			body:   governancehttp.AddMemberRequest{MemberID: member.MemberID, Name: "clone", InitialEnergy: 10},
			status: http.StatusConflict,
			code:   "duplicate_member",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := doJSON(t, s, tc.method, tc.path, tc.body)
			if recorder.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, recorder.Code, recorder.Body.String())
			}
			errResp := decodeBody[governancehttp.ErrorResponse](t, recorder)
			if errResp.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, errResp.Code)
			}
		})
	}

	// Vote cost exceeds remaining energy: 422.
	recorder = doJSON(t, s, http.MethodPost,
		fmt.Sprintf("/api/governance/v1/proposals/%s/votes", proposal.ProposalID),
		governancehttp.CastVoteRequest{MemberID: member.MemberID, Choice: "for"})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("first vote status %d: %s", recorder.Code, recorder.Body.String())
	}
	second := doJSON(t, s, http.MethodPost, "/api/governance/v1/proposals", governancehttp.ProposeRequest{
		Title: "another",
		Risk:  "low",
	})
	another := decodeBody[governancehttp.ProposeResponse](t, second)
	recorder = doJSON(t, s, http.MethodPost,
		fmt.Sprintf("/api/governance/v1/proposals/%s/votes", another.ProposalID),
		governancehttp.CastVoteRequest{MemberID: member.MemberID, Choice: "for"})
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for depleted member, got %d: %s", recorder.Code, recorder.Body.String())
	}
}
