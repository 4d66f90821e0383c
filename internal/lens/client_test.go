package lens

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lenscope/lenscope/internal/domain"
)

// graphqlStub answers every POST with the given data payload and records
// the decoded request for assertions.
type graphqlStub struct {
	t        *testing.T
	data     string
	status   int
	lastBody map[string]any
}

func (s *graphqlStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.t.Fatalf("bad request body: %v", err)
		}
		s.lastBody = body

		if s.status != 0 {
			w.WriteHeader(s.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(s.data))
	}
}

func (s *graphqlStub) variables() map[string]any {
	vars, _ := s.lastBody["variables"].(map[string]any)
	return vars
}

func newTestClient(t *testing.T, stub *graphqlStub) *Client {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "0xapp", nil)
}

func TestQueryPostsForwardsCursor(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"posts":{
		"items":[
			{"id":"p1","author":{"address":"0xa"},"metadata":{"content":"hello"}},
			{"id":"p2","author":{"address":"0xb"},"metadata":{"content":"world"}}
		],
		"pageInfo":{"next":"tok2"}
	}}}`}
	c := newTestClient(t, stub)

	page, err := c.QueryPosts(context.Background(), domain.PostFilter{
		Authors:  []string{"0xa"},
		PageSize: domain.PageSizeTen,
	}, "tok1")
	if err != nil {
		t.Fatalf("QueryPosts: %v", err)
	}

	if len(page.Items) != 2 || page.Items[0].ID != "p1" {
		t.Errorf("unexpected items: %+v", page.Items)
	}
	if page.NextCursor != "tok2" {
		t.Errorf("NextCursor = %q, want tok2", page.NextCursor)
	}

	request, _ := stub.variables()["request"].(map[string]any)
	if request["cursor"] != "tok1" {
		t.Errorf("request cursor = %v, want tok1", request["cursor"])
	}
	if request["pageSize"] != "TEN" {
		t.Errorf("request pageSize = %v, want TEN", request["pageSize"])
	}
}

func TestQueryPostsOmitsEmptyCursor(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"posts":{"items":[],"pageInfo":{"next":""}}}}`}
	c := newTestClient(t, stub)

	if _, err := c.QueryPosts(context.Background(), domain.PostFilter{}, ""); err != nil {
		t.Fatalf("QueryPosts: %v", err)
	}

	request, _ := stub.variables()["request"].(map[string]any)
	if _, present := request["cursor"]; present {
		t.Error("empty cursor was sent in the request")
	}
}

func TestQueryAccountNotFound(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"account":null}}`}
	c := newTestClient(t, stub)

	_, err := c.QueryAccount(context.Background(), "", "nosuchname")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveHandleUnknown(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"account":null}}`}
	c := newTestClient(t, stub)

	_, err := c.ResolveHandle(context.Background(), "nosuchname")
	if !errors.Is(err, domain.ErrHandleUnknown) {
		t.Errorf("err = %v, want ErrHandleUnknown", err)
	}
}

func TestResolveHandleReturnsAddress(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"account":{
		"address":"0xabc","username":{"localName":"alice","namespace":"lens"}
	}}}`}
	c := newTestClient(t, stub)

	addr, err := c.ResolveHandle(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ResolveHandle: %v", err)
	}
	if addr != "0xabc" {
		t.Errorf("address = %q, want 0xabc", addr)
	}
}

func TestMutationRequiresToken(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{}}`}
	c := newTestClient(t, stub)

	err := c.Like(context.Background(), "p1")
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("err = %v, want ErrAuthRequired", err)
	}
	if stub.lastBody != nil {
		t.Error("unauthenticated mutation reached the server")
	}
}

func TestMutationFailureBranch(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"follow":{"reason":"cannot follow yourself"}}}`}
	c := newTestClient(t, stub)
	c.SetToken("tok")

	err := c.Follow(context.Background(), "0xme")
	if err == nil {
		t.Fatal("rejected mutation returned nil error")
	}
}

func TestMutationSuccess(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"addReaction":{"success":true}}}`}
	c := newTestClient(t, stub)
	c.SetToken("tok")

	if err := c.Like(context.Background(), "p1"); err != nil {
		t.Fatalf("Like: %v", err)
	}

	request, _ := stub.variables()["request"].(map[string]any)
	if request["reaction"] != "UPVOTE" {
		t.Errorf("reaction = %v, want UPVOTE", request["reaction"])
	}
}

func TestUnauthorizedStatusMapsToSessionExpired(t *testing.T) {
	stub := &graphqlStub{t: t, status: http.StatusUnauthorized}
	c := newTestClient(t, stub)
	c.SetToken("stale")

	_, err := c.QueryPosts(context.Background(), domain.PostFilter{}, "")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("err = %v, want ErrSessionExpired", err)
	}
}

func TestUnauthenticatedErrorCodeMapsToAuthRequired(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"errors":[{"message":"login required","extensions":{"code":"UNAUTHENTICATED"}}]}`}
	c := newTestClient(t, stub)
	c.SetToken("tok")

	err := c.Repost(context.Background(), "p1")
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("err = %v, want ErrAuthRequired", err)
	}
}

func TestPostKindMapping(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"posts":{
		"items":[
			{"id":"root","author":{"address":"0xa"},"metadata":{"content":"hi"}},
			{"id":"repost","author":{"address":"0xa"},"repostOf":{"id":"orig","author":{"address":"0xb"},"metadata":{"content":"original"}}},
			{"id":"quote","author":{"address":"0xa"},"metadata":{"content":"my take"},"repostOf":{"id":"orig","author":{"address":"0xb"}}},
			{"id":"reply","author":{"address":"0xa"},"metadata":{"content":"same"},"commentOn":{"id":"parent","author":{"address":"0xb"}}}
		],
		"pageInfo":{"next":""}
	}}}`}
	c := newTestClient(t, stub)

	page, err := c.QueryPosts(context.Background(), domain.PostFilter{}, "")
	if err != nil {
		t.Fatalf("QueryPosts: %v", err)
	}

	want := []domain.PostKind{
		domain.PostKindRoot,
		domain.PostKindRepost,
		domain.PostKindQuote,
		domain.PostKindComment,
	}
	for i, kind := range want {
		if page.Items[i].Kind != kind {
			t.Errorf("item %d kind = %v, want %v", i, page.Items[i].Kind, kind)
		}
	}
	if page.Items[1].Display().ID != "orig" {
		t.Errorf("repost Display() = %q, want the referenced original", page.Items[1].Display().ID)
	}
}

func TestPollChallengePending(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"challengeStatus":{"status":"PENDING"}}}`}
	c := newTestClient(t, stub)

	session, err := c.PollChallenge(context.Background(), "ch1")
	if err != nil {
		t.Fatalf("PollChallenge: %v", err)
	}
	if session.AccessToken != "" {
		t.Error("pending challenge produced a session")
	}
}

func TestPollChallengeApproved(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"challengeStatus":{
		"status":"APPROVED",
		"tokens":{"accessToken":"at","refreshToken":"rt","expiresAt":"2030-01-01T00:00:00Z","account":"0xme"}
	}}}`}
	c := newTestClient(t, stub)

	session, err := c.PollChallenge(context.Background(), "ch1")
	if err != nil {
		t.Fatalf("PollChallenge: %v", err)
	}
	if session.AccessToken != "at" || session.AccountAddress != "0xme" {
		t.Errorf("unexpected session: %+v", session)
	}
}

func TestPollChallengeExpired(t *testing.T) {
	stub := &graphqlStub{t: t, data: `{"data":{"challengeStatus":{"status":"EXPIRED"}}}`}
	c := newTestClient(t, stub)

	_, err := c.PollChallenge(context.Background(), "ch1")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("err = %v, want ErrSessionExpired", err)
	}
}
