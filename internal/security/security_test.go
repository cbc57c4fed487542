package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testHashKey = "0123456789abcdef0123456789abcdef"

func TestCsrfRoundTrip(t *testing.T) {
	csrf := NewCSRF([]byte(testHashKey), nil, time.Minute)

	token, err := csrf.Generate(TokenSubmit)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !csrf.IsValid(TokenSubmit, token) {
		t.Error("freshly minted token rejected")
	}
}

func TestCsrfRejectsWrongIntention(t *testing.T) {
	csrf := NewCSRF([]byte(testHashKey), nil, time.Minute)

	token, err := csrf.Generate(ActionTokenID("delete_comment", 5))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if csrf.IsValid(TokenSubmit, token) {
		t.Error("token for delete_comment_5 accepted for submit")
	}
	if csrf.IsValid(ActionTokenID("delete_comment", 6), token) {
		t.Error("token for delete_comment_5 accepted for delete_comment_6")
	}
}

func TestCsrfRejectsGarbage(t *testing.T) {
	csrf := NewCSRF([]byte(testHashKey), nil, time.Minute)

	if csrf.IsValid(TokenSubmit, "") {
		t.Error("empty token accepted")
	}
	if csrf.IsValid(TokenSubmit, "not-a-token") {
		t.Error("garbage token accepted")
	}

	token, err := csrf.Generate(TokenSubmit)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if csrf.IsValid(TokenSubmit, token+"x") {
		t.Error("tampered token accepted")
	}
}

func TestCsrfRejectsForeignKey(t *testing.T) {
	mint := NewCSRF([]byte(testHashKey), nil, time.Minute)
	verify := NewCSRF([]byte("ffffffffffffffffffffffffffffffff"), nil, time.Minute)

	token, err := mint.Generate(TokenSubmit)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if verify.IsValid(TokenSubmit, token) {
		t.Error("token signed with another key accepted")
	}
}

func TestCsrfExpiry(t *testing.T) {
	csrf := NewCSRF([]byte(testHashKey), nil, time.Minute)
	token, err := csrf.Generate(TokenSubmit)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// zero ttl disables expiry
	noExpiry := NewCSRF([]byte(testHashKey), nil, 0)
	tok, err := noExpiry.Generate(TokenSubmit)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !noExpiry.IsValid(TokenSubmit, tok) {
		t.Error("token rejected with expiry disabled")
	}
	if !csrf.IsValid(TokenSubmit, token) {
		t.Error("token rejected within ttl")
	}
}

func requestWithCookies(rec *httptest.ResponseRecorder, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessions([]byte(testHashKey), nil)

	rec := httptest.NewRecorder()
	if err := sessions.Issue(rec, 42); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	sess := sessions.Read(requestWithCookies(rec, "/challenges"))
	if sess == nil {
		t.Fatal("Read() returned nil for a valid session cookie")
	}
	if sess.UserID != 42 {
		t.Errorf("UserID = %d, want 42", sess.UserID)
	}
	if sess.ID == "" {
		t.Error("session ID is empty")
	}
}

func TestSessionReadWithoutCookie(t *testing.T) {
	sessions := NewSessions([]byte(testHashKey), nil)
	req := httptest.NewRequest(http.MethodGet, "/challenges", nil)
	if sessions.Read(req) != nil {
		t.Error("Read() returned a session for a bare request")
	}
}

func TestSessionClear(t *testing.T) {
	sessions := NewSessions([]byte(testHashKey), nil)
	rec := httptest.NewRecorder()
	sessions.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("Clear() wrote cookies %v, want one expiring cookie", cookies)
	}
}

func TestFlashAddAndPop(t *testing.T) {
	flashes := NewFlashes([]byte(testHashKey), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/challenge/7/comment", nil)
	flashes.Add(rec, req, FlashSuccess, "Your comment has been added successfully.")

	next := requestWithCookies(rec, "/challenge/7")
	popRec := httptest.NewRecorder()
	messages := flashes.Pop(popRec, next)
	if len(messages) != 1 {
		t.Fatalf("Pop() returned %d messages, want 1", len(messages))
	}
	if messages[0].Type != FlashSuccess {
		t.Errorf("Type = %q, want %q", messages[0].Type, FlashSuccess)
	}
	if messages[0].Message != "Your comment has been added successfully." {
		t.Errorf("Message = %q", messages[0].Message)
	}

	cookies := popRec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Error("Pop() did not clear the flash cookie")
	}
}

func TestFlashAccumulates(t *testing.T) {
	flashes := NewFlashes([]byte(testHashKey), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/comments/5/delete", nil)
	flashes.Add(rec, req, FlashError, "first")

	rec2 := httptest.NewRecorder()
	flashes.Add(rec2, requestWithCookies(rec, "/admin/comments"), FlashSuccess, "second")

	messages := flashes.Pop(httptest.NewRecorder(), requestWithCookies(rec2, "/admin/comments"))
	if len(messages) != 2 {
		t.Fatalf("Pop() returned %d messages, want 2", len(messages))
	}
	if messages[0].Message != "first" || messages[1].Message != "second" {
		t.Errorf("messages = %v, want first then second", messages)
	}
}

func TestSecurityBundleSharesKeys(t *testing.T) {
	sec := New(testHashKey, "", time.Minute)
	if sec.Sessions == nil || sec.CSRF == nil || sec.Flashes == nil {
		t.Fatal("New() left a codec nil")
	}

	token, err := sec.CSRF.Generate(TokenSubmit)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !sec.CSRF.IsValid(TokenSubmit, token) {
		t.Error("bundle CSRF rejects its own token")
	}
}
