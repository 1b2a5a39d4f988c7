package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"intelimed/internal/ai"
	"intelimed/internal/app"
	"intelimed/internal/bootstrap"
	"intelimed/internal/config"
	"intelimed/internal/model"
	"intelimed/internal/repository/memory"
)

type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	replyErr error
	analysis string
	jsonErr  error
	prompts  []string
}

func (f *fakeLLM) Complete(_ context.Context, _ ai.ChatConfig, messages []ai.ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, messages[len(messages)-1].Content)
	return f.reply, f.replyErr
}

func (f *fakeLLM) CompleteJSON(_ context.Context, _ ai.ChatConfig, _ []ai.ChatMessage, _ ai.JSONSchema) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.analysis, f.jsonErr
}

type capturingPublisher struct {
	mu     sync.Mutex
	alerts []model.RiskAlert
}

func (p *capturingPublisher) PublishRiskAlert(_ context.Context, alert model.RiskAlert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, alert)
	return nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router    *gin.Engine
	llm       *fakeLLM
	publisher *capturingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.App.GinMode = gin.TestMode

	llm := &fakeLLM{reply: "Stay hydrated and rest.", analysis: `{"riskLevel":"low","recommendations":["Keep walking"],"explanation":"Fine"}`}
	publisher := &capturingPublisher{}
	a := &bootstrap.App{
		Config:         cfg,
		Stores:         memory.NewStores(),
		LLM:            llm,
		AlertPublisher: publisher,
		StartedAt:      time.Now(),
	}
	return &testServer{router: NewRouter(a), llm: llm, publisher: publisher}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(path, "/api") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope for %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, string(env.Data))
	}
	return out
}

func TestChatRoundTripAndHistory(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/chat", map[string]string{"userId": "u1", "message": "I have a headache", "persona": "senior"})
	if rec.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeData[app.SendMessageResult](t, env)
	if !result.UserMessage.IsUser || result.UserMessage.Message != "I have a headache" {
		t.Fatalf("unexpected user turn: %+v", result.UserMessage)
	}
	if result.AIMessage.IsUser || result.AIMessage.Message != "Stay hydrated and rest." {
		t.Fatalf("unexpected ai turn: %+v", result.AIMessage)
	}
	if result.UserMessage.Persona != "senior" || result.AIMessage.Persona != "senior" {
		t.Fatalf("persona not stored on both turns: %q %q", result.UserMessage.Persona, result.AIMessage.Persona)
	}
	if result.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", result.Confidence)
	}

	_, first := s.do(t, http.MethodGet, "/api/chat-messages/u1", nil)
	_, second := s.do(t, http.MethodGet, "/api/chat-messages/u1", nil)
	if !bytes.Equal(first.Data, second.Data) {
		t.Fatal("history reads must be idempotent")
	}
	history := decodeData[[]model.ChatMessage](t, first)
	if len(history) != 2 || !history[0].IsUser || history[1].IsUser {
		t.Fatalf("expected user then assistant turn, got %+v", history)
	}
}

func TestChatPromptCarriesRecentHistory(t *testing.T) {
	s := newTestServer(t)
	for _, msg := range []string{"one", "two", "three", "four"} {
		s.do(t, http.MethodPost, "/api/chat", map[string]string{"userId": "u1", "message": msg})
	}

	s.llm.mu.Lock()
	prompt := s.llm.prompts[len(s.llm.prompts)-1]
	s.llm.mu.Unlock()

	// Seven stored turns at the last call; the prompt keeps the last five.
	if strings.Contains(prompt, "user: one") {
		t.Fatalf("prompt should not include turns older than the last five:\n%s", prompt)
	}
	for _, want := range []string{"user: two", "user: three", "user: four", "Current user message: four", "general persona"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestChatUpstreamFailureStillSucceeds(t *testing.T) {
	s := newTestServer(t)
	s.llm.replyErr = errors.New("upstream unavailable")

	rec, env := s.do(t, http.MethodPost, "/api/chat", map[string]string{"userId": "u1", "message": "hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := decodeData[app.SendMessageResult](t, env)
	if result.AIMessage.Message != app.DegradedReplyMessage || result.Confidence != 0.1 {
		t.Fatalf("expected degraded reply, got %+v", result)
	}
}

func TestChatRejectsMalformedInputBeforePersisting(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{
		`{"message":"no user"}`,
		`{"userId":"u1"}`,
		`{"userId":"u1","message":42}`,
		`not json`,
	} {
		rec, env := s.do(t, http.MethodPost, "/api/chat", body)
		if rec.Code != http.StatusBadRequest || env.Code != 40000 {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
	}

	_, env := s.do(t, http.MethodGet, "/api/chat-messages/u1", nil)
	if history := decodeData[[]model.ChatMessage](t, env); len(history) != 0 {
		t.Fatalf("nothing should be persisted, got %d turns", len(history))
	}
	if len(s.llm.prompts) != 0 {
		t.Fatal("upstream must not be called for malformed input")
	}
}

func TestChatAcceptsEmptyMessage(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodPost, "/api/chat", map[string]string{"userId": "u1", "message": ""})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty message, got %d", rec.Code)
	}
}

func TestHealthAssessmentHighRiskPublishesAlert(t *testing.T) {
	s := newTestServer(t)
	s.llm.analysis = `{"riskLevel":"high","recommendations":["See a doctor today"],"explanation":"Chest pain"}`

	rec, env := s.do(t, http.MethodPost, "/api/health-assessments", map[string]any{
		"userId":    "u1",
		"responses": map[string]any{"chestPain": "yes"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeData[app.SubmitAssessmentResult](t, env)
	if result.RiskLevel != model.RiskHigh || result.Analysis.Status != model.AnalysisCompleted {
		t.Fatalf("unexpected assessment: %+v", result)
	}
	if len(s.publisher.alerts) != 1 || s.publisher.alerts[0].AssessmentID != result.ID {
		t.Fatalf("expected one alert for %s, got %+v", result.ID, s.publisher.alerts)
	}

	_, listEnv := s.do(t, http.MethodGet, "/api/health-assessments/u1", nil)
	if items := decodeData[[]model.HealthAssessment](t, listEnv); len(items) != 1 {
		t.Fatalf("expected one stored assessment, got %d", len(items))
	}
}

func TestHealthAssessmentUpstreamFailureIsIndeterminate(t *testing.T) {
	s := newTestServer(t)
	s.llm.jsonErr = errors.New("quota exceeded")

	rec, env := s.do(t, http.MethodPost, "/api/health-assessments", map[string]any{
		"userId":    "u1",
		"responses": map[string]any{"sleep": "poor"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := decodeData[app.SubmitAssessmentResult](t, env)
	if result.RiskLevel != model.RiskLow || result.AnalysisStatus != model.AnalysisIndeterminate {
		t.Fatalf("expected indeterminate low fallback, got %+v", result)
	}
	if len(s.publisher.alerts) != 0 {
		t.Fatal("fallback must not raise alerts")
	}
}

func TestHealthAssessmentRequiresResponses(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodPost, "/api/health-assessments", map[string]any{"userId": "u1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthGoalLifecycle(t *testing.T) {
	s := newTestServer(t)
	_, env := s.do(t, http.MethodPost, "/api/health-goals", map[string]any{"userId": "u1", "title": "Walk", "targetValue": 10000, "unit": "steps"})
	goal := decodeData[model.HealthGoal](t, env)

	_, env = s.do(t, http.MethodPatch, "/api/health-goals/"+goal.ID, map[string]any{"currentValue": 10000})
	updated := decodeData[model.HealthGoal](t, env)
	if !updated.Completed {
		t.Fatal("reaching the target should complete the goal")
	}

	rec, _ := s.do(t, http.MethodPatch, "/api/health-goals/missing", map[string]any{"currentValue": 1})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/health-goals/"+goal.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec, _ = s.do(t, http.MethodDelete, "/api/health-goals/"+goal.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestMedicationsAndReminders(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodPost, "/api/medications", map[string]any{
		"userId": "u1", "name": "Metformin", "dosage": "500mg", "frequency": "twice daily", "times": []string{"08:00", "20:00"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create medication: %d %s", rec.Code, rec.Body.String())
	}
	med := decodeData[model.Medication](t, env)
	if !med.Active {
		t.Fatal("new medications default to active")
	}

	rec, _ = s.do(t, http.MethodPost, "/api/medications", map[string]any{
		"userId": "u1", "name": "Bad", "dosage": "1", "frequency": "once", "times": []string{"25:99"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid time, got %d", rec.Code)
	}

	_, env = s.do(t, http.MethodGet, "/api/medications/u1/reminders?window=60", nil)
	schedule := decodeData[app.ReminderSchedule](t, env)
	if schedule.WindowMinutes != 60 || len(schedule.NextDoses) != 1 {
		t.Fatalf("unexpected schedule: %+v", schedule)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/medications/u1/reminders?window=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad window, got %d", rec.Code)
	}

	s.do(t, http.MethodPatch, "/api/medications/"+med.ID, map[string]any{"active": false})
	_, env = s.do(t, http.MethodGet, "/api/medications/u1", nil)
	if meds := decodeData[[]model.Medication](t, env); len(meds) != 0 {
		t.Fatalf("inactive medications must not be listed, got %d", len(meds))
	}
}

func TestEmergencyContactsPrimaryFirst(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/emergency-contacts", map[string]any{"userId": "u1", "name": "Ravi", "relationship": "brother", "phone": "111"})
	s.do(t, http.MethodPost, "/api/emergency-contacts", map[string]any{"userId": "u1", "name": "Asha", "relationship": "daughter", "phone": "222", "isPrimary": true})

	_, env := s.do(t, http.MethodGet, "/api/emergency-contacts/u1", nil)
	contacts := decodeData[[]model.EmergencyContact](t, env)
	if len(contacts) != 2 || contacts[0].Name != "Asha" {
		t.Fatalf("expected primary contact first, got %+v", contacts)
	}

	rec, _ := s.do(t, http.MethodPost, "/api/emergency-contacts", map[string]any{"userId": "u1", "name": "NoPhone", "relationship": "friend"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUsersAndProfilePersona(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodPost, "/api/users", map[string]any{"username": "meera", "password": "correct-horse", "persona": "anxious"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create user: %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "correct-horse") || strings.Contains(rec.Body.String(), "password") {
		t.Fatal("password material must not be returned")
	}
	user := decodeData[model.User](t, env)

	rec, _ = s.do(t, http.MethodPost, "/api/users", map[string]any{"username": "meera", "password": "another-pass"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d", rec.Code)
	}

	// No persona on the request: the profile's persona is used.
	_, env = s.do(t, http.MethodPost, "/api/chat", map[string]string{"userId": user.ID, "message": "I feel nervous"})
	result := decodeData[app.SendMessageResult](t, env)
	if result.AIMessage.Persona != "anxious" {
		t.Fatalf("expected profile persona, got %q", result.AIMessage.Persona)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/users/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestFacilitiesAndPersonas(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/nearby-facilities?lng=77.2", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without latitude, got %d", rec.Code)
	}

	_, env := s.do(t, http.MethodGet, "/api/nearby-facilities?lat=28.6&lng=77.2&radius=3", nil)
	search := decodeData[app.NearbySearch](t, env)
	if search.Count < 8 || search.Count > 15 || search.Count != len(search.Facilities) {
		t.Fatalf("unexpected nearby search: count=%d len=%d", search.Count, len(search.Facilities))
	}

	_, env = s.do(t, http.MethodGet, "/api/facilities?type=all", nil)
	if list := decodeData[[]app.Facility](t, env); len(list) != 3 {
		t.Fatalf("expected 3 facilities, got %d", len(list))
	}

	_, env = s.do(t, http.MethodGet, "/api/facility-details/abc", nil)
	if details := decodeData[app.FacilityDetails](t, env); details.PlaceID != "abc" {
		t.Fatalf("unexpected details: %+v", details)
	}

	_, env = s.do(t, http.MethodGet, "/api/personas", nil)
	if personas := decodeData[[]map[string]string](t, env); len(personas) != 5 {
		t.Fatalf("expected 5 personas, got %d", len(personas))
	}
}

func TestHealthzWithMemoryStorage(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestChatOverWebSocket(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws/u1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != "connected" {
		t.Fatalf("expected connected frame, got %+v %v", hello, err)
	}

	if err := conn.WriteJSON(map[string]string{"type": "chat", "message": "hi", "persona": "child"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply struct {
		Type string                `json:"type"`
		Data app.SendMessageResult `json:"data"`
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read reply: %v", err)
	}
	if reply.Type != "reply" || reply.Data.AIMessage.Persona != "child" || reply.Data.AIMessage.Message != "Stay hydrated and rest." {
		t.Fatalf("unexpected reply frame: %+v", reply)
	}
}
