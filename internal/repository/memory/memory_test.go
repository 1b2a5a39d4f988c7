package memory

import (
	"context"
	"testing"
	"time"

	"intelimed/internal/model"
)

func TestChatMessagesOrderedPerUserDespiteInterleaving(t *testing.T) {
	ctx := context.Background()
	store := NewChatMessageStore()
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	// Inserted out of timestamp order and interleaved with another user.
	inserts := []model.ChatMessage{
		{ID: "u1-b", UserID: "u1", Message: "second", Timestamp: base.Add(2 * time.Second)},
		{ID: "u2-a", UserID: "u2", Message: "other", Timestamp: base.Add(1 * time.Second)},
		{ID: "u1-a", UserID: "u1", Message: "first", Timestamp: base.Add(1 * time.Second)},
		{ID: "u2-b", UserID: "u2", Message: "other again", Timestamp: base},
		{ID: "u1-c", UserID: "u1", Message: "third", Timestamp: base.Add(3 * time.Second)},
	}
	for i := range inserts {
		if err := store.AppendChatMessage(ctx, &inserts[i]); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ListChatMessagesByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"u1-a", "u1-b", "u1-c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s want %s", i, got[i].ID, id)
		}
	}
}

func TestChatMessagesEqualTimestampsKeepAppendOrder(t *testing.T) {
	ctx := context.Background()
	store := NewChatMessageStore()
	at := time.Now()
	for _, id := range []string{"a", "b", "c"} {
		if err := store.AppendChatMessage(ctx, &model.ChatMessage{ID: id, UserID: "u1", Timestamp: at}); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := store.ListChatMessagesByUser(ctx, "u1")
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("unexpected order: %v", []string{got[0].ID, got[1].ID, got[2].ID})
	}
}

func TestChatMessagesListIsACopy(t *testing.T) {
	ctx := context.Background()
	store := NewChatMessageStore()
	_ = store.AppendChatMessage(ctx, &model.ChatMessage{ID: "a", UserID: "u1", Message: "hi"})

	got, _ := store.ListChatMessagesByUser(ctx, "u1")
	got[0].Message = "mutated"

	again, _ := store.ListChatMessagesByUser(ctx, "u1")
	if again[0].Message != "hi" {
		t.Fatal("stored message was mutated through a listed copy")
	}
}

func TestAssessmentsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewAssessmentStore()
	base := time.Now()
	_ = store.AppendAssessment(ctx, &model.HealthAssessment{ID: "old", UserID: "u1", CompletedAt: base})
	_ = store.AppendAssessment(ctx, &model.HealthAssessment{ID: "new", UserID: "u1", CompletedAt: base.Add(time.Minute)})
	_ = store.AppendAssessment(ctx, &model.HealthAssessment{ID: "other", UserID: "u2", CompletedAt: base})

	got, err := store.ListAssessmentsByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Fatalf("unexpected assessments: %+v", got)
	}
}

func TestHealthGoalLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewHealthGoalStore()

	goal := &model.HealthGoal{ID: "g1", UserID: "u1", Title: "Walk"}
	if err := store.CreateHealthGoal(ctx, goal); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.GetHealthGoal(ctx, "g1")
	if err != nil || loaded == nil {
		t.Fatalf("expected goal, got %v, %v", loaded, err)
	}
	loaded.CurrentValue = 5000
	if err := store.SaveHealthGoal(ctx, loaded); err != nil {
		t.Fatal(err)
	}

	goals, _ := store.ListHealthGoalsByUser(ctx, "u1")
	if len(goals) != 1 || goals[0].CurrentValue != 5000 {
		t.Fatalf("update not visible: %+v", goals)
	}

	deleted, err := store.DeleteHealthGoal(ctx, "g1")
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v, %v", deleted, err)
	}
	deleted, _ = store.DeleteHealthGoal(ctx, "g1")
	if deleted {
		t.Fatal("second delete should report false")
	}
	if missing, _ := store.GetHealthGoal(ctx, "g1"); missing != nil {
		t.Fatal("goal should be gone")
	}
}

func TestMedicationsListOnlyActive(t *testing.T) {
	ctx := context.Background()
	store := NewMedicationStore()
	_ = store.CreateMedication(ctx, &model.Medication{ID: "m1", UserID: "u1", Name: "A", Active: true})
	_ = store.CreateMedication(ctx, &model.Medication{ID: "m2", UserID: "u1", Name: "B", Active: false})
	_ = store.CreateMedication(ctx, &model.Medication{ID: "m3", UserID: "u2", Name: "C", Active: true})

	got, err := store.ListActiveMedicationsByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "m1" {
		t.Fatalf("unexpected medications: %+v", got)
	}
}

func TestUserStoreRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()
	if err := store.CreateUser(ctx, &model.User{ID: "1", Username: "ana"}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateUser(ctx, &model.User{ID: "2", Username: "ana"}); err == nil {
		t.Fatal("expected duplicate username error")
	}
	user, _ := store.GetUserByUsername(ctx, "ana")
	if user == nil || user.ID != "1" {
		t.Fatalf("unexpected user %+v", user)
	}
}
