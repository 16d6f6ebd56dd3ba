package services

import (
	"context"
	"testing"
	"time"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/database/models"
	"github.com/faucetdrop/questhub/questhub/progression"
)

func activeQuest() *models.Quest {
	return &models.Quest{
		Address:       testQuestAddr,
		Title:         "Bridge Week",
		CreatorWallet: testCreator,
		RewardPool:    100,
		Active:        true,
		Funded:        true,
		StartDate:     time.Now().Add(-24 * time.Hour),
		EndDate:       time.Now().Add(24 * time.Hour),
		Distribution:  progression.DistributionSpec{Model: progression.DistributionEqual, TotalWinners: 10},
		Tasks: []models.Task{
			{ID: "t1", Title: "Follow on X", Points: 40, Stage: progression.StageBeginner, Verification: models.VerifyManualLink},
			{ID: "t2", Title: "Join Discord", Points: 60, Stage: progression.StageBeginner, Verification: models.VerifyManualLink},
			{ID: "t3", Title: "Bridge funds", Points: 50, Stage: progression.StageIntermediate, Verification: models.VerifyManualUpload},
			{ID: models.SystemTaskDaily, Title: "Daily check-in", Points: 5, Stage: progression.StageBeginner, Verification: models.VerifySystemDaily, IsSystem: true},
		},
		StagePassRequirements: map[progression.Stage]int{
			progression.StageBeginner:     70,
			progression.StageIntermediate: 35,
		},
	}
}

func Test_Submit(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *models.Quest)
		wallet  string
		taskID  string
		wantErr bool
	}{
		{name: "valid submission", wallet: testWallet, taskID: "t1"},
		{name: "creator cannot participate", wallet: testCreator, taskID: "t1", wantErr: true},
		{name: "unknown task", wallet: testWallet, taskID: "nope", wantErr: true},
		{name: "system task rejected", wallet: testWallet, taskID: models.SystemTaskDaily, wantErr: true},
		{name: "locked later-stage task", wallet: testWallet, taskID: "t3", wantErr: true},
		{name: "malformed wallet", wallet: "vitalik", taskID: "t1", wantErr: true},
		{
			name:    "unfunded quest",
			mutate:  func(q *models.Quest) { q.Funded = false },
			wallet:  testWallet,
			taskID:  "t1",
			wantErr: true,
		},
		{
			name:    "ended quest",
			mutate:  func(q *models.Quest) { q.EndDate = time.Now().Add(-time.Hour) },
			wallet:  testWallet,
			taskID:  "t1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quest := activeQuest()
			if tt.mutate != nil {
				tt.mutate(quest)
			}
			svc := NewSubmissionService(newFakeQuestRepo(quest), newFakeProgressRepo())

			sub, err := svc.Submit(context.Background(), testQuestAddr, tt.wallet, tt.taskID, "https://proof.example/1", "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Submit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && sub.Status != string(progression.SubmissionPending) {
				t.Errorf("Submit() status = %q, want pending", sub.Status)
			}
		})
	}
}

func Test_Submit_DuplicatePending(t *testing.T) {
	svc := NewSubmissionService(newFakeQuestRepo(activeQuest()), newFakeProgressRepo())

	if _, err := svc.Submit(context.Background(), testQuestAddr, testWallet, "t1", "https://proof.example/1", ""); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	if _, err := svc.Submit(context.Background(), testQuestAddr, testWallet, "t1", "https://proof.example/2", ""); !apperrors.IsValidation(err) {
		t.Errorf("second Submit() should fail validation while pending, got %v", err)
	}
}

func Test_ReviewSubmission_ApplyApproval(t *testing.T) {
	progressRepo := newFakeProgressRepo()
	svc := NewSubmissionService(newFakeQuestRepo(activeQuest()), progressRepo)
	ctx := context.Background()

	submitAndApprove := func(taskID string) {
		t.Helper()
		sub, err := svc.Submit(ctx, testQuestAddr, testWallet, taskID, "https://proof.example/"+taskID, "")
		if err != nil {
			t.Fatalf("Submit(%s) error = %v", taskID, err)
		}
		if _, err := svc.ReviewSubmission(ctx, sub.ID, testCreator, true); err != nil {
			t.Fatalf("ReviewSubmission(%s) error = %v", taskID, err)
		}
	}

	// Approving t1 (40 pts) leaves the participant under the 70-point
	// Beginner requirement.
	submitAndApprove("t1")
	rec, _ := progressRepo.Get(ctx, testQuestAddr, testWallet)
	if rec.TotalPoints != 40 {
		t.Fatalf("after t1: TotalPoints = %d, want 40", rec.TotalPoints)
	}
	if rec.CurrentStage != progression.StageBeginner {
		t.Fatalf("after t1: CurrentStage = %v, want Beginner", rec.CurrentStage)
	}

	// Approving t2 (60 pts) crosses 70 and advances the stage.
	submitAndApprove("t2")
	rec, _ = progressRepo.Get(ctx, testQuestAddr, testWallet)
	if rec.TotalPoints != 100 {
		t.Fatalf("after t2: TotalPoints = %d, want 100", rec.TotalPoints)
	}
	if rec.CurrentStage != progression.StageIntermediate {
		t.Errorf("after t2: CurrentStage = %v, want Intermediate", rec.CurrentStage)
	}
	if !rec.HasCompleted("t1") || !rec.HasCompleted("t2") {
		t.Errorf("completed tasks = %v, want t1 and t2", rec.CompletedTasks)
	}

	// t3 is unlocked now.
	submitAndApprove("t3")
	rec, _ = progressRepo.Get(ctx, testQuestAddr, testWallet)
	if rec.TotalPoints != 150 {
		t.Errorf("after t3: TotalPoints = %d, want 150", rec.TotalPoints)
	}
}

func Test_ReviewSubmission_Guards(t *testing.T) {
	progressRepo := newFakeProgressRepo()
	svc := NewSubmissionService(newFakeQuestRepo(activeQuest()), progressRepo)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, testQuestAddr, testWallet, "t1", "https://proof.example/1", "")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// Only the creator may review.
	if _, err := svc.ReviewSubmission(ctx, sub.ID, testWallet, true); !apperrors.IsValidation(err) {
		t.Errorf("non-creator review should fail validation, got %v", err)
	}

	// Rejection leaves progress untouched and reopens the task.
	if _, err := svc.ReviewSubmission(ctx, sub.ID, testCreator, false); err != nil {
		t.Fatalf("reject error = %v", err)
	}
	if rec, _ := progressRepo.Get(ctx, testQuestAddr, testWallet); rec != nil {
		t.Errorf("rejection created progress: %+v", rec)
	}

	// A second decision on the same submission must fail.
	if _, err := svc.ReviewSubmission(ctx, sub.ID, testCreator, true); !apperrors.IsValidation(err) {
		t.Errorf("double review should fail validation, got %v", err)
	}

	// After rejection, resubmission is allowed again.
	if _, err := svc.Submit(ctx, testQuestAddr, testWallet, "t1", "https://proof.example/2", ""); err != nil {
		t.Errorf("resubmission after rejection failed: %v", err)
	}
}

func Test_TaskStatuses(t *testing.T) {
	progressRepo := newFakeProgressRepo()
	svc := NewSubmissionService(newFakeQuestRepo(activeQuest()), progressRepo)
	ctx := context.Background()

	// Fresh wallet: beginner tasks available, later stages locked.
	statuses, err := svc.TaskStatuses(ctx, testQuestAddr, testWallet)
	if err != nil {
		t.Fatalf("TaskStatuses() error = %v", err)
	}
	byID := map[string]progression.TaskStatus{}
	for _, ts := range statuses {
		byID[ts.ID] = ts.Status
	}
	if byID["t1"] != progression.TaskAvailable {
		t.Errorf("t1 = %v, want available", byID["t1"])
	}
	if byID["t3"] != progression.TaskLocked {
		t.Errorf("t3 = %v, want locked", byID["t3"])
	}

	// A pending submission shows through.
	if _, err := svc.Submit(ctx, testQuestAddr, testWallet, "t1", "https://proof.example/1", ""); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	statuses, _ = svc.TaskStatuses(ctx, testQuestAddr, testWallet)
	for _, ts := range statuses {
		if ts.ID == "t1" && ts.Status != progression.TaskPending {
			t.Errorf("t1 after submit = %v, want pending", ts.Status)
		}
	}
}
