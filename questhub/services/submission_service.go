package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/chain"
	"github.com/faucetdrop/questhub/questhub/database/models"
	"github.com/faucetdrop/questhub/questhub/database/repositories"
	"github.com/faucetdrop/questhub/questhub/progression"
)

// SubmissionService handles proof submission and creator review. Approval is
// the single mutation path for participant progress: points, completed tasks,
// and stage advancement all flow through ReviewSubmission.
type SubmissionService struct {
	quests   repositories.QuestRepository
	progress repositories.ProgressRepository
	guard    *progression.MutationGuard
	logger   *slog.Logger
}

func NewSubmissionService(quests repositories.QuestRepository, progress repositories.ProgressRepository) *SubmissionService {
	return &SubmissionService{
		quests:   quests,
		progress: progress,
		guard:    progression.NewMutationGuard(),
		logger:   slog.With(slog.String("service", "submission")),
	}
}

// TaskWithStatus is a quest task decorated with one participant's resolved
// status.
type TaskWithStatus struct {
	models.Task
	Status progression.TaskStatus `json:"status"`
}

// TaskStatuses resolves every task of a quest for one wallet.
func (s *SubmissionService) TaskStatuses(ctx context.Context, questAddress, wallet string) ([]TaskWithStatus, error) {
	quest, err := s.quests.GetByAddress(ctx, questAddress)
	if err != nil {
		return nil, err
	}

	snap := progression.ProgressSnapshot{CurrentStage: progression.StageBeginner}
	if wallet != "" {
		record, err := s.progress.Get(ctx, questAddress, wallet)
		if err != nil {
			return nil, err
		}
		subs, err := s.progress.ListSubmissions(ctx, questAddress, wallet)
		if err != nil {
			return nil, err
		}
		if record != nil {
			snap = record.Snapshot(subs)
		} else {
			snap = (&models.ParticipantProgress{CurrentStage: progression.StageBeginner}).Snapshot(subs)
		}
	}

	out := make([]TaskWithStatus, 0, len(quest.Tasks))
	for _, task := range quest.Tasks {
		status := progression.ResolveStatus(progression.TaskPoints{
			ID:     task.ID,
			Stage:  task.Stage,
			Points: task.Points,
		}, snap)
		out = append(out, TaskWithStatus{Task: task, Status: status})
	}
	return out, nil
}

// Submit records a proof for a manual task. One pending submission per
// (wallet, task) at a time; resubmission is only possible after a rejection.
func (s *SubmissionService) Submit(ctx context.Context, questAddress, wallet, taskID, proofURL, notes string) (*models.TaskSubmission, error) {
	if err := s.guard.Begin(questAddress+"/"+wallet, progression.StateSubmitting); err != nil {
		return nil, err
	}
	defer s.guard.End(questAddress + "/" + wallet)

	if !chain.ValidAddress(wallet) {
		return nil, apperrors.Validation("malformed wallet %q", wallet)
	}

	quest, err := s.quests.GetByAddress(ctx, questAddress)
	if err != nil {
		return nil, err
	}
	if !quest.Active || !quest.Funded {
		return nil, apperrors.Validation("quest %s is not accepting submissions", questAddress)
	}
	if sameWallet(quest.CreatorWallet, wallet) {
		return nil, apperrors.Validation("quest creators cannot participate in their own quest")
	}
	if phase, err := progression.ClaimState(quest.EndDate, quest.ClaimWindowHours, time.Now()); err != nil {
		return nil, err
	} else if phase != progression.PhaseQuestActive {
		return nil, apperrors.Validation("quest %s has ended", questAddress)
	}

	task, err := findTask(quest, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsSystem {
		return nil, apperrors.Validation("system task %s does not take submissions", taskID)
	}

	statuses, err := s.TaskStatuses(ctx, questAddress, wallet)
	if err != nil {
		return nil, err
	}
	for _, ts := range statuses {
		if ts.ID != taskID {
			continue
		}
		switch ts.Status {
		case progression.TaskCompleted:
			return nil, apperrors.Validation("task %s is already completed", taskID)
		case progression.TaskPending:
			return nil, apperrors.Validation("task %s already has a pending submission", taskID)
		case progression.TaskLocked:
			return nil, apperrors.Validation("task %s is locked behind a later stage", taskID)
		}
	}

	sub := &models.TaskSubmission{
		ID:           uuid.NewString(),
		QuestAddress: questAddress,
		Wallet:       wallet,
		TaskID:       taskID,
		Status:       string(progression.SubmissionPending),
		ProofURL:     proofURL,
		Notes:        notes,
	}
	if err := s.progress.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("Submission received",
		slog.String("quest", questAddress),
		slog.String("wallet", wallet),
		slog.String("task", taskID))
	return sub, nil
}

// PendingReviews returns the creator's review queue, oldest first.
func (s *SubmissionService) PendingReviews(ctx context.Context, questAddress, callerWallet string) ([]*models.TaskSubmission, error) {
	quest, err := s.quests.GetByAddress(ctx, questAddress)
	if err != nil {
		return nil, err
	}
	if !sameWallet(quest.CreatorWallet, callerWallet) {
		return nil, apperrors.Validation("only the quest creator may review submissions")
	}
	return s.progress.ListPendingSubmissions(ctx, questAddress)
}

// ReviewSubmission decides a pending submission. The repository's conditional
// update guarantees exactly one decision takes effect; a raced second call
// fails validation. Approval applies the task's points and re-derives the
// participant's stage.
func (s *SubmissionService) ReviewSubmission(ctx context.Context, submissionID, callerWallet string, approve bool) (*models.TaskSubmission, error) {
	sub, err := s.progress.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	quest, err := s.quests.GetByAddress(ctx, sub.QuestAddress)
	if err != nil {
		return nil, err
	}
	if !sameWallet(quest.CreatorWallet, callerWallet) {
		return nil, apperrors.Validation("only the quest creator may review submissions")
	}

	status := progression.SubmissionRejected
	if approve {
		status = progression.SubmissionApproved
	}

	reviewed, err := s.progress.ReviewSubmission(ctx, submissionID, string(status))
	if err != nil {
		return nil, err
	}

	if approve {
		if err := s.applyApproval(ctx, quest, reviewed); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Submission reviewed",
		slog.String("quest", sub.QuestAddress),
		slog.String("submission", submissionID),
		slog.String("status", string(status)))
	return reviewed, nil
}

func (s *SubmissionService) applyApproval(ctx context.Context, quest *models.Quest, sub *models.TaskSubmission) error {
	task, err := findTask(quest, sub.TaskID)
	if err != nil {
		return err
	}

	record, err := s.progress.Get(ctx, quest.Address, sub.Wallet)
	if err != nil {
		return err
	}
	if record == nil {
		record = &models.ParticipantProgress{
			QuestAddress: quest.Address,
			Wallet:       sub.Wallet,
			StagePoints:  map[progression.Stage]int{},
			CurrentStage: progression.StageBeginner,
		}
	}
	if record.StagePoints == nil {
		record.StagePoints = map[progression.Stage]int{}
	}

	// Approving a second submission for an already-completed task must not
	// double-count its points.
	if record.HasCompleted(task.ID) {
		return nil
	}

	points := task.Points
	if points < 0 {
		points = 0
	}
	record.TotalPoints += points
	record.StagePoints[task.Stage] += points
	record.CompletedTasks = append(record.CompletedTasks, task.ID)
	record.CurrentStage = progression.AdvanceStage(record.CurrentStage, record.StagePoints, quest.StagePassRequirements)

	return s.progress.Upsert(ctx, record)
}

func findTask(quest *models.Quest, taskID string) (models.Task, error) {
	for _, t := range quest.Tasks {
		if t.ID == taskID {
			return t, nil
		}
	}
	return models.Task{}, apperrors.NotFound("task %s not found in quest %s", taskID, quest.Address)
}
