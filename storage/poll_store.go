package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"society-portal-server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PollStore struct {
	db *gorm.DB
}

func NewPollStore(db *gorm.DB) *PollStore {
	return &PollStore{db: db}
}

func (s *PollStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	var polls []models.Poll
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&polls).Error
	return polls, err
}

func (s *PollStore) GetPoll(ctx context.Context, id uint) (*models.Poll, error) {
	var poll models.Poll
	if err := s.db.WithContext(ctx).First(&poll, id).Error; err != nil {
		return nil, err
	}
	return &poll, nil
}

// CastVote records one vote per user per poll; a revote switches the
// option in place via the unique (poll_id, user_id) index.
func (s *PollStore) CastVote(ctx context.Context, pollID, userID uint, option string) error {
	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}

	var options []string
	if err := json.Unmarshal(poll.Options, &options); err != nil {
		return fmt.Errorf("poll %d has malformed options: %w", pollID, err)
	}
	valid := false
	for _, o := range options {
		if o == option {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("option %q is not part of poll %d: %w", option, pollID, gorm.ErrInvalidData)
	}

	vote := models.PollVote{PollID: pollID, UserID: userID, Option: option}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "poll_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"option", "updated_at"}),
	}).Create(&vote).Error
}

// Results aggregates raw vote rows into per-option tallies. Options with
// no votes still appear with a zero count.
func (s *PollStore) Results(ctx context.Context, pollID uint) (map[string]int64, error) {
	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	tally := map[string]int64{}
	var options []string
	if err := json.Unmarshal(poll.Options, &options); err == nil {
		for _, o := range options {
			tally[o] = 0
		}
	}

	rows := []struct {
		Option string
		Count  int64
	}{}
	err = s.db.WithContext(ctx).
		Model(&models.PollVote{}).
		Select(`"option", COUNT(*) as count`).
		Where("poll_id = ?", pollID).
		Group(`"option"`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		tally[r.Option] = r.Count
	}
	return tally, nil
}
