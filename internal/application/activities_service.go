package application

import (
	"context"
	"sync"

	"Mergington-App/internal/domain/model"
	"Mergington-App/internal/domain/repository"
	"Mergington-App/internal/logger"
	"Mergington-App/internal/metrics"
)

// ActivitiesService 課外活動ディレクトリに関するビジネスロジックを提供するサービス
type ActivitiesService interface {
	// Load リポジトリからディレクトリを読み込み、件数を返す
	// 読み込みに失敗した場合は空のディレクトリで継続し、エラーも返す
	Load(ctx context.Context) (int, error)

	// ListActivities 現在のディレクトリのスナップショットを取得
	ListActivities(ctx context.Context) model.Directory

	// SignUp 活動に参加登録する
	SignUp(ctx context.Context, activityName, email string) (*model.ActivityMessageResponse, error)

	// Unregister 活動の参加登録を解除する
	Unregister(ctx context.Context, activityName, email string) (*model.ActivityMessageResponse, error)

	// Count 登録されている活動の数
	Count() int
}

// ServiceOptions サービスの動作設定
type ServiceOptions struct {
	// EnforceCapacity trueの場合、定員に達した活動への登録を拒否する
	EnforceCapacity bool
}

// activitiesServiceImpl ActivitiesServiceの実装
type activitiesServiceImpl struct {
	mu             sync.RWMutex
	directory      model.Directory
	activitiesRepo repository.ActivitiesRepository
	log            logger.Logger
	options        ServiceOptions
}

// NewActivitiesService ActivitiesServiceの新しいインスタンスを作成
// Loadを呼ぶまでディレクトリは空
func NewActivitiesService(activitiesRepo repository.ActivitiesRepository, log logger.Logger, options ServiceOptions) ActivitiesService {
	return &activitiesServiceImpl{
		directory:      model.Directory{},
		activitiesRepo: activitiesRepo,
		log:            log,
		options:        options,
	}
}

// Load ディレクトリを読み込む
func (s *activitiesServiceImpl) Load(ctx context.Context) (int, error) {
	directory, err := s.activitiesRepo.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("failed to load activities, continuing with an empty directory", nil)
		directory = model.Directory{}
	}
	if directory == nil {
		directory = model.Directory{}
	}

	s.mu.Lock()
	s.directory = directory
	s.mu.Unlock()

	metrics.ActivitiesLoaded.Set(float64(len(directory)))
	s.log.Info("activities loaded", map[string]interface{}{
		"count": len(directory),
	})

	return len(directory), err
}

// ListActivities ディレクトリのディープコピーを返す
func (s *activitiesServiceImpl) ListActivities(ctx context.Context) model.Directory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.directory.Clone()
}

// SignUp 参加登録
func (s *activitiesServiceImpl) SignUp(ctx context.Context, activityName, email string) (*model.ActivityMessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	response, err := s.signUpLocked(ctx, activityName, email)
	metrics.SignupsTotal.WithLabelValues(metrics.ResultLabel(err)).Inc()
	return response, err
}

func (s *activitiesServiceImpl) signUpLocked(ctx context.Context, activityName, email string) (*model.ActivityMessageResponse, error) {
	activity, err := s.directory.Get(activityName)
	if err != nil {
		return nil, err
	}

	if activity.HasParticipant(email) {
		return nil, model.NewAlreadyRegisteredError(activityName, email)
	}

	// 定員は既定では表示用のみ
	if s.options.EnforceCapacity && activity.IsFull() {
		return nil, model.NewActivityFullError(activityName, email)
	}

	activity.AddParticipant(email)
	s.persistLocked(ctx, "signup", activityName)

	s.log.Info("student signed up", map[string]interface{}{
		"activity":     activityName,
		"email":        email,
		"participants": len(activity.Participants),
	})

	return model.NewSignupResponse(email, activityName), nil
}

// Unregister 登録解除
func (s *activitiesServiceImpl) Unregister(ctx context.Context, activityName, email string) (*model.ActivityMessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	response, err := s.unregisterLocked(ctx, activityName, email)
	metrics.UnregistrationsTotal.WithLabelValues(metrics.ResultLabel(err)).Inc()
	return response, err
}

func (s *activitiesServiceImpl) unregisterLocked(ctx context.Context, activityName, email string) (*model.ActivityMessageResponse, error) {
	activity, err := s.directory.Get(activityName)
	if err != nil {
		return nil, err
	}

	if !activity.RemoveParticipant(email) {
		return nil, model.NewNotRegisteredError(activityName, email)
	}

	s.persistLocked(ctx, "unregister", activityName)

	s.log.Info("student unregistered", map[string]interface{}{
		"activity":     activityName,
		"email":        email,
		"participants": len(activity.Participants),
	})

	return model.NewUnregisterResponse(email, activityName), nil
}

// Count 活動数
func (s *activitiesServiceImpl) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.directory)
}

// persistLocked ディレクトリを保存する。失敗はログに残すだけで呼び出し元には返さない
func (s *activitiesServiceImpl) persistLocked(ctx context.Context, operation, activityName string) {
	if err := s.activitiesRepo.Save(ctx, s.directory); err != nil {
		metrics.StoreSavesTotal.WithLabelValues(metrics.ResultError).Inc()
		s.log.WithError(err).Warn("failed to persist activities", map[string]interface{}{
			"operation": operation,
			"activity":  activityName,
		})
		return
	}
	metrics.StoreSavesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
}
