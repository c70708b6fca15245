package repository

import (
	"context"

	"Mergington-App/internal/domain/model"
)

// ActivitiesRepository 活動ディレクトリ全体の読み込み・保存
type ActivitiesRepository interface {
	// Load 保存先からディレクトリを読み込む。失敗時も空のディレクトリを返す
	Load(ctx context.Context) (model.Directory, error)
	// Save ディレクトリ全体で保存先を上書きする
	Save(ctx context.Context, directory model.Directory) error
}
