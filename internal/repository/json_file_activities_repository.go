package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/xeipuuv/gojsonschema"

	"Mergington-App/internal/domain/model"
	"Mergington-App/internal/domain/repository"
)

// JSONFileActivitiesRepository 単一のJSONファイルに活動ディレクトリを保存するリポジトリ
type JSONFileActivitiesRepository struct {
	fs   afero.Fs
	path string
}

// NewJSONFileActivitiesRepository 新しいJSONFileActivitiesRepositoryインスタンスを作成
func NewJSONFileActivitiesRepository(filesystem afero.Fs, path string) repository.ActivitiesRepository {
	return &JSONFileActivitiesRepository{
		fs:   filesystem,
		path: path,
	}
}

// Load ファイルからディレクトリを読み込む
// ファイルが無い場合は空のディレクトリ、読めない・壊れている場合は空のディレクトリとエラーを返す
func (r *JSONFileActivitiesRepository) Load(ctx context.Context) (model.Directory, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Directory{}, nil
		}
		return model.Directory{}, fmt.Errorf("活動ファイルの読み込み失敗 (%s): %w", r.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return model.Directory{}, nil
	}

	if err := validateActivitiesDocument(data); err != nil {
		return model.Directory{}, fmt.Errorf("活動ファイルの検証失敗 (%s): %w", r.path, err)
	}

	var directory model.Directory
	if err := json.Unmarshal(data, &directory); err != nil {
		return model.Directory{}, fmt.Errorf("活動ファイルのJSONアンマーシャル失敗 (%s): %w", r.path, err)
	}
	if directory == nil {
		directory = model.Directory{}
	}

	return directory, nil
}

// Save ディレクトリ全体をファイルに書き出す
// 同じディレクトリの一時ファイルに書いてからリネームするので、途中で失敗しても元のファイルは残る
func (r *JSONFileActivitiesRepository) Save(ctx context.Context, directory model.Directory) error {
	data, err := encodeDirectory(directory)
	if err != nil {
		return fmt.Errorf("活動データのJSONマーシャル失敗: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := r.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("保存先ディレクトリの作成失敗 (%s): %w", dir, err)
	}

	tmp, err := afero.TempFile(r.fs, dir, ".activities-*.json")
	if err != nil {
		return fmt.Errorf("一時ファイルの作成失敗: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("一時ファイルへの書き込み失敗: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("一時ファイルのクローズ失敗: %w", err)
	}
	if err := r.fs.Chmod(tmpName, 0o644); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("一時ファイルの権限設定失敗: %w", err)
	}
	if err := r.fs.Rename(tmpName, r.path); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("活動ファイルの置き換え失敗 (%s): %w", r.path, err)
	}

	return nil
}

// validateActivitiesDocument JSONスキーマで活動ファイルを検証
func validateActivitiesDocument(data []byte) error {
	result, err := gojsonschema.Validate(activitiesSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("JSONの解析失敗: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("スキーマ違反: %s", strings.Join(errs, "; "))
	}

	return nil
}

// encodeDirectory 2スペースインデント・HTMLエスケープなしでエンコード
func encodeDirectory(directory model.Directory) ([]byte, error) {
	if directory == nil {
		directory = model.Directory{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(directory); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
