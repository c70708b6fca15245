package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Activity 課外活動1件分のレコード（ディレクトリのキーが活動名）
type Activity struct {
	Description     string   `json:"description"`      // 活動の説明
	Schedule        string   `json:"schedule"`         // 開催スケジュール
	MaxParticipants int      `json:"max_participants"` // 定員（表示用）
	Participants    []string `json:"participants"`     // 参加者メールアドレス（登録順）
	Category        string   `json:"category,omitempty"`
	Datetime        string   `json:"datetime,omitempty"`

	// Extra ファイル上にある未知のフィールド。保存時にそのまま書き戻す
	Extra map[string]json.RawMessage `json:"-"`
}

// activityFields Activityが直接扱うJSONキー
var activityFields = []string{
	"description",
	"schedule",
	"max_participants",
	"participants",
	"category",
	"datetime",
}

// activityAlias MarshalJSON/UnmarshalJSONの再帰呼び出しを避けるための別名
type activityAlias Activity

// UnmarshalJSON 既知フィールドを読み込み、残りをExtraに保持する
// max_participants は 12.0 のような整数値の浮動小数も受け付ける
func (a *Activity) UnmarshalJSON(data []byte) error {
	var decoded struct {
		activityAlias
		MaxParticipants *float64 `json:"max_participants"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	alias := decoded.activityAlias
	if decoded.MaxParticipants != nil {
		capacity := *decoded.MaxParticipants
		if capacity != math.Trunc(capacity) {
			return fmt.Errorf("max_participants は整数で指定してください: %v", capacity)
		}
		alias.MaxParticipants = int(capacity)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range activityFields {
		delete(raw, key)
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}
	if alias.Participants == nil {
		alias.Participants = []string{}
	}

	*a = Activity(alias)
	return nil
}

// MarshalJSON 既知フィールドとExtraを1つのオブジェクトとして書き出す
func (a Activity) MarshalJSON() ([]byte, error) {
	alias := activityAlias(a)
	if alias.Participants == nil {
		alias.Participants = []string{}
	}

	data, err := marshalNoEscape(alias)
	if err != nil {
		return nil, err
	}
	if len(a.Extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range a.Extra {
		// 既知フィールドはExtraで上書きしない
		if _, exists := merged[key]; exists {
			continue
		}
		merged[key] = value
	}
	return marshalNoEscape(merged)
}

// HasParticipant 指定メールアドレスが参加者に含まれるか
func (a *Activity) HasParticipant(email string) bool {
	return a.indexOf(email) >= 0
}

// AddParticipant 参加者を末尾に追加する。既に登録済みならfalse
func (a *Activity) AddParticipant(email string) bool {
	if a.HasParticipant(email) {
		return false
	}
	a.Participants = append(a.Participants, email)
	return true
}

// RemoveParticipant 参加者を削除する（残りの順序は維持）。未登録ならfalse
func (a *Activity) RemoveParticipant(email string) bool {
	idx := a.indexOf(email)
	if idx < 0 {
		return false
	}
	a.Participants = append(a.Participants[:idx], a.Participants[idx+1:]...)
	return true
}

// SpotsLeft 残り枠数。定員が未設定（0以下）の場合は-1
func (a *Activity) SpotsLeft() int {
	if a.MaxParticipants <= 0 {
		return -1
	}
	left := a.MaxParticipants - len(a.Participants)
	if left < 0 {
		return 0
	}
	return left
}

// IsFull 定員に達しているか
func (a *Activity) IsFull() bool {
	return a.SpotsLeft() == 0
}

// Clone Activityのディープコピーを返す
func (a *Activity) Clone() *Activity {
	if a == nil {
		return nil
	}
	cloned := *a
	cloned.Participants = append(make([]string, 0, len(a.Participants)), a.Participants...)
	if a.Extra != nil {
		cloned.Extra = make(map[string]json.RawMessage, len(a.Extra))
		for key, value := range a.Extra {
			cloned.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	return &cloned
}

func (a *Activity) indexOf(email string) int {
	for i, participant := range a.Participants {
		if participant == email {
			return i
		}
	}
	return -1
}

// Directory 活動名 → Activity の全体マップ
type Directory map[string]*Activity

// Clone ディレクトリ全体のディープコピーを返す
func (d Directory) Clone() Directory {
	cloned := make(Directory, len(d))
	for name, activity := range d {
		cloned[name] = activity.Clone()
	}
	return cloned
}

// Get 活動を取得する。存在しない場合はNotFoundエラー
func (d Directory) Get(name string) (*Activity, error) {
	activity, exists := d[name]
	if !exists || activity == nil {
		return nil, NewActivityNotFoundError(name)
	}
	return activity, nil
}

// ActivityEmailQuery signup / unregister のクエリパラメータ
type ActivityEmailQuery struct {
	Email string `form:"email" binding:"required"`
}

// ActivityMessageResponse signup / unregister 成功時のレスポンス
type ActivityMessageResponse struct {
	Message string `json:"message"`
}

// NewSignupResponse 登録完了メッセージを作成
func NewSignupResponse(email, activityName string) *ActivityMessageResponse {
	return &ActivityMessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, activityName),
	}
}

// NewUnregisterResponse 登録解除メッセージを作成
func NewUnregisterResponse(email, activityName string) *ActivityMessageResponse {
	return &ActivityMessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, activityName),
	}
}

// marshalNoEscape HTMLエスケープなしでJSONを書き出す（末尾の改行は除去）
func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
