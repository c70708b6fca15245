package metrics

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"Mergington-App/internal/domain/model"
)

// result ラベルの値
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	// SignupsTotal 参加登録の試行回数（result別）
	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_signups_total",
			Help: "Total number of activity signup attempts by result",
		},
		[]string{"result"},
	)

	// UnregistrationsTotal 登録解除の試行回数（result別）
	UnregistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_unregistrations_total",
			Help: "Total number of activity unregister attempts by result",
		},
		[]string{"result"},
	)

	// StoreSavesTotal ファイル保存の回数（success / error）
	StoreSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_store_saves_total",
			Help: "Total number of directory saves to the backing file by result",
		},
		[]string{"result"},
	)

	// ActivitiesLoaded 直近に読み込んだ活動数
	ActivitiesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "activities_loaded",
			Help: "Number of activities loaded at startup",
		},
	)

	// HTTPRequestDuration リクエスト処理時間
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ResultLabel エラーをresultラベルの値に変換する（ドメインエラーはコードの小文字、その他はerror）
func ResultLabel(err error) string {
	if err == nil {
		return ResultSuccess
	}
	var dirErr *model.DirectoryError
	if errors.As(err, &dirErr) {
		return strings.ToLower(string(dirErr.Code))
	}
	return ResultError
}
