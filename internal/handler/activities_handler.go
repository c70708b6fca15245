package handler

import (
	"errors"
	"net/http"
	"strings"

	"Mergington-App/internal/application"
	"Mergington-App/internal/domain/model"

	"github.com/gin-gonic/gin"
)

// ActivitiesHandler 課外活動に関するHTTPハンドラー
type ActivitiesHandler struct {
	activitiesService application.ActivitiesService
}

// NewActivitiesHandler ActivitiesHandlerの新しいインスタンスを作成
func NewActivitiesHandler(activitiesService application.ActivitiesService) *ActivitiesHandler {
	return &ActivitiesHandler{
		activitiesService: activitiesService,
	}
}

// GetActivities GET /activities - 全活動の一覧を取得
func (h *ActivitiesHandler) GetActivities(c *gin.Context) {
	activities := h.activitiesService.ListActivities(c.Request.Context())
	c.JSON(http.StatusOK, activities)
}

// SignUp POST /activities/:name/signup?email= - 活動への参加登録
func (h *ActivitiesHandler) SignUp(c *gin.Context) {
	activityName := c.Param("name")

	var query model.ActivityEmailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondMissingEmail(c)
		return
	}

	response, err := h.activitiesService.SignUp(c.Request.Context(), activityName, query.Email)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Unregister DELETE /activities/:name/unregister?email= - 参加登録の解除
func (h *ActivitiesHandler) Unregister(c *gin.Context) {
	activityName := c.Param("name")

	var query model.ActivityEmailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondMissingEmail(c)
		return
	}

	response, err := h.activitiesService.Unregister(c.Request.Context(), activityName, query.Email)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// respondMissingEmail emailクエリパラメータが無い場合のレスポンス
func respondMissingEmail(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "missing_parameter",
		"detail": "email query parameter is required",
	})
}

// respondDirectoryError ドメインエラーをHTTPステータスに変換して返す
func respondDirectoryError(c *gin.Context, err error) {
	var dirErr *model.DirectoryError
	if !errors.As(err, &dirErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "internal_error",
			"detail": "Failed to process request: " + err.Error(),
		})
		return
	}

	c.JSON(StatusForErrorCode(dirErr.Code), gin.H{
		"error":  strings.ToLower(string(dirErr.Code)),
		"detail": dirErr.Message,
	})
}

// StatusForErrorCode エラーコードに対応するHTTPステータス
func StatusForErrorCode(code model.ErrorCode) int {
	switch code {
	case model.ErrCodeActivityNotFound:
		return http.StatusNotFound
	case model.ErrCodeAlreadyRegistered, model.ErrCodeNotRegistered, model.ErrCodeActivityFull:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
