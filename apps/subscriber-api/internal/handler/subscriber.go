package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriber-api/internal/usecase"
)

// HandleValidate はPOST /api/v1/subscribers/validate のハンドラー。
// 保存は行わず、正規化済みドキュメントまたは違反一覧を返す。
// クエリ imsi を指定すると既存加入者の更新として検証する。
func (h *SubscriberHandler) HandleValidate(c *gin.Context) {
	req := h.newRequest(c, true)
	if req == nil {
		return
	}
	imsi := c.Query("imsi")

	sub, err := h.useCase.Validate(c.Request.Context(), req, imsi)
	if err != nil {
		h.handleError(c, imsi, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// HandleCreate はPOST /api/v1/subscribers のハンドラー。
func (h *SubscriberHandler) HandleCreate(c *gin.Context) {
	req := h.newRequest(c, true)
	if req == nil {
		return
	}

	sub, err := h.useCase.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "", err)
		return
	}

	h.logSuccess(c, "subscriber created", usecase.EventCreate, sub.IMSI, http.StatusCreated)
	c.Header("Location", "/api/v1/subscribers/"+sub.IMSI)
	c.JSON(http.StatusCreated, sub)
}

// HandleGet はGET /api/v1/subscribers/:imsi のハンドラー。
func (h *SubscriberHandler) HandleGet(c *gin.Context) {
	imsi := c.Param("imsi")

	sub, err := h.useCase.Get(c.Request.Context(), imsi)
	if err != nil {
		h.handleError(c, imsi, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// HandleUpdate はPUT /api/v1/subscribers/:imsi のハンドラー。
func (h *SubscriberHandler) HandleUpdate(c *gin.Context) {
	imsi := c.Param("imsi")
	req := h.newRequest(c, true)
	if req == nil {
		return
	}

	sub, err := h.useCase.Update(c.Request.Context(), req, imsi)
	if err != nil {
		h.handleError(c, imsi, err)
		return
	}

	h.logSuccess(c, "subscriber updated", usecase.EventUpdate, imsi, http.StatusOK)
	c.JSON(http.StatusOK, sub)
}

// HandleDelete はDELETE /api/v1/subscribers/:imsi のハンドラー。
func (h *SubscriberHandler) HandleDelete(c *gin.Context) {
	imsi := c.Param("imsi")
	req := h.newRequest(c, false)

	if err := h.useCase.Delete(c.Request.Context(), req, imsi); err != nil {
		h.handleError(c, imsi, err)
		return
	}

	h.logSuccess(c, "subscriber deleted", usecase.EventDelete, imsi, http.StatusNoContent)
	c.Status(http.StatusNoContent)
}

// HandleList はGET /api/v1/subscribers のハンドラー。
func (h *SubscriberHandler) HandleList(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.handleError(c, "", usecase.ErrInvalidPage)
			return
		}
		page = n
	}

	res, err := h.useCase.List(c.Request.Context(), c.Query("imsi"), page)
	if err != nil {
		h.handleError(c, "", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
