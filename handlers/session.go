package handlers

import (
	"net/http"

	"timebridge/middleware"
	"timebridge/services/payment"
	"timebridge/services/session"
	"timebridge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler exposes the session lifecycle over HTTP.
type SessionHandler struct {
	Service session.SessionService
	Refunds payment.RefundProcessor
	Logger  *zap.Logger
}

func NewSessionHandler(svc session.SessionService, refunds payment.RefundProcessor, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Service: svc, Refunds: refunds, Logger: logger}
}

// CreateSession books a session for the authenticated requester.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var input session.CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.RequesterID = middleware.ActorID(c)

	sess, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// GetSession fetches a single session.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, err := h.Service.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ListMySessions lists sessions where the authenticated actor is a participant.
func (h *SessionHandler) ListMySessions(c *gin.Context) {
	sessions, err := h.Service.ListForParticipant(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// StartSession transitions a session to IN_PROGRESS.
func (h *SessionHandler) StartSession(c *gin.Context) {
	sess, err := h.Service.Start(c.Request.Context(), c.Param("sessionID"), middleware.ActorID(c))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// CompleteSession transitions a session to COMPLETED.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	var input struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, err := h.Service.Complete(c.Request.Context(), c.Param("sessionID"), middleware.ActorID(c), input.Notes)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// CancelSession cancels a session and issues the refund the policy decided.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sessionID := c.Param("sessionID")

	outcome, err := h.Service.Cancel(c.Request.Context(), sessionID, middleware.ActorID(c), input.Reason)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	// The cancellation already committed; a refund failure is reported to ops,
	// not to the caller.
	if h.Refunds != nil && outcome.RefundPercentage > 0 {
		sess, err := h.Service.Get(c.Request.Context(), sessionID)
		if err == nil {
			if err := h.Refunds.IssueRefund(c.Request.Context(), sessionID, sess.PaymentIntentID, outcome.RefundPercentage); err != nil {
				h.Logger.Error("refund failed after cancellation",
					zap.String("sessionID", sessionID), zap.Error(err))
			}
		}
	}
	c.JSON(http.StatusOK, outcome)
}

// MarkNoShow records an absent participant on a session.
func (h *SessionHandler) MarkNoShow(c *gin.Context) {
	var input struct {
		AbsentParticipantID string `json:"absentParticipantId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, err := h.Service.MarkNoShow(c.Request.Context(), c.Param("sessionID"), input.AbsentParticipantID)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
