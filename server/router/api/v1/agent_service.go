package v1

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/pkg/errors"

	"github.com/showrunnerhq/showrunner/server/agent"
	"github.com/showrunnerhq/showrunner/store"
)

type assistantMessageRequest struct {
	Content string `json:"content"`
}

type confirmationRequest struct {
	Approved bool `json:"approved"`
}

type assistantMessageResponse struct {
	ID             int32           `json:"id"`
	Role           string          `json:"role"`
	Content        string          `json:"content"`
	Status         string          `json:"status,omitempty"`
	ConfirmationID string          `json:"confirmationId,omitempty"`
	Actions        []actionSummary `json:"actions,omitempty"`
	CreatedTs      int64           `json:"createdTs"`
}

type actionSummary struct {
	Tool        string `json:"tool"`
	Description string `json:"description"`
}

func (s *APIV1Service) registerAssistantRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/projects/:project/assistant")
	g.GET("/messages", s.listAssistantMessages)
	g.POST("/messages", s.postAssistantMessage)
	g.POST("/confirmations/:id", s.resolveAssistantConfirmation)
}

func (s *APIV1Service) listAssistantMessages(c *echo.Context) error {
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	project, err := s.requireProject(c, user)
	if err != nil {
		return err
	}
	msgs, err := s.Store.ListAgentMessages(c.Request().Context(), &store.FindAgentMessage{
		ProjectID: project.ID,
		UserID:    user.ID,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// Stored newest first; serve oldest first.
	resp := make([]assistantMessageResponse, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		resp = append(resp, assistantMessageResponse{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedTs: m.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) postAssistantMessage(c *echo.Context) error {
	if s.Agent == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is not configured (missing OPENROUTER_API_KEY)")
	}
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	project, err := s.requireProject(c, user)
	if err != nil {
		return err
	}
	var req assistantMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reply, err := s.Agent.HandleMessage(c.Request().Context(), project, user.ID, req.Content)
	if err != nil {
		return mapAgentError(err)
	}
	return c.JSON(http.StatusOK, toAssistantResponse(reply))
}

func (s *APIV1Service) resolveAssistantConfirmation(c *echo.Context) error {
	if s.Agent == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is not configured (missing OPENROUTER_API_KEY)")
	}
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	project, err := s.requireProject(c, user)
	if err != nil {
		return err
	}
	var req confirmationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reply, err := s.Agent.ResolveConfirmation(c.Request().Context(), project, user.ID, c.Param("id"), req.Approved)
	if err != nil {
		return mapAgentError(err)
	}
	return c.JSON(http.StatusOK, toAssistantResponse(reply))
}

func mapAgentError(err error) error {
	switch {
	case errors.Is(err, agent.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, agent.ErrConfirmationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func toAssistantResponse(reply *agent.Reply) assistantMessageResponse {
	resp := assistantMessageResponse{
		ID:        reply.Message.ID,
		Role:      reply.Message.Role,
		Content:   reply.Message.Content,
		CreatedTs: reply.Message.CreatedTs,
	}
	if reply.Confirmation != nil {
		resp.Status = "pending_confirmation"
		resp.ConfirmationID = reply.Confirmation.ID
		for _, action := range reply.Confirmation.Actions {
			resp.Actions = append(resp.Actions, actionSummary{
				Tool:        action.Tool,
				Description: action.Description,
			})
		}
	}
	return resp
}
