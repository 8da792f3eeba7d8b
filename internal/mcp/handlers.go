// ABOUTME: MCP tool handler implementations for the coaching server
// ABOUTME: Thin adapters from tool arguments to the coaching service

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/brezcode/coach/internal/coach"
	"github.com/brezcode/coach/internal/models"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	service *coach.Service
	log     *logrus.Logger
}

// StartSession handles the start_session tool
func (h *Handlers) StartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}
	avatarID, err := request.RequireString("avatar_id")
	if err != nil {
		return mcp.NewToolResultError("avatar_id argument is required and must be a string"), nil
	}

	scenario := models.Scenario{
		Name:         request.GetString("scenario", ""),
		Description:  request.GetString("scenario_description", ""),
		CustomerMood: request.GetString("customer_mood", ""),
	}

	sess, err := h.service.StartSession(ctx, userID, avatarID, scenario)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start session: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"session_id": sess.SessionID,
		"avatar_id":  sess.AvatarID,
		"scenario":   sess.Scenario.Name,
		"status":     string(sess.Status),
		"started_at": sess.StartedAt.Format(time.RFC3339),
	})
}

// SendMessage handles the send_message tool
func (h *Handlers) SendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	turn, err := h.service.SendMessage(ctx, sessionID, message)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to send message: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"customer_message_id": turn.Customer.MessageID,
		"avatar_message_id":   turn.Avatar.MessageID,
		"avatar_response":     turn.Avatar.Content,
		"quality_score":       turn.Avatar.QualityScore,
		"empathy_score":       turn.Avatar.EmpathyScore,
		"accuracy_score":      turn.Avatar.AccuracyScore,
		"fallback":            turn.Fallback,
	})
}

// CompleteSession handles the complete_session tool
func (h *Handlers) CompleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	sess, err := h.service.CompleteSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete session: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"session_id": sess.SessionID,
		"status":     string(sess.Status),
		"summary":    sess.Summary,
		"metrics": map[string]interface{}{
			"message_count":     sess.Metrics.MessageCount,
			"avatar_responses":  sess.Metrics.AvatarResponses,
			"avg_quality_score": sess.Metrics.AvgQualityScore,
			"revision_count":    sess.Metrics.RevisionCount,
		},
	})
}

// GiveFeedback handles the give_feedback tool
func (h *Handlers) GiveFeedback(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	messageID, err := request.RequireString("message_id")
	if err != nil {
		return mcp.NewToolResultError("message_id argument is required and must be a string"), nil
	}
	comment, err := request.RequireString("comment")
	if err != nil {
		return mcp.NewToolResultError("comment argument is required and must be a string"), nil
	}
	rating := request.GetInt("rating", 0)

	msg, err := h.service.ReviseMessage(ctx, messageID, rating, comment)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to revise message: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"message_id":             msg.MessageID,
		"original_response":      msg.Content,
		"improved_response":      msg.ImprovedResponse,
		"improved_quality_score": msg.ImprovedQualityScore,
		"feedback_rating":        msg.FeedbackRating,
	})
}

// GetSessionHistory handles the get_session_history tool
func (h *Handlers) GetSessionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	sess, err := h.service.GetSession(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get session: %v", err)), nil
	}
	transcript, err := h.service.Transcript(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get transcript: %v", err)), nil
	}

	messages := make([]map[string]interface{}, 0, len(transcript))
	for _, msg := range transcript {
		entry := map[string]interface{}{
			"message_id": msg.MessageID,
			"sequence":   msg.SequenceNumber,
			"role":       string(msg.Role),
			"content":    msg.Content,
			"created_at": msg.CreatedAt.Format(time.RFC3339),
		}
		if msg.QualityScore > 0 {
			entry["quality_score"] = msg.QualityScore
		}
		if msg.ImprovedResponse != "" {
			entry["improved_response"] = msg.ImprovedResponse
			entry["improved_quality_score"] = msg.ImprovedQualityScore
			entry["feedback_rating"] = msg.FeedbackRating
			entry["feedback_comment"] = msg.FeedbackComment
		}
		messages = append(messages, entry)
	}

	return jsonResult(map[string]interface{}{
		"session_id": sess.SessionID,
		"avatar_id":  sess.AvatarID,
		"status":     string(sess.Status),
		"scenario":   sess.Scenario.Name,
		"summary":    sess.Summary,
		"messages":   messages,
	})
}

// ListPersonas handles the list_personas tool
func (h *Handlers) ListPersonas(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	personas := h.service.Personas()

	list := make([]map[string]interface{}, 0, len(personas))
	for _, p := range personas {
		list = append(list, map[string]interface{}{
			"id":        p.ID,
			"name":      p.Name,
			"role":      p.Role,
			"tone":      p.Tone,
			"expertise": p.Expertise,
		})
	}

	return jsonResult(map[string]interface{}{
		"personas": list,
	})
}

// UploadDocument handles the upload_document tool
func (h *Handlers) UploadDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	avatarID, err := request.RequireString("avatar_id")
	if err != nil {
		return mcp.NewToolResultError("avatar_id argument is required and must be a string"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}
	title := request.GetString("title", "")

	doc, err := h.service.UploadDocument(avatarID, title, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to upload document: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"document_id": doc.DocumentID,
		"avatar_id":   doc.AvatarID,
		"title":       doc.Title,
		"chunk_count": doc.ChunkCount,
	})
}

// SearchKnowledge handles the search_knowledge tool
func (h *Handlers) SearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	avatarID, err := request.RequireString("avatar_id")
	if err != nil {
		return mcp.NewToolResultError("avatar_id argument is required and must be a string"), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 5)

	chunks, err := h.service.SearchKnowledge(avatarID, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("knowledge search failed: %v", err)), nil
	}

	results := make([]map[string]interface{}, 0, len(chunks))
	for _, ch := range chunks {
		results = append(results, map[string]interface{}{
			"chunk_id":    ch.ChunkID,
			"document_id": ch.DocumentID,
			"index":       ch.Index,
			"content":     ch.Content,
			"keywords":    ch.Keywords,
			"topics":      ch.Topics,
		})
	}

	return jsonResult(map[string]interface{}{
		"results": results,
	})
}

// jsonResult marshals a response map into a text tool result
func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
