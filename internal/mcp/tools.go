// ABOUTME: MCP tool definitions and registration for the coaching server
// ABOUTME: Defines JSON schemas for all 8 coaching tools

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/brezcode/coach/internal/coach"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, service *coach.Service, log *logrus.Logger) *Handlers {
	handlers := &Handlers{
		service: service,
		log:     log,
	}

	// 1. start_session - Begin a training session with an avatar
	server.AddTool(mcp.Tool{
		Name:        "start_session",
		Description: "Start a training session between a user and a coaching avatar. Returns the new session ID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User the session belongs to",
				},
				"avatar_id": map[string]interface{}{
					"type":        "string",
					"description": "Avatar persona to train with (e.g. dr_sakura)",
				},
				"scenario": map[string]interface{}{
					"type":        "string",
					"description": "Optional scenario name (default: general_coaching)",
				},
				"scenario_description": map[string]interface{}{
					"type":        "string",
					"description": "Optional free-text scenario description",
				},
				"customer_mood": map[string]interface{}{
					"type":        "string",
					"description": "Optional mood the simulated customer starts in",
				},
			},
			Required: []string{"user_id", "avatar_id"},
		},
	}, handlers.StartSession)

	// 2. send_message - Post a customer message and get the avatar reply
	server.AddTool(mcp.Tool{
		Name:        "send_message",
		Description: "Post a customer message to an active session. The avatar replies in character, using the user's health profile, past sessions, and uploaded knowledge.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to post into",
				},
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The customer message text",
				},
			},
			Required: []string{"session_id", "message"},
		},
	}, handlers.SendMessage)

	// 3. complete_session - Close a session with a summary
	server.AddTool(mcp.Tool{
		Name:        "complete_session",
		Description: "Complete an active training session. Completing an already-completed session is a no-op.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to complete",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.CompleteSession)

	// 4. give_feedback - Rate an avatar response and request a revision
	server.AddTool(mcp.Tool{
		Name:        "give_feedback",
		Description: "Rate an avatar response 1-5 with a comment. An improved response is generated and attached alongside the original.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message_id": map[string]interface{}{
					"type":        "string",
					"description": "Avatar message to revise",
				},
				"rating": map[string]interface{}{
					"type":        "number",
					"description": "Rating from 1 (poor) to 5 (excellent)",
				},
				"comment": map[string]interface{}{
					"type":        "string",
					"description": "What should change in the response",
				},
			},
			Required: []string{"message_id", "rating", "comment"},
		},
	}, handlers.GiveFeedback)

	// 5. get_session_history - Full transcript for one session
	server.AddTool(mcp.Tool{
		Name:        "get_session_history",
		Description: "Get the complete transcript of a training session in sequence order, including scores and any improved responses.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to read",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.GetSessionHistory)

	// 6. list_personas - All configured avatar personas
	server.AddTool(mcp.Tool{
		Name:        "list_personas",
		Description: "List all configured coaching avatar personas with their roles and expertise.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListPersonas)

	// 7. upload_document - Add knowledge for an avatar
	server.AddTool(mcp.Tool{
		Name:        "upload_document",
		Description: "Upload a text document into an avatar's knowledge base. The text is split into searchable chunks.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"avatar_id": map[string]interface{}{
					"type":        "string",
					"description": "Avatar the document belongs to",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Document title",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Full document text",
				},
			},
			Required: []string{"avatar_id", "content"},
		},
	}, handlers.UploadDocument)

	// 8. search_knowledge - Substring search over an avatar's chunks
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search an avatar's knowledge chunks with a case-insensitive substring query. Returns at most 10 chunks.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"avatar_id": map[string]interface{}{
					"type":        "string",
					"description": "Avatar whose knowledge to search",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Substring to search for",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of chunks to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"avatar_id", "query"},
		},
	}, handlers.SearchKnowledge)

	return handlers
}
