package agent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestOpenAI_Ask(t *testing.T) {
	// Given
	var received chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": " Listing 102 earned 59. "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`)
	}))
	defer server.Close()

	a := NewOpenAI(Settings{BaseURL: server.URL + "/v1"})
	table := domain.NewTable([]string{"Listing ID", "rentalRevenue"}, [][]string{{"102", "59"}})

	// When
	answer, err := a.Ask(context.Background(), "sk-test", table, "What did listing 102 earn?")

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Listing 102 earned 59.", answer)
	assert.Equal(t, DefaultModel, received.Model)
	require.Len(t, received.Messages, 2)
	assert.Contains(t, received.Messages[1].Content, "Listing ID,rentalRevenue\n102,59\n")
	assert.Contains(t, received.Messages[1].Content, "What did listing 102 earn?")
}

func TestOpenAI_AskFailureIsAgentError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`)
	}))
	defer server.Close()

	a := NewOpenAI(Settings{BaseURL: server.URL + "/v1"})

	answer, err := a.Ask(context.Background(), "sk-bad", domain.NewTable([]string{"a"}, nil), "anything?")

	assert.Empty(t, answer)
	var agentErr *domain.AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestOpenAI_AskRejectsEmptyQuestion(t *testing.T) {
	a := NewOpenAI(Settings{BaseURL: "http://127.0.0.1:0/v1"})

	_, err := a.Ask(context.Background(), "sk", domain.NewTable([]string{"a"}, nil), "  ")

	var agentErr *domain.AgentError
	assert.ErrorAs(t, err, &agentErr)
}
