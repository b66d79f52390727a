// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/model"
)

// =============================================================================
// LIST / DETAILS
// =============================================================================

func TestClient_ListConversations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/chat/conversations", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"conversations": []map[string]string{
				{"id": "c1", "name": "Math questions"},
				{"id": "c2", "name": "Enrollment"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok-1")
	infos, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "c1", infos[0].ID)
	assert.Equal(t, "Enrollment", infos[1].Name)
}

func TestClient_GetConversationDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/conversations/c1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "c1",
			"name": "Math questions",
			"messages": []map[string]any{
				{"id": "m1", "sender": "user", "content": "hi", "sent_at": "2026-01-05T10:00:00Z"},
				{"id": "m2", "sender": "assistant", "content": "hello", "sent_at": "2026-01-05T10:00:01Z"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	details, err := client.GetConversationDetails(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, details.Messages, 2)
	assert.Equal(t, model.RoleUser, details.Messages[0].Role)
	assert.Equal(t, model.RoleAssistant, details.Messages[1].Role)
	assert.False(t, details.Messages[0].Provisional, "server messages are never provisional")
}

// =============================================================================
// POST MESSAGE
// =============================================================================

func TestClient_PostMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/conversations/c1/messages", r.URL.Path)

		var in struct {
			Content string `json:"content"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Hello", in.Content)

		json.NewEncoder(w).Encode(map[string]any{
			"user_message": map[string]any{"id": "m10", "sender": "user", "content": "Hello"},
			"reply":        map[string]any{"id": "m11", "sender": "assistant", "content": "Hi there"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	res, err := client.PostMessage(context.Background(), "c1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "m10", res.UserMessage.ID)
	assert.Equal(t, "Hi there", res.Reply.Content)
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad token"}}`, ErrAuthFailed},
		{"forbidden", http.StatusForbidden, `{}`, ErrAuthFailed},
		{"not found", http.StatusNotFound, `{"error":{"message":"no such conversation"}}`, ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "tok")
			_, err := client.ListConversations(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v, want %v", err, tc.wantErr)
		})
	}
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"database down"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	err := client.DeleteConversation(context.Background(), "c1")
	require.Error(t, err)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusInternalServerError, svcErr.Status)
	assert.Contains(t, svcErr.Error(), "database down")
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient("", "")
	_, err := client.ListConversations(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_DeleteAndClear(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	require.NoError(t, client.DeleteConversation(context.Background(), "c9"))
	require.NoError(t, client.ClearConversation(context.Background(), "c9"))

	assert.Equal(t, []string{
		"DELETE /chat/conversations/c9",
		"POST /chat/conversations/c9/clear",
	}, gotPaths)
}
