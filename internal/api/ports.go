// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/model"
)

// ConversationInfo is the lightweight shape returned by list/create.
type ConversationInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConversationDetails is the full shape returned by the details fetch.
type ConversationDetails struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Messages []*model.Message `json:"messages"`
}

// Service is the remote conversation service consumed by the session manager.
//
// Every call is an asynchronous boundary: implementations may block on the
// network, callers must not hold the session lock across a call.
type Service interface {
	// ListConversations returns the caller's conversations, ordered.
	ListConversations(ctx context.Context) ([]ConversationInfo, error)

	// GetConversationDetails returns a conversation with its full history.
	GetConversationDetails(ctx context.Context, id string) (*ConversationDetails, error)

	// CreateConversation creates a new, empty conversation server-side.
	CreateConversation(ctx context.Context) (*ConversationInfo, error)

	// PostMessage posts user text and returns the assistant's reply. The
	// confirmed user message travels back alongside the reply.
	PostMessage(ctx context.Context, id, text string) (*PostResult, error)

	// DeleteConversation removes a conversation server-side.
	DeleteConversation(ctx context.Context, id string) error

	// ClearConversation erases a conversation's history server-side.
	// Only invoked when the clear policy is set to "server".
	ClearConversation(ctx context.Context, id string) error
}

// PostResult carries the settled outcome of a message post: the confirmed
// user message (server-assigned id) and the assistant's reply.
type PostResult struct {
	UserMessage *model.Message `json:"user_message"`
	Reply       *model.Message `json:"reply"`
}
