// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/emckay/folio/internal/model"
)

// buildPathTree resolves a path into its full tree: topics with their
// questions and resources, plus path-level resources.
func (h *Handler) buildPathTree(ctx context.Context, path model.PrepPath) (model.PrepPathTree, error) {
	tree := model.PrepPathTree{PrepPath: path, Topics: []model.PrepTopicTree{}}

	pathResources, err := h.store.Prep.ResourcesByParent(ctx, model.ResourceParentPath, path.ID)
	if err != nil {
		return tree, err
	}
	tree.Resources = pathResources
	if tree.Resources == nil {
		tree.Resources = []model.PrepResource{}
	}

	topics, err := h.store.Prep.TopicsByPath(ctx, path.ID)
	if err != nil {
		return tree, err
	}
	for _, topic := range topics {
		node := model.PrepTopicTree{PrepTopic: topic, Questions: []model.PrepQuestion{}, Resources: []model.PrepResource{}}

		questions, err := h.store.Prep.QuestionsByTopic(ctx, topic.ID)
		if err != nil {
			return tree, err
		}
		if questions != nil {
			node.Questions = questions
		}

		resources, err := h.store.Prep.ResourcesByParent(ctx, model.ResourceParentTopic, topic.ID)
		if err != nil {
			return tree, err
		}
		if resources != nil {
			node.Resources = resources
		}
		tree.Topics = append(tree.Topics, node)
	}
	return tree, nil
}

// ListPublishedPaths handles GET /api/prep.
func (h *Handler) ListPublishedPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.store.Prep.Paths(r.Context())
	if err != nil {
		h.writeStoreError(w, err, "prep paths")
		return
	}
	published := make([]model.PrepPath, 0, len(paths))
	for _, p := range paths {
		if p.Published {
			published = append(published, p)
		}
	}
	WriteSuccess(w, Envelope{"paths": published})
}

// GetPublishedPathTree handles GET /api/prep/{id}. Unpublished paths are
// indistinguishable from missing ones.
func (h *Handler) GetPublishedPathTree(w http.ResponseWriter, r *http.Request) {
	path, err := h.store.Prep.Path(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "prep path")
		return
	}
	if !path.Published {
		WriteNotFound(w, "prep path not found")
		return
	}
	tree, err := h.buildPathTree(r.Context(), path)
	if err != nil {
		h.writeStoreError(w, err, "prep path")
		return
	}
	WriteSuccess(w, Envelope{"path": tree})
}

// ListPaths handles GET /api/admin/prep, drafts included.
func (h *Handler) ListPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.store.Prep.Paths(r.Context())
	if err != nil {
		h.writeStoreError(w, err, "prep paths")
		return
	}
	WriteSuccess(w, Envelope{"paths": paths})
}

// GetPathTree handles GET /api/admin/prep/{id}.
func (h *Handler) GetPathTree(w http.ResponseWriter, r *http.Request) {
	path, err := h.store.Prep.Path(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "prep path")
		return
	}
	tree, err := h.buildPathTree(r.Context(), path)
	if err != nil {
		h.writeStoreError(w, err, "prep path")
		return
	}
	WriteSuccess(w, Envelope{"path": tree})
}

type pathRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Published   bool   `json:"published"`
	Position    int    `json:"position"`
}

// CreatePath handles POST /api/admin/prep.
func (h *Handler) CreatePath(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	now := time.Now().UTC()
	path := model.PrepPath{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Published:   req.Published,
		Position:    req.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.Prep.CreatePath(r.Context(), path); err != nil {
		h.writeStoreError(w, err, "prep path")
		return
	}
	WriteCreated(w, Envelope{"path": path})
}

// UpdatePath handles PUT /api/admin/prep/{id}.
func (h *Handler) UpdatePath(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.Prep.Path(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "prep path")
		return
	}

	var req pathRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Icon = req.Icon
	existing.Published = req.Published
	existing.Position = req.Position
	existing.UpdatedAt = time.Now().UTC()
	if err := h.store.Prep.UpdatePath(r.Context(), existing); err != nil {
		h.writeStoreError(w, err, "prep path")
		return
	}
	WriteSuccess(w, Envelope{"path": existing})
}

// DeletePath handles DELETE /api/admin/prep/{id}. Topics, questions, and
// resources under the path go with it.
func (h *Handler) DeletePath(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Prep.DeletePath(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "prep path")
		return
	}
	WriteMessage(w, "prep path deleted")
}

type topicRequest struct {
	PathID      string `json:"path_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

// CreateTopic handles POST /api/admin/prep/topics.
func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" || req.PathID == "" {
		WriteBadRequest(w, "title and path_id are required")
		return
	}

	now := time.Now().UTC()
	topic := model.PrepTopic{
		ID:          uuid.New().String(),
		PathID:      req.PathID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.Prep.CreateTopic(r.Context(), topic); err != nil {
		h.writeStoreError(w, err, "prep topic")
		return
	}
	WriteCreated(w, Envelope{"topic": topic})
}

// UpdateTopic handles PUT /api/admin/prep/topics/{id}.
func (h *Handler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.Prep.Topic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "prep topic")
		return
	}

	var req topicRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Position = req.Position
	existing.UpdatedAt = time.Now().UTC()
	if err := h.store.Prep.UpdateTopic(r.Context(), existing); err != nil {
		h.writeStoreError(w, err, "prep topic")
		return
	}
	WriteSuccess(w, Envelope{"topic": existing})
}

// DeleteTopic handles DELETE /api/admin/prep/topics/{id}.
func (h *Handler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Prep.DeleteTopic(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "prep topic")
		return
	}
	WriteMessage(w, "prep topic deleted")
}

type questionRequest struct {
	TopicID    string `json:"topic_id"`
	Prompt     string `json:"prompt"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
	Position   int    `json:"position"`
}

// CreateQuestion handles POST /api/admin/prep/questions.
func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" || req.TopicID == "" {
		WriteBadRequest(w, "prompt and topic_id are required")
		return
	}

	now := time.Now().UTC()
	q := model.PrepQuestion{
		ID:         uuid.New().String(),
		TopicID:    req.TopicID,
		Prompt:     req.Prompt,
		Answer:     req.Answer,
		Difficulty: req.Difficulty,
		Position:   req.Position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.store.Prep.CreateQuestion(r.Context(), q); err != nil {
		h.writeStoreError(w, err, "prep question")
		return
	}
	WriteCreated(w, Envelope{"question": q})
}

// UpdateQuestion handles PUT /api/admin/prep/questions/{id}.
func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.Prep.Question(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "prep question")
		return
	}

	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		WriteBadRequest(w, "prompt is required")
		return
	}

	existing.Prompt = req.Prompt
	existing.Answer = req.Answer
	existing.Difficulty = req.Difficulty
	existing.Position = req.Position
	existing.UpdatedAt = time.Now().UTC()
	if err := h.store.Prep.UpdateQuestion(r.Context(), existing); err != nil {
		h.writeStoreError(w, err, "prep question")
		return
	}
	WriteSuccess(w, Envelope{"question": existing})
}

// DeleteQuestion handles DELETE /api/admin/prep/questions/{id}.
func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Prep.DeleteQuestion(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "prep question")
		return
	}
	WriteMessage(w, "prep question deleted")
}

type resourceRequest struct {
	ParentType string `json:"parent_type"`
	ParentID   string `json:"parent_id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Kind       string `json:"kind"`
}

// CreateResource handles POST /api/admin/prep/resources.
func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.ParentType != model.ResourceParentPath && req.ParentType != model.ResourceParentTopic {
		WriteBadRequest(w, "parent_type must be path or topic")
		return
	}
	if strings.TrimSpace(req.Title) == "" || req.ParentID == "" || req.URL == "" {
		WriteBadRequest(w, "title, url and parent_id are required")
		return
	}

	res := model.PrepResource{
		ID:         uuid.New().String(),
		ParentType: req.ParentType,
		ParentID:   req.ParentID,
		Title:      req.Title,
		URL:        req.URL,
		Kind:       req.Kind,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.store.Prep.CreateResource(r.Context(), res); err != nil {
		h.writeStoreError(w, err, "prep resource")
		return
	}
	WriteCreated(w, Envelope{"resource": res})
}

// UpdateResource handles PUT /api/admin/prep/resources/{id}. The parent
// linkage is fixed at creation.
func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.Prep.Resource(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "prep resource")
		return
	}

	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" || req.URL == "" {
		WriteBadRequest(w, "title and url are required")
		return
	}

	existing.Title = req.Title
	existing.URL = req.URL
	existing.Kind = req.Kind
	if err := h.store.Prep.UpdateResource(r.Context(), existing); err != nil {
		h.writeStoreError(w, err, "prep resource")
		return
	}
	WriteSuccess(w, Envelope{"resource": existing})
}

// DeleteResource handles DELETE /api/admin/prep/resources/{id}.
func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Prep.DeleteResource(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "prep resource")
		return
	}
	WriteMessage(w, "prep resource deleted")
}
