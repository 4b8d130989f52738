package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
)

const (
	pullRequestPrefix    = "pull-request:"
	detailsPrefix        = "pull-request-details:"
	pendingReviewPrefix  = "pending-review:"
	pendingCommentPrefix = "pending-review-comments:"
)

// Mirror es la vista tipada sobre el almacenamiento local durable. Toda
// lectura ausente devuelve nil sin error: la ausencia es un estado válido
// del espejo, no una falla.
type Mirror struct {
	store ports.KeyValueStore
}

func NewMirror(store ports.KeyValueStore) *Mirror {
	return &Mirror{store: store}
}

func (m *Mirror) GetPullRequest(id string) (*models.PullRequest, error) {
	var pr models.PullRequest
	ok, err := m.get(pullRequestPrefix+id, &pr)
	if err != nil || !ok {
		return nil, err
	}
	return &pr, nil
}

func (m *Mirror) SavePullRequest(pr models.PullRequest) error {
	return m.set(pullRequestPrefix+pr.ID, pr)
}

func (m *Mirror) DeletePullRequest(id string) error {
	if err := m.store.Delete(pullRequestPrefix + id); err != nil {
		return err
	}
	if err := m.store.Delete(detailsPrefix + id); err != nil {
		return err
	}
	if err := m.store.Delete(pendingReviewPrefix + id); err != nil {
		return err
	}
	return m.store.Delete(pendingCommentPrefix + id)
}

// ListPullRequests devuelve todas las PRs del espejo ordenadas por número.
func (m *Mirror) ListPullRequests() ([]models.PullRequest, error) {
	keys, err := m.store.Keys(pullRequestPrefix)
	if err != nil {
		return nil, err
	}

	result := make([]models.PullRequest, 0, len(keys))
	for _, key := range keys {
		var pr models.PullRequest
		ok, err := m.get(key, &pr)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, pr)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (m *Mirror) GetDetails(pullRequestID string) (*models.PullRequestDetails, error) {
	var details models.PullRequestDetails
	ok, err := m.get(detailsPrefix+pullRequestID, &details)
	if err != nil || !ok {
		return nil, err
	}
	return &details, nil
}

func (m *Mirror) SaveDetails(details models.PullRequestDetails) error {
	return m.set(detailsPrefix+details.PullRequestID, details)
}

func (m *Mirror) GetPendingReview(pullRequestID string) (*models.PendingReview, error) {
	var review models.PendingReview
	ok, err := m.get(pendingReviewPrefix+pullRequestID, &review)
	if err != nil || !ok {
		return nil, err
	}
	return &review, nil
}

func (m *Mirror) SavePendingReview(review models.PendingReview) error {
	return m.set(pendingReviewPrefix+review.PullRequestID, review)
}

func (m *Mirror) DeletePendingReview(pullRequestID string) error {
	return m.store.Delete(pendingReviewPrefix + pullRequestID)
}

func (m *Mirror) GetPendingReviewComments(pullRequestID string) ([]models.PendingReviewComment, error) {
	var comments []models.PendingReviewComment
	if _, err := m.get(pendingCommentPrefix+pullRequestID, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (m *Mirror) SavePendingReviewComments(pullRequestID string, comments []models.PendingReviewComment) error {
	if len(comments) == 0 {
		return m.store.Delete(pendingCommentPrefix + pullRequestID)
	}
	return m.set(pendingCommentPrefix+pullRequestID, comments)
}

func (m *Mirror) get(key string, out interface{}) (bool, error) {
	data, err := m.store.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("error deserializando la clave '%s': %w", key, err)
	}
	return true, nil
}

func (m *Mirror) set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializando la clave '%s': %w", key, err)
	}
	return m.store.Set(key, data)
}
