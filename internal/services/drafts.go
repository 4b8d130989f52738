package services

import (
	"encoding/json"
	"fmt"

	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
)

// DraftService persiste los borradores de texto del usuario, independientes
// del estado de sincronización. Sobreviven reinicios del proceso.
type DraftService struct {
	store ports.KeyValueStore
}

func NewDraftService(store ports.KeyValueStore) *DraftService {
	return &DraftService{store: store}
}

// CommentDraftKey devuelve la clave del borrador de comentario de una PR.
func CommentDraftKey(pullRequestID string) string {
	return "draft-comment:" + pullRequestID
}

// ReplyDraftKey devuelve la clave del borrador de respuesta a un comentario.
func ReplyDraftKey(pullRequestID, parentCommentID string) string {
	return fmt.Sprintf("draft-reply:%s:%s", pullRequestID, parentCommentID)
}

func (s *DraftService) Get(key string) (string, error) {
	data, err := s.store.Get(key)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return "", fmt.Errorf("error deserializando el borrador '%s': %w", key, err)
	}
	return text, nil
}

func (s *DraftService) Set(key, text string) error {
	data, err := json.Marshal(text)
	if err != nil {
		return fmt.Errorf("error serializando el borrador '%s': %w", key, err)
	}
	return s.store.Set(key, data)
}

// Clear borra el borrador. Es idempotente.
func (s *DraftService) Clear(key string) error {
	return s.store.Delete(key)
}
