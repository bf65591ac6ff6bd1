package services

import "github.com/smartcampus/assistant-cli/internal/client/models"

// MergeByName reconciles the local upload queue with the server-confirmed
// document list into one display list. Display name is the join key.
//
// Local entries always win a name collision, so an in-flight progress bar or
// a persisted error row is never masked by a stale server listing of the same
// file. Server documents with no local counterpart are appended after the
// local entries as completed items.
func MergeByName(local []models.QueueItem, server []models.Document) []models.QueueItem {
	out := make([]models.QueueItem, 0, len(local)+len(server))
	seen := make(map[string]struct{}, len(local))
	for _, item := range local {
		out = append(out, item)
		seen[item.Name] = struct{}{}
	}
	for _, doc := range server {
		if _, ok := seen[doc.Name]; ok {
			continue
		}
		out = append(out, models.QueueItem{
			ID:       doc.ID,
			Name:     doc.Name,
			Progress: 100,
			Status:   models.UploadComplete,
		})
	}
	return out
}
