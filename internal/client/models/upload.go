package models

// UploadStatus tracks the lifecycle of a locally queued upload.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadUploading UploadStatus = "uploading"
	UploadComplete  UploadStatus = "complete"
	UploadError     UploadStatus = "error"
)

// QueueItem is one entry of the local upload queue. Items are created when a
// file is queued, mutated as the upload progresses, and reconciled against
// the server-confirmed document list by display name.
type QueueItem struct {
	ID        string
	Name      string
	SizeLabel string
	Progress  int
	Status    UploadStatus
	// Detail carries the failure message for Status == UploadError.
	Detail string
}
