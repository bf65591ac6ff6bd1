package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/smartcampus/assistant-cli/internal/client/services"
)

// ListDocs shows the library: the local upload queue reconciled with the
// server-confirmed document list. When the server cannot be reached the
// local queue is still shown.
func (a *App) ListDocs(ctx context.Context) error {
	items, err := a.uploads.Merged(ctx)
	if err != nil {
		if api.IsUnauthenticated(err) {
			return a.report(ctx, err)
		}
		printlnFn("Server list unavailable, showing local queue only:", err.Error())
	}
	if len(items) == 0 {
		printlnFn("No documents yet; use 'upload <path>' or 'wiki <query>'")
		return nil
	}
	for _, it := range items {
		printlnFn(formatQueueItem(it))
	}
	return nil
}

func formatQueueItem(it models.QueueItem) string {
	switch it.Status {
	case models.UploadPending:
		return fmt.Sprintf("[wait] %-30s queued %s", it.Name, it.SizeLabel)
	case models.UploadUploading:
		return fmt.Sprintf("[%3d%%] %-30s uploading", it.Progress, it.Name)
	case models.UploadError:
		return fmt.Sprintf("[err ] %-30s %s (dismiss %s)", it.Name, it.Detail, it.ID)
	default:
		return fmt.Sprintf("[done] %-30s %s", it.Name, it.ID)
	}
}

func (a *App) ShowDoc(ctx context.Context, id string) error {
	doc, err := a.client.GetDocument(ctx, id)
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn(fmt.Sprintf("%s (%s)", doc.Name, doc.ID))
	printlnFn(fmt.Sprintf("chunks: %d, difficulty: %s, version: %d, ingested: %s",
		doc.ChunkCount, doc.Difficulty, doc.Version, doc.IngestedAt))
	if doc.Summary != "" {
		printlnFn(doc.Summary)
	}
	return nil
}

func (a *App) Similar(ctx context.Context, id string) error {
	hits, err := a.client.SimilarDocuments(ctx, id)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(hits) == 0 {
		printlnFn("No similar documents")
		return nil
	}
	for _, h := range hits {
		printlnFn(fmt.Sprintf("%.3f %s: %s", h.Score, h.Source, snippet(h.Text)))
	}
	return nil
}

func (a *App) DeleteDoc(ctx context.Context, id string) error {
	if err := a.client.DeleteDocument(ctx, id); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Deleted document", id)
	return nil
}

// Upload queues a local file and streams it to the backend. A duplicate-
// content rejection leaves an error row in the queue and suggests a forced
// retry; an oversized file is reported with the server's limit message.
func (a *App) Upload(ctx context.Context, path string, force bool) error {
	f, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot open file:", err.Error())
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	item, err := a.uploads.Enqueue(ctx, filepath.Base(path), st.Size())
	if err != nil {
		return a.report(ctx, err)
	}

	res, err := a.uploads.Upload(ctx, item.ID, f, st.Size(), force)
	if err != nil {
		if api.IsPayloadTooLarge(err) {
			printlnFn("File rejected as too large:", err.Error())
			printlnFn("The failed row stays in the queue; remove it with 'dismiss " + item.ID + "'")
			return err
		}
		return a.report(ctx, err)
	}

	if res.Duplicate {
		printlnFn("Duplicate content detected:", res.Message)
		printlnFn("Re-run as 'upload " + path + " force' to ingest anyway")
		return nil
	}

	printlnFn(fmt.Sprintf("Uploaded %s: document %s, %d chunks, difficulty %s",
		item.Name, res.DocumentID, res.ChunksAdded, res.Difficulty))
	return nil
}

func (a *App) Queue(ctx context.Context) error {
	items, err := a.uploads.Queue(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(items) == 0 {
		printlnFn("Upload queue is empty")
		return nil
	}
	for _, it := range items {
		printlnFn(formatQueueItem(it))
	}
	return nil
}

func (a *App) Dismiss(ctx context.Context, id string) error {
	if err := a.uploads.Dismiss(ctx, id); err != nil {
		if errors.Is(err, services.ErrNotQueued) {
			printlnFn("No queued upload with id", id)
			return err
		}
		return a.report(ctx, err)
	}
	printlnFn("Dismissed", id)
	return nil
}

func (a *App) Wiki(ctx context.Context, query string) error {
	res, err := a.client.IngestWikipedia(ctx, query)
	if err != nil {
		return a.report(ctx, err)
	}
	if res.Duplicate {
		printlnFn("Article already ingested:", res.Message)
		return nil
	}
	printlnFn(fmt.Sprintf("Ingested article as document %s (%d chunks)", res.DocumentID, res.ChunksAdded))
	return nil
}
