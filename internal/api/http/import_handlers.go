package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lifeprep/backend/internal/importer"
	"github.com/lifeprep/backend/internal/question"
	"github.com/lifeprep/backend/internal/storage"
	syncx "github.com/lifeprep/backend/internal/sync"
)

// ImportQuestionsHandler ingests a plain-text Q:/A: upload. The raw file
// is archived to the blob store first so a bad parse can be re-run.
// Staff-only; mounted behind rbac.
//
// POST /api/questions/import  multipart: file, topic, category
func ImportQuestionsHandler(imp *importer.Importer, blobs storage.BlobStore, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			http.Error(w, "bad multipart form", 400)
			return
		}
		topic := strings.TrimSpace(r.FormValue("topic"))
		category := strings.TrimSpace(r.FormValue("category"))
		if !question.ValidTopic(topic) {
			http.Error(w, "invalid topic", 400)
			return
		}
		if !question.ValidCategory(category) {
			http.Error(w, "invalid category", 400)
			return
		}

		file, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", 400)
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		importID := uuid.NewString()
		key := "imports/" + importID + "-" + hdr.Filename
		if _, err := blobs.Put(key, bytes.NewReader(content)); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		sub := importer.SubcategoryFromFilename(hdr.Filename)
		res, err := imp.Import(r.Context(), bytes.NewReader(content),
			question.Topic(topic), question.Category(category), sub)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		if events != nil {
			_ = events.Append(r.Context(), syncx.EventQuestionsImported, importID, res)
		}
		writeJSON(w, res)
	}
}
