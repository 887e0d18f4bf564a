package contact

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/meshly/contactrank/internal/domain/aspect"
	domcon "github.com/meshly/contactrank/internal/domain/contact"
)

// recordDoc is the stored JSON shape of one contact record, written by the
// enrichment pipeline.
type recordDoc struct {
	ContactID  string                  `json:"contactId"`
	UserID     string                  `json:"userId"`
	Payload    map[string]any          `json:"payload"`
	Embeddings map[string]embeddingDoc `json:"embeddings,omitempty"`
	Texts      map[string][]string     `json:"texts"`
	UpdatedAt  time.Time               `json:"updatedAt"`
	Active     bool                    `json:"active"`
}

type embeddingDoc struct {
	Vector     []float32 `json:"vector"`
	Dimensions int       `json:"dimensions"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"createdAt"`
}

// parseRecord decodes a JSON.GET "$" result (array-wrapped) into a domain
// record. fallbackID is used when the document carries no contactId.
func parseRecord(raw []byte, fallbackID string) (domcon.Record, error) {
	var docs []recordDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Some writers store the bare object without the $-array wrapper.
		var single recordDoc
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return domcon.Record{}, fmt.Errorf("unmarshal record: %w", err)
		}
		docs = []recordDoc{single}
	}
	if len(docs) == 0 {
		return domcon.Record{}, fmt.Errorf("empty record document")
	}
	return docToRecord(&docs[0], fallbackID), nil
}

func docToRecord(doc *recordDoc, fallbackID string) domcon.Record {
	id := doc.ContactID
	if id == "" {
		id = fallbackID
	}

	var embeddings map[aspect.Aspect]domcon.Embedding
	if len(doc.Embeddings) > 0 {
		embeddings = make(map[aspect.Aspect]domcon.Embedding, len(doc.Embeddings))
		for k, e := range doc.Embeddings {
			a := aspect.Aspect(k)
			if !a.IsValid() {
				continue
			}
			embeddings[a] = domcon.Embedding{
				Vector:     e.Vector,
				Dimensions: e.Dimensions,
				Model:      e.Model,
				CreatedAt:  e.CreatedAt,
			}
		}
	}

	texts := make(map[aspect.Aspect][]string, len(doc.Texts))
	for k, list := range doc.Texts {
		a := aspect.Aspect(k)
		if !a.IsValid() {
			continue
		}
		texts[a] = list
	}

	return domcon.Reconstruct(id, doc.UserID, doc.Payload, embeddings, texts, doc.UpdatedAt, doc.Active)
}
