package artifact

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hierembed/model"
)

var (
	// ErrLabelCount is returned when the label list does not match the
	// number of embedded items.
	ErrLabelCount = errors.New("label count does not match embedding")

	// ErrDuplicateLabel is returned when two items carry the same label,
	// which would make the label index ambiguous.
	ErrDuplicateLabel = errors.New("duplicate label")
)

// Artifact is the persisted result of an embedding run: the ordered
// label list, the label-to-row index and the coordinate matrix.
//
// The JSON keys mirror the historical dump format of hierarchy class
// embeddings, so artifacts stay readable for existing downstream
// tooling.
type Artifact struct {
	Labels    []string       `json:"ind2label"`
	Index     map[string]int `json:"label2ind"`
	Embedding [][]float64    `json:"embedding"`
}

// New builds an artifact from an ordered label list and the embedding
// computed for it. Row i of the embedding belongs to labels[i].
func New(labels []string, emb *model.Embedding) (*Artifact, error) {
	if emb == nil || len(labels) != emb.N() {
		return nil, fmt.Errorf("%w: %d labels", ErrLabelCount, len(labels))
	}

	index := make(map[string]int, len(labels))

	for i, label := range labels {
		if _, ok := index[label]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}

		index[label] = i
	}

	ordered := make([]string, len(labels))
	copy(ordered, labels)

	return &Artifact{
		Labels:    ordered,
		Index:     index,
		Embedding: emb.Rows(),
	}, nil
}

// Matrix returns the embedding as a model.Embedding.
func (a *Artifact) Matrix() (*model.Embedding, error) {
	return model.EmbeddingFromRows(a.Embedding)
}

// Row returns the coordinates of the given label.
func (a *Artifact) Row(label string) ([]float64, bool) {
	i, ok := a.Index[label]
	if !ok {
		return nil, false
	}

	row := make([]float64, len(a.Embedding[i]))
	copy(row, a.Embedding[i])

	return row, true
}
