package search

import (
	"time"

	"github.com/meilisearch/meilisearch-go"

	"real-estate-backend/internal/models"
)

// SearchClient indexes catalogue properties in Meilisearch. Indexing is
// best-effort from the command side; the database stays the source of truth
// and a reindex endpoint rebuilds the index from it.
type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "properties",
	}
}

// propertyDocument is the flattened shape stored in the index.
type propertyDocument struct {
	ID             string  `json:"id"`
	PropertyNumber string  `json:"property_number"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Address        string  `json:"address,omitempty"`
	Status         string  `json:"status"`
	Price          float64 `json:"price"`
	CategoryID     string  `json:"category_id"`
	CreatedAt      int64   `json:"created_at"`
}

func toDocument(p *models.Property) propertyDocument {
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return propertyDocument{
		ID:             p.ID,
		PropertyNumber: p.PropertyNumber,
		Title:          p.Title,
		Description:    p.Description,
		Address:        p.Address,
		Status:         string(p.Status),
		Price:          p.Price,
		CategoryID:     p.CategoryID,
		CreatedAt:      created.Unix(),
	}
}

// InitIndex creates the index and configures its attributes.
func (s *SearchClient) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"title",
		"description",
		"address",
		"property_number",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"status",
		"price",
		"category_id",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"price",
		"created_at",
	})
	return err
}

// IndexProperty indexes a single property.
func (s *SearchClient) IndexProperty(p *models.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]propertyDocument{toDocument(p)})
	return err
}

// IndexProperties indexes multiple properties.
func (s *SearchClient) IndexProperties(props []models.Property) error {
	if len(props) == 0 {
		return nil
	}
	docs := make([]propertyDocument, 0, len(props))
	for i := range props {
		docs = append(docs, toDocument(&props[i]))
	}
	_, err := s.client.Index(s.index).AddDocuments(docs)
	return err
}

// RemoveProperty drops a property from the index.
func (s *SearchClient) RemoveProperty(id string) error {
	_, err := s.client.Index(s.index).DeleteDocument(id)
	return err
}

// Hit is one search result.
type Hit struct {
	ID             string  `json:"id"`
	PropertyNumber string  `json:"property_number"`
	Title          string  `json:"title"`
	Address        string  `json:"address,omitempty"`
	Status         string  `json:"status"`
	Price          float64 `json:"price"`
}

// Search runs a free-text query, optionally filtered to one status.
func (s *SearchClient) Search(query, status string, limit int64) ([]Hit, error) {
	req := &meilisearch.SearchRequest{
		Limit: limit,
	}
	if status != "" {
		req.Filter = "status = '" + status + "'"
	}

	res, err := s.client.Index(s.index).Search(query, req)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, raw := range res.Hits {
		doc, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		h := Hit{}
		if v, ok := doc["id"].(string); ok {
			h.ID = v
		}
		if v, ok := doc["property_number"].(string); ok {
			h.PropertyNumber = v
		}
		if v, ok := doc["title"].(string); ok {
			h.Title = v
		}
		if v, ok := doc["address"].(string); ok {
			h.Address = v
		}
		if v, ok := doc["status"].(string); ok {
			h.Status = v
		}
		if v, ok := doc["price"].(float64); ok {
			h.Price = v
		}
		hits = append(hits, h)
	}
	return hits, nil
}
