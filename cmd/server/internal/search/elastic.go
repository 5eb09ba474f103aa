package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const judgeMapping = `{
  "settings": {"number_of_shards": 1},
  "mappings": {
    "dynamic": "strict",
    "properties": {
      "name": {"type": "text"},
      "slug": {"type": "keyword"},
      "role": {"type": "text"},
      "company": {"type": "text"},
      "bio": {"type": "text"},
      "expertise": {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "badges": {"type": "keyword"},
      "featured": {"type": "boolean"},
      "updated_at": {"type": "date"}
    }
  }
}`

// Ensure ElasticIndexer implements Indexer interface.
var _ Indexer = (*ElasticIndexer)(nil)

type ElasticIndexer struct {
	client *es.Client
	index  string
}

func NewElasticIndexer(addresses []string, username, password, index string) (*ElasticIndexer, error) {
	client, err := es.NewClient(es.Config{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &ElasticIndexer{client: client, index: index}, nil
}

func responseError(res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Errorf("elasticsearch returned %s: %s", res.Status(), bytes.TrimSpace(body))
}

// Creates the judge index with its mapping when missing
func (e *ElasticIndexer) EnsureIndex(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "ElasticIndexer.EnsureIndex", trace.WithAttributes(
		attribute.String("index", e.index),
	))
	defer span.End()

	exists, err := e.client.Indices.Exists(
		[]string{e.index},
		e.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check index")
		return err
	}
	exists.Body.Close()

	if exists.StatusCode == http.StatusOK {
		span.RecordError(nil)
		span.SetStatus(codes.Ok, "index exists")
		return nil
	}

	res, err := e.client.Indices.Create(
		e.index,
		e.client.Indices.Create.WithBody(bytes.NewBufferString(judgeMapping)),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create index")
		return fmt.Errorf("create index %s: %w", e.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		err = responseError(res)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create index")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "created index")
	return nil
}

func (e *ElasticIndexer) IndexJudge(ctx context.Context, id uuid.UUID, doc Document) error {
	ctx, span := tracer.Start(ctx, "ElasticIndexer.IndexJudge", trace.WithAttributes(
		attribute.String("id", id.String()),
	))
	defer span.End()

	if doc.Expertise == nil {
		doc.Expertise = []string{}
	}
	if doc.Badges == nil {
		doc.Badges = []string{}
	}

	res, err := e.client.Index(
		e.index,
		esutil.NewJSONReader(doc),
		e.client.Index.WithDocumentID(id.String()),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to index judge")
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		err = responseError(res)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to index judge")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "indexed judge")
	return nil
}

func (e *ElasticIndexer) RemoveJudge(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "ElasticIndexer.RemoveJudge", trace.WithAttributes(
		attribute.String("id", id.String()),
	))
	defer span.End()

	res, err := e.client.Delete(
		e.index,
		id.String(),
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to remove judge")
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		err = responseError(res)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to remove judge")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "removed judge")
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

func (e *ElasticIndexer) SearchJudges(ctx context.Context, query string, limit int) ([]uuid.UUID, error) {
	ctx, span := tracer.Start(ctx, "ElasticIndexer.SearchJudges", trace.WithAttributes(
		attribute.String("query", query),
		attribute.Int("limit", limit),
	))
	defer span.End()

	body := map[string]any{
		"size":    limit,
		"_source": false,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^3", "expertise^2", "role", "company", "bio"},
				"fuzziness": "AUTO",
			},
		},
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(esutil.NewJSONReader(body)),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to search judges")
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		err = responseError(res)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to search judges")
		return nil, err
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode search response")
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			// documents are only written by IndexJudge
			continue
		}
		ids = append(ids, id)
	}

	span.SetAttributes(attribute.Int("hits", len(ids)))
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "searched judges")
	return ids, nil
}
