package db

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/olivere/elastic/v7"

	"matchafinder/src/types"
)

// ElasticStore serves the matcha place index. It implements types.DataStore.
type ElasticStore struct {
	Client *elastic.Client
	Index  string
}

func NewElasticStore(url string) (*ElasticStore, error) {
	client, err := elastic.NewClient(elastic.SetURL(url))
	if err != nil {
		return nil, err
	}
	return &ElasticStore{Client: client}, nil
}

// CreateIndexWithMapping creates the index from the mapping file if it does
// not exist yet, and raises max_result_window so deep pagination works.
func (es *ElasticStore) CreateIndexWithMapping(index, pathStruct string) error {
	ctx := context.Background()

	exists, err := es.Client.IndexExists(index).Do(ctx)
	if err != nil {
		return err
	}

	if exists {
		slog.Info("index already exists", "index", index)
		es.Index = index
		return nil
	}

	schemaBytes, err := os.ReadFile(pathStruct)
	if err != nil {
		return err
	}

	createIndex, err := es.Client.CreateIndex(index).BodyString(string(schemaBytes)).Do(ctx)
	if err != nil {
		return err
	}
	if !createIndex.Acknowledged {
		slog.Warn("CreateIndex was not acknowledged")
	}

	settings := map[string]interface{}{
		"index": map[string]interface{}{
			"max_result_window": 20000,
		},
	}
	if _, err := es.Client.IndexPutSettings(index).BodyJson(settings).Do(ctx); err != nil {
		return err
	}

	slog.Info("index created", "index", index)
	es.Index = index
	return nil
}

// LoadData reads the dataset file and bulk-indexes every place.
func (es *ElasticStore) LoadData(pathData string) error {
	places, err := ReadPlaces(pathData)
	if err != nil {
		return err
	}
	return es.savePlaces(places)
}

// ReadPlaces decodes the dataset file into a place list.
func ReadPlaces(pathData string) ([]types.Place, error) {
	data, err := os.ReadFile(pathData)
	if err != nil {
		return nil, err
	}

	var places []types.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (es *ElasticStore) GetPlaces(limit, offset int) ([]types.Place, int, error) {
	ctx := context.Background()

	searchResult, err := es.Client.Search().
		Index(es.Index).
		Query(elastic.NewMatchAllQuery()).
		Size(limit).
		From(offset).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	places := decodeHits(searchResult)

	count, err := es.Client.Count().Index(es.Index).Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	return places, int(count), nil
}

// GetTopRated returns up to limit places ordered by rating, ties broken by
// review count. Places without a rating sort last.
func (es *ElasticStore) GetTopRated(limit int) ([]types.Place, error) {
	ctx := context.Background()

	searchResult, err := es.Client.Search().
		Index(es.Index).
		Query(elastic.NewMatchAllQuery()).
		SortBy(
			elastic.NewFieldSort("details.rating").Desc().Missing("_last"),
			elastic.NewFieldSort("details.user_ratings_total").Desc().Missing("_last"),
		).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	return decodeHits(searchResult), nil
}

func decodeHits(searchResult *elastic.SearchResult) []types.Place {
	var places []types.Place
	for _, hit := range searchResult.Hits.Hits {
		var place types.Place
		if err := json.Unmarshal(hit.Source, &place); err != nil {
			slog.Warn("skipping undecodable hit", "id", hit.Id, "error", err)
			continue
		}
		places = append(places, place)
	}
	return places
}

func (es *ElasticStore) savePlaces(places []types.Place) error {
	if len(places) == 0 {
		return nil
	}

	ctx := context.Background()
	bulkRequest := es.Client.Bulk()

	for _, place := range places {
		req := elastic.NewBulkIndexRequest().Index(es.Index).Id(DocID(place)).Doc(place)
		bulkRequest = bulkRequest.Add(req)
	}

	bulkResponse, err := bulkRequest.Do(ctx)
	if err != nil {
		return err
	}

	if bulkResponse != nil {
		for _, item := range bulkResponse.Items {
			for _, op := range item {
				if op.Error != nil {
					slog.Warn("bulk operation failed", "reason", op.Error.Reason)
				}
			}
		}
	}

	return nil
}

// DocID picks the index document ID for a place: the upstream place_id when
// present, otherwise a fresh UUID.
func DocID(place types.Place) string {
	if place.PlaceID != "" {
		return place.PlaceID
	}
	return uuid.NewString()
}
