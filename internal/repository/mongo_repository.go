package repository

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository persists properties and auctions in MongoDB. Records are
// upserted by URL, so re-running the pipeline refreshes existing documents
// instead of duplicating them.
type MongoRepository struct {
	client     *mongo.Client
	properties *mongo.Collection
	auctions   *mongo.Collection
}

func NewMongoRepository(uri, dbName string) (*MongoRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(context.Background(), nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	properties := db.Collection("properties")
	auctions := db.Collection("auctions")

	// Unique index on url: it is the identity key for both record kinds
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "url", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{properties, auctions} {
		if _, err := coll.Indexes().CreateOne(context.Background(), indexModel); err != nil {
			log.Printf("Warning: failed to create unique url index on %s: %v", coll.Name(), err)
		}
	}

	return &MongoRepository{client: client, properties: properties, auctions: auctions}, nil
}

func (r *MongoRepository) SaveAll(ctx context.Context, properties []Property) error {
	for _, property := range properties {
		if property.ID == "" {
			property.ID = GeneratePropertyID(property.URL)
		}
		filter := bson.M{"url": property.URL}
		update := bson.M{"$set": property}
		opts := options.Update().SetUpsert(true)
		if _, err := r.properties.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to save property %s: %w", property.URL, err)
		}
	}
	return nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]Property, error) {
	cursor, err := r.properties.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

func (r *MongoRepository) FindWithFilters(ctx context.Context, filter PropertyFilter, pagination PaginationParams) (*PropertySearchResult, error) {
	mongoFilter := bson.M{}

	if filter.Locality != "" {
		mongoFilter["locality"] = bson.M{"$regex": filter.Locality, "$options": "i"}
	}
	if filter.Builder != "" {
		mongoFilter["builder"] = bson.M{"$regex": filter.Builder, "$options": "i"}
	}
	if filter.Status != "" {
		mongoFilter["status"] = filter.Status
	}
	if filter.BHK != "" {
		mongoFilter["bhk"] = bson.M{"$regex": filter.BHK}
	}
	if len(filter.Sources) > 0 {
		mongoFilter["source"] = bson.M{"$in": filter.Sources}
	}

	// Price bounds apply to the record's own min/max pair
	if filter.PriceMinLakhs > 0 {
		mongoFilter["price_max_lakhs"] = bson.M{"$gte": filter.PriceMinLakhs}
	}
	if filter.PriceMaxLakhs > 0 {
		mongoFilter["price_min_lakhs"] = bson.M{"$lte": filter.PriceMaxLakhs}
	}
	if filter.HandoverYear > 0 {
		mongoFilter["handover_year"] = bson.M{"$lte": filter.HandoverYear}
	}

	totalItems, err := r.properties.CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}

	if pagination.PageSize <= 0 {
		pagination.PageSize = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	totalPages := int((totalItems + int64(pagination.PageSize) - 1) / int64(pagination.PageSize))
	skip := (pagination.Page - 1) * pagination.PageSize

	findOptions := options.Find()
	findOptions.SetSkip(int64(skip))
	findOptions.SetLimit(int64(pagination.PageSize))
	findOptions.SetSort(bson.D{{Key: "price_min_lakhs", Value: 1}})

	cursor, err := r.properties.Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	return &PropertySearchResult{
		Properties:  properties,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: pagination.Page,
		PageSize:    pagination.PageSize,
	}, nil
}

func (r *MongoRepository) SaveAllAuctions(ctx context.Context, auctions []AuctionProperty) error {
	for _, auction := range auctions {
		filter := bson.M{"url": auction.URL}
		update := bson.M{"$set": auction}
		opts := options.Update().SetUpsert(true)
		if _, err := r.auctions.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to save auction %s: %w", auction.URL, err)
		}
	}
	return nil
}

func (r *MongoRepository) FindAllAuctions(ctx context.Context) ([]AuctionProperty, error) {
	cursor, err := r.auctions.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find auctions: %w", err)
	}
	defer cursor.Close(ctx)

	var auctions []AuctionProperty
	if err := cursor.All(ctx, &auctions); err != nil {
		return nil, fmt.Errorf("failed to decode auctions: %w", err)
	}
	return auctions, nil
}

func (r *MongoRepository) ClearAll(ctx context.Context) error {
	if _, err := r.properties.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear properties: %w", err)
	}
	return nil
}

func (r *MongoRepository) Close() {
	if err := r.client.Disconnect(context.Background()); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}
}
